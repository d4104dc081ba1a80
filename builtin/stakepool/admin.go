// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/thor"
)

// SetRewardPerPeriod changes the reward rate. Only permitted before the window starts.
func (s *StakePool) SetRewardPerPeriod(caller thor.Address, rate *uint256.Int) error {
	rate = zeroIfNil(rate)
	logger.Debug("setting reward per period", "caller", caller, "rate", rate)

	err := s.execute("set_reward_per_period", func() error {
		p, err := s.poolService.Get()
		if err != nil {
			return err
		}
		if current := s.clock.Period(); p.Started(current) {
			return reverts.Wrap(ErrPoolStarted, "current %d, start %d", current, p.StartPeriod)
		}
		p.RewardPerPeriod = new(uint256.Int).Set(rate)
		s.poolService.Set(p)

		s.emit(&Event{Kind: KindNewRewardPerPeriod, Amount: rate})
		return nil
	}, s.administrative(caller)...)
	if err != nil {
		logger.Info("set reward per period failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("set reward per period", "rate", rate)
	return nil
}

// UpdateWindow reschedules the reward window. Only permitted before the window starts,
// the new window must start in the future.
func (s *StakePool) UpdateWindow(caller thor.Address, start, end uint64) error {
	logger.Debug("updating window", "caller", caller, "start", start, "end", end)

	err := s.execute("update_window", func() error {
		p, err := s.poolService.Get()
		if err != nil {
			return err
		}
		current := s.clock.Period()
		if p.Started(current) {
			return reverts.Wrap(ErrPoolStarted, "current %d, start %d", current, p.StartPeriod)
		}
		if start >= end {
			return reverts.Wrap(ErrInvalidWindow, "start %d, end %d", start, end)
		}
		if current >= start {
			return reverts.Wrap(ErrWindowInPast, "current %d, start %d", current, start)
		}
		// settlement is a no-op before the start, so nothing accrued under the old window
		if p.LastUpdatePeriod != p.StartPeriod {
			return errSettledUnderOldWindow
		}

		p.StartPeriod = start
		p.EndPeriod = end
		p.LastUpdatePeriod = start
		s.poolService.Set(p)

		s.emit(&Event{Kind: KindNewWindow, StartPeriod: start, EndPeriod: end})
		return nil
	}, s.administrative(caller)...)
	if err != nil {
		logger.Info("update window failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("updated window", "start", start, "end", end)
	return nil
}

// StopReward ends the reward window at the current period.
// The pool is settled first. The end never moves later, nor before the start.
func (s *StakePool) StopReward(caller thor.Address) error {
	logger.Debug("stopping reward", "caller", caller)

	var end uint64
	err := s.execute("stop_reward", func() error {
		p, err := s.settle()
		if err != nil {
			return err
		}
		end = min(p.EndPeriod, max(p.StartPeriod, s.clock.Period()))
		p.EndPeriod = end
		s.poolService.Set(p)

		s.emit(&Event{Kind: KindRewardsStop, EndPeriod: end})
		return nil
	}, s.administrative(caller)...)
	if err != nil {
		logger.Info("stop reward failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("stopped reward", "end", end)
	return nil
}

// RecoverAsset sends amount of an asset mistakenly held by the pool to the authority.
// The staked and reward assets are refused.
func (s *StakePool) RecoverAsset(caller thor.Address, asset Asset, amount *uint256.Int) error {
	amount = zeroIfNil(amount)
	logger.Debug("recovering asset", "caller", caller, "asset", asset.Address(), "amount", amount)

	err := s.execute("recover_asset", func() error {
		p, err := s.poolService.Get()
		if err != nil {
			return err
		}
		if addr := asset.Address(); addr == p.StakedAsset || addr == p.RewardAsset {
			return reverts.Wrap(ErrProtectedAsset, "%s", addr)
		}
		if err := asset.Transfer(s.Address(), p.Authority, amount); err != nil {
			return err
		}

		s.emit(&Event{Kind: KindAssetRecovered, Account: asset.Address(), Amount: amount})
		return nil
	}, s.administrative(caller)...)
	if err != nil {
		logger.Info("recover asset failed", "caller", caller, "error", err)
		return err
	}

	logger.Info("recovered asset", "asset", asset.Address(), "amount", amount)
	return nil
}
