// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/thor"
)

// Deposit stakes amount for the caller, paying out any pending reward first.
// The caller must have approved the pool to move amount of the staked asset.
// A zero amount only harvests the pending reward.
func (s *StakePool) Deposit(caller thor.Address, amount *uint256.Int) error {
	amount = zeroIfNil(amount)
	logger.Debug("depositing", "participant", caller, "amount", amount)

	var paid *uint256.Int
	err := s.execute("deposit", func() error {
		p, err := s.settle()
		if err != nil {
			return err
		}
		part, err := s.participants.Get(caller)
		if err != nil {
			return err
		}

		if !part.Staked.IsZero() {
			if paid, err = part.Pending(p.AccRewardPerShare, p.PrecisionFactor); err != nil {
				return err
			}
			if err := s.payReward(caller, paid, "participant"); err != nil {
				return err
			}
		}

		if !amount.IsZero() {
			part.Lock(s.clock.Now(), p.MinimumLockDuration)
			received, err := s.pull(caller, amount)
			if err != nil {
				return err
			}
			if _, overflow := part.Staked.AddOverflow(part.Staked, received); overflow {
				return errors.New("staked amount overflow")
			}
		}

		if err := part.ResetBaseline(p.AccRewardPerShare, p.PrecisionFactor); err != nil {
			return err
		}
		if err := s.participants.Set(caller, part); err != nil {
			return err
		}

		s.emit(&Event{Kind: KindDeposit, Account: caller, Amount: amount, Reward: paid})
		return nil
	}, s.mutating()...)
	if err != nil {
		logger.Info("deposit failed", "participant", caller, "error", err)
		return err
	}

	logger.Info("deposited", "participant", caller, "amount", amount, "reward", paid)
	return nil
}

// Withdraw returns amount of principal once unlocked, with the pending reward.
// A zero amount is always permitted and only harvests the pending reward.
func (s *StakePool) Withdraw(caller thor.Address, amount *uint256.Int) error {
	amount = zeroIfNil(amount)
	logger.Debug("withdrawing", "participant", caller, "amount", amount)

	var paid *uint256.Int
	err := s.execute("withdraw", func() (err error) {
		paid, err = s.withdraw(caller, amount, false)
		if err != nil {
			return err
		}
		s.emit(&Event{Kind: KindWithdraw, Account: caller, Amount: amount, Reward: paid})
		return nil
	}, s.mutating()...)
	if err != nil {
		logger.Info("withdraw failed", "participant", caller, "error", err)
		return err
	}

	logger.Info("withdrew", "participant", caller, "amount", amount, "reward", paid)
	return nil
}

// EarlyWithdraw returns amount of principal regardless of the lock.
// The pending reward is forfeited to the treasury.
func (s *StakePool) EarlyWithdraw(caller thor.Address, amount *uint256.Int) error {
	amount = zeroIfNil(amount)
	logger.Debug("withdrawing early", "participant", caller, "amount", amount)

	var forfeited *uint256.Int
	err := s.execute("early_withdraw", func() (err error) {
		forfeited, err = s.withdraw(caller, amount, true)
		if err != nil {
			return err
		}
		s.emit(&Event{Kind: KindEarlyWithdraw, Account: caller, Amount: amount, Reward: forfeited})
		return nil
	}, s.mutating()...)
	if err != nil {
		logger.Info("early withdraw failed", "participant", caller, "error", err)
		return err
	}

	logger.Info("withdrew early", "participant", caller, "amount", amount, "forfeited", forfeited)
	return nil
}

// EmergencyWithdraw returns the whole principal without settling the pool.
// The pending reward is abandoned.
func (s *StakePool) EmergencyWithdraw(caller thor.Address) error {
	logger.Debug("emergency withdrawing", "participant", caller)

	var principal *uint256.Int
	err := s.execute("emergency_withdraw", func() error {
		part, err := s.participants.Get(caller)
		if err != nil {
			return err
		}
		principal = part.Staked

		part.Staked = new(uint256.Int)
		part.RewardBaseline = new(uint256.Int)
		if err := s.participants.Set(caller, part); err != nil {
			return err
		}

		if !principal.IsZero() {
			if err := s.stakedAsset.Transfer(s.Address(), caller, principal); err != nil {
				return err
			}
		}

		s.emit(&Event{Kind: KindEmergencyWithdraw, Account: caller, Amount: principal})
		return nil
	}, s.mutating()...)
	if err != nil {
		logger.Info("emergency withdraw failed", "participant", caller, "error", err)
		return err
	}

	logger.Info("emergency withdrew", "participant", caller, "amount", principal)
	return nil
}

// withdraw applies an ordinary or early withdrawal and returns the reward paid.
// An early withdrawal skips the lock and pays the reward to the treasury.
func (s *StakePool) withdraw(caller thor.Address, amount *uint256.Int, early bool) (*uint256.Int, error) {
	part, err := s.participants.Get(caller)
	if err != nil {
		return nil, err
	}
	if amount.Gt(part.Staked) {
		return nil, reverts.Wrap(ErrInsufficientStake, "staked %s, requested %s", part.Staked, amount)
	}
	if !early && !amount.IsZero() && !part.Unlocked(s.clock.Now()) {
		return nil, reverts.Wrap(ErrLocked, "unlocks at %d", part.UnlockAt)
	}

	p, err := s.settle()
	if err != nil {
		return nil, err
	}
	pending, err := part.Pending(p.AccRewardPerShare, p.PrecisionFactor)
	if err != nil {
		return nil, err
	}

	if !amount.IsZero() {
		part.Staked.Sub(part.Staked, amount)
		part.Lock(s.clock.Now(), p.MinimumLockDuration)
	}
	if err := part.ResetBaseline(p.AccRewardPerShare, p.PrecisionFactor); err != nil {
		return nil, err
	}
	if err := s.participants.Set(caller, part); err != nil {
		return nil, err
	}

	if !amount.IsZero() {
		if err := s.stakedAsset.Transfer(s.Address(), caller, amount); err != nil {
			return nil, err
		}
	}
	to, label := caller, "participant"
	if early {
		to, label = p.Treasury, "treasury"
	}
	if err := s.payReward(to, pending, label); err != nil {
		return nil, err
	}
	return pending, nil
}

// pull moves amount of the staked asset from the participant into the pool.
// It returns the amount the pool actually received.
func (s *StakePool) pull(from thor.Address, amount *uint256.Int) (*uint256.Int, error) {
	before, err := s.TotalStaked()
	if err != nil {
		return nil, err
	}
	if err := s.stakedAsset.TransferFrom(s.Address(), from, s.Address(), amount); err != nil {
		return nil, err
	}
	after, err := s.TotalStaked()
	if err != nil {
		return nil, err
	}
	received, underflow := new(uint256.Int).SubOverflow(after, before)
	if underflow {
		return nil, errors.New("pool balance decreased on deposit")
	}
	return received, nil
}

func (s *StakePool) payReward(to thor.Address, amount *uint256.Int, label string) error {
	if amount.IsZero() {
		return nil
	}
	if err := s.rewardAsset.Transfer(s.Address(), to, amount); err != nil {
		return errors.WithMessage(err, "pay reward")
	}
	metricRewardPaid().AddWithLabel(1, map[string]string{"recipient": label})
	return nil
}
