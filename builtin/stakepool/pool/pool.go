// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/stakepool/reward"
	"github.com/vechain/stakepool/thor"
)

// Pool is the singleton state of the ledger.
type Pool struct {
	StakedAsset thor.Address
	RewardAsset thor.Address
	Treasury    thor.Address
	Authority   thor.Address

	AccRewardPerShare   *uint256.Int
	RewardPerPeriod     *uint256.Int
	PrecisionFactor     *uint256.Int
	StartPeriod         uint64
	EndPeriod           uint64
	LastUpdatePeriod    uint64
	MinimumLockDuration uint64
}

// Started returns whether the reward window has been reached.
func (p *Pool) Started(current uint64) bool {
	return current >= p.StartPeriod
}

// Project returns the accumulator as if the pool was settled at current, without touching the pool.
func (p *Pool) Project(current uint64, totalStaked *uint256.Int) (*uint256.Int, error) {
	if current <= p.LastUpdatePeriod || totalStaked.IsZero() {
		return new(uint256.Int).Set(p.AccRewardPerShare), nil
	}
	return reward.Accumulate(
		p.AccRewardPerShare,
		p.RewardPerPeriod,
		p.PrecisionFactor,
		totalStaked,
		reward.Multiplier(p.LastUpdatePeriod, current, p.EndPeriod),
	)
}

// Settle advances the accumulator and the last update period to current.
// It reports whether the pool changed.
func (p *Pool) Settle(current uint64, totalStaked *uint256.Int) (bool, error) {
	if current <= p.LastUpdatePeriod {
		return false, nil
	}
	acc, err := p.Project(current, totalStaked)
	if err != nil {
		return false, err
	}
	p.AccRewardPerShare = acc
	p.LastUpdatePeriod = current
	return true, nil
}
