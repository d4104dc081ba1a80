// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/stakepool/reward"
)

// Participant is the staking record of one address.
type Participant struct {
	Staked         *uint256.Int // principal held by the pool on behalf of the participant
	RewardBaseline *uint256.Int // staked * accumulator / precision at the last settlement
	UnlockAt       uint64       // time from which an ordinary withdrawal is permitted
	Locked         bool         // whether UnlockAt was ever set
}

// IsEmpty returns whether the entry can be treated as empty.
func (p *Participant) IsEmpty() bool {
	return p.Staked.IsZero() && p.RewardBaseline.IsZero() && !p.Locked
}

// Unlocked returns whether an ordinary withdrawal of principal is permitted at now.
func (p *Participant) Unlocked(now uint64) bool {
	return p.Locked && now >= p.UnlockAt
}

// Lock re-locks the stake until now + duration.
func (p *Participant) Lock(now, duration uint64) {
	p.UnlockAt = now + duration
	p.Locked = true
}

// Pending returns the reward accrued since the last settlement.
func (p *Participant) Pending(acc, precision *uint256.Int) (*uint256.Int, error) {
	return reward.Pending(p.Staked, acc, precision, p.RewardBaseline)
}

// ResetBaseline marks everything accrued by the current stake as settled.
func (p *Participant) ResetBaseline(acc, precision *uint256.Int) error {
	baseline, err := reward.Accrued(p.Staked, acc, precision)
	if err != nil {
		return err
	}
	p.RewardBaseline = baseline
	return nil
}

// Clone returns a deep copy.
func (p *Participant) Clone() *Participant {
	return &Participant{
		Staked:         new(uint256.Int).Set(p.Staked),
		RewardBaseline: new(uint256.Int).Set(p.RewardBaseline),
		UnlockAt:       p.UnlockAt,
		Locked:         p.Locked,
	}
}
