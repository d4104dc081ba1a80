// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/thor"
)

// Event is a pool event as stored in db.
type Event struct {
	BlockNumber uint32
	Index       uint32
	BlockTime   uint64
	Kind        stakepool.Kind
	Account     thor.Address
	Amount      *uint256.Int
	Reward      *uint256.Int
	StartPeriod uint64
	EndPeriod   uint64
}

// NewEvent places a pool event at the given position of a block.
func NewEvent(blockNumber uint32, blockTime uint64, index uint32, ev *stakepool.Event) *Event {
	e := &Event{
		BlockNumber: blockNumber,
		Index:       index,
		BlockTime:   blockTime,
		Kind:        ev.Kind,
		Account:     ev.Account,
		Amount:      new(uint256.Int),
		Reward:      new(uint256.Int),
		StartPeriod: ev.StartPeriod,
		EndPeriod:   ev.EndPeriod,
	}
	if ev.Amount != nil {
		e.Amount.Set(ev.Amount)
	}
	if ev.Reward != nil {
		e.Reward.Set(ev.Reward)
	}
	return e
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter selects events. Nil fields match everything.
type EventFilter struct {
	Account *thor.Address
	Kinds   []stakepool.Kind
	Range   *Range
	Options *Options
	Order   Order
}
