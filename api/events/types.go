// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

type JSONEvent struct {
	BlockNumber uint32                `json:"blockNumber"`
	BlockTime   uint64                `json:"blockTime"`
	Index       uint32                `json:"index"`
	Kind        string                `json:"kind"`
	Topic       thor.Bytes32          `json:"topic"`
	Account     thor.Address          `json:"account"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Reward      *math.HexOrDecimal256 `json:"reward"`
	StartPeriod uint64                `json:"startPeriod,omitempty"`
	EndPeriod   uint64                `json:"endPeriod,omitempty"`
}

func convertEvent(e *eventdb.Event) *JSONEvent {
	return &JSONEvent{
		BlockNumber: e.BlockNumber,
		BlockTime:   e.BlockTime,
		Index:       e.Index,
		Kind:        e.Kind.String(),
		Topic:       e.Kind.Topic(),
		Account:     e.Account,
		Amount:      utils.Amount(e.Amount),
		Reward:      utils.Amount(e.Reward),
		StartPeriod: e.StartPeriod,
		EndPeriod:   e.EndPeriod,
	}
}
