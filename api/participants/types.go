// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participants

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/thor"
)

type JSONParticipant struct {
	Address        thor.Address          `json:"address"`
	Staked         *math.HexOrDecimal256 `json:"staked"`
	RewardBaseline *math.HexOrDecimal256 `json:"rewardBaseline"`
	UnlockAt       uint64                `json:"unlockAt"`
	Locked         bool                  `json:"locked"`
}

// JSONPending is the reward a participant would be paid in the pending block.
type JSONPending struct {
	Address thor.Address          `json:"address"`
	Pending *math.HexOrDecimal256 `json:"pending"`
	Period  uint64                `json:"period"`
}
