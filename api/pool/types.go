// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/thor"
)

// JSONPool is the pool as of the pending block.
type JSONPool struct {
	Address             thor.Address          `json:"address"`
	StakedAsset         thor.Address          `json:"stakedAsset"`
	RewardAsset         thor.Address          `json:"rewardAsset"`
	Treasury            thor.Address          `json:"treasury"`
	Authority           thor.Address          `json:"authority"`
	RewardPerPeriod     *math.HexOrDecimal256 `json:"rewardPerPeriod"`
	AccRewardPerShare   *math.HexOrDecimal256 `json:"accRewardPerShare"`
	PrecisionFactor     *math.HexOrDecimal256 `json:"precisionFactor"`
	StartPeriod         uint64                `json:"startPeriod"`
	EndPeriod           uint64                `json:"endPeriod"`
	LastUpdatePeriod    uint64                `json:"lastUpdatePeriod"`
	MinimumLockDuration uint64                `json:"minimumLockDuration"`
	TotalStaked         *math.HexOrDecimal256 `json:"totalStaked"`
	RewardReserve       *math.HexOrDecimal256 `json:"rewardReserve"`
	Period              uint64                `json:"period"`
}
