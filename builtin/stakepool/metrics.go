// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import "github.com/vechain/stakepool/metrics"

var (
	metricOperationCount = metrics.LazyLoadCounterVec("operation_count", []string{"op", "result"})
	metricRewardPaid     = metrics.LazyLoadCounterVec("reward_paid_count", []string{"recipient"})
)
