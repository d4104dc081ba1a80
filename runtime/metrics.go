// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/stakepool/metrics"

var (
	metricHeadNumber  = metrics.LazyLoadGauge("head_block_number")
	metricExecCount   = metrics.LazyLoadCounterVec("exec_count", []string{"result"})
	metricBlockEvents = metrics.LazyLoadHistogram("block_event_count", []int64{0, 1, 2, 5, 10, 25, 50, 100})
)
