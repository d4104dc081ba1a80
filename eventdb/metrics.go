// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/vechain/stakepool/metrics"
)

var (
	metricInsertDuration = metrics.LazyLoadHistogram("eventdb_insert_duration_ms", metrics.BucketDBOps)
	metricQueryOrder     = metrics.LazyLoadCounterVec("eventdb_query_order", []string{"order"})
	metricLimitBucket    = metrics.LazyLoadHistogram("eventdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}

	if filter.Order == DESC {
		metricQueryOrder().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrder().AddWithLabel(1, map[string]string{"order": "asc"})
	}
	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().Observe(int64(limit))
	}
}
