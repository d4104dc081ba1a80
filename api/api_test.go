// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/api/events"
	"github.com/vechain/stakepool/api/participants"
	"github.com/vechain/stakepool/api/pool"
	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/runtime"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var unit = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18))

func newTestServer(t *testing.T) *httptest.Server {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(edb.Close)

	host, err := runtime.New(db, genesis.NewDevnet(1_700_000_000), edb, 0)
	require.NoError(t, err)

	alice := genesis.DevAccounts()[2].Address
	require.NoError(t, host.Exec(func(d *genesis.Deployment) error {
		if err := d.StakedAsset.Approve(alice, d.Pool.Address(), unit); err != nil {
			return err
		}
		return d.Pool.Deposit(alice, unit)
	}))
	for range 2 {
		_, err := host.MintBlock()
		require.NoError(t, err)
	}

	ts := httptest.NewServer(New(host, edb, Options{AllowedOrigins: "*", EventsLimit: 100, EnableMetrics: true}))
	t.Cleanup(ts.Close)
	return ts
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getJSON(t *testing.T, url string, v any) {
	body, code := httpGet(t, url)
	require.Equal(t, http.StatusOK, code, string(body))
	require.NoError(t, json.Unmarshal(body, v))
}

func TestPool(t *testing.T) {
	ts := newTestServer(t)
	accs := genesis.DevAccounts()

	var p pool.JSONPool
	getJSON(t, ts.URL+"/pool", &p)

	assert.Equal(t, accs[0].Address, p.Authority)
	assert.Equal(t, accs[1].Address, p.Treasury)
	assert.Equal(t, unit.ToBig(), (*big.Int)(p.TotalStaked))
	assert.Equal(t, unit.ToBig(), (*big.Int)(p.RewardPerPeriod))
	assert.Equal(t, uint64(1), p.StartPeriod)
	assert.Equal(t, uint64(3), p.Period)
}

func TestParticipants(t *testing.T) {
	ts := newTestServer(t)
	alice := genesis.DevAccounts()[2].Address

	var part participants.JSONParticipant
	getJSON(t, ts.URL+"/participants/"+alice.String(), &part)
	assert.Equal(t, alice, part.Address)
	assert.Equal(t, unit.ToBig(), (*big.Int)(part.Staked))
	assert.True(t, part.Locked)

	var pending participants.JSONPending
	getJSON(t, ts.URL+"/participants/"+alice.String()+"/pending", &pending)
	// accrued over blocks 1 and 2
	assert.Equal(t, new(uint256.Int).Mul(unit, uint256.NewInt(2)).ToBig(), (*big.Int)(pending.Pending))
	assert.Equal(t, uint64(3), pending.Period)

	stranger := genesis.DevAccounts()[5].Address
	getJSON(t, ts.URL+"/participants/"+stranger.String(), &part)
	assert.Equal(t, 0, (*big.Int)(part.Staked).Sign())
	assert.False(t, part.Locked)

	_, code := httpGet(t, ts.URL+"/participants/0x1234")
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpGet(t, ts.URL+"/participants/0x1234/pending")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestEvents(t *testing.T) {
	ts := newTestServer(t)
	alice := genesis.DevAccounts()[2].Address

	var evs []*events.JSONEvent
	getJSON(t, ts.URL+"/events?account="+alice.String(), &evs)
	require.Len(t, evs, 1)
	assert.Equal(t, "Deposit", evs[0].Kind)
	assert.Equal(t, stakepool.KindDeposit.Topic(), evs[0].Topic)
	assert.Equal(t, uint32(1), evs[0].BlockNumber)
	assert.Equal(t, unit.ToBig(), (*big.Int)(evs[0].Amount))

	getJSON(t, ts.URL+"/events?kind=Withdraw,EarlyWithdraw", &evs)
	assert.Empty(t, evs)
	getJSON(t, ts.URL+"/events?from=2&order=desc&limit=10", &evs)
	assert.Empty(t, evs)

	tests := []struct {
		query string
		code  int
	}{
		{"?account=0x12", http.StatusBadRequest},
		{"?kind=Transfer", http.StatusBadRequest},
		{"?from=5&to=1", http.StatusBadRequest},
		{"?from=abc", http.StatusBadRequest},
		{"?order=up", http.StatusBadRequest},
		{"?limit=101", http.StatusForbidden},
		{"?limit=100&offset=1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, code := httpGet(t, ts.URL+"/events"+tt.query)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	ts := newTestServer(t)

	httpGet(t, ts.URL+"/pool")
	httpGet(t, ts.URL+"/participants/0x1234")
	_, code := httpGet(t, ts.URL+"/unknown")
	assert.Equal(t, http.StatusNotFound, code)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "identity")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(res.Body)
	require.NoError(t, err)

	family, ok := families["stakepool_api_request_count"]
	require.True(t, ok)

	seen := make(map[string]bool)
	for _, m := range family.GetMetric() {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		assert.NotEmpty(t, labels["name"])
		seen[labels["name"]+" "+labels["code"]] = true
	}
	assert.True(t, seen["GET /pool 200"])
	assert.True(t, seen["GET /participants/{address} 400"])
}
