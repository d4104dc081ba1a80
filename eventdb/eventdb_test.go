// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/thor"
)

func newTestDB(t *testing.T) *EventDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

// insertBlocks writes n blocks, each holding a deposit of alice and a withdraw of bob.
func insertBlocks(t *testing.T, db *EventDB, n int, alice, bob thor.Address) {
	var events []*Event
	for i := 1; i <= n; i++ {
		num := uint32(i)
		events = append(events,
			NewEvent(num, 1000+uint64(i)*10, 0, &stakepool.Event{Kind: stakepool.KindDeposit, Account: alice, Amount: uint256.NewInt(uint64(i))}),
			NewEvent(num, 1000+uint64(i)*10, 1, &stakepool.Event{Kind: stakepool.KindWithdraw, Account: bob, Amount: uint256.NewInt(1), Reward: uint256.NewInt(uint64(i) * 2)}),
		)
	}
	require.NoError(t, db.Insert(events))
}

func TestInsertAndFilter(t *testing.T) {
	db := newTestDB(t)
	alice, bob := datagen.RandAddress(), datagen.RandAddress()
	insertBlocks(t, db, 10, alice, bob)

	all, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 20)
	assert.Equal(t, uint32(1), all[0].BlockNumber)
	assert.Equal(t, uint32(0), all[0].Index)
	assert.Equal(t, stakepool.KindDeposit, all[0].Kind)
	assert.Equal(t, alice, all[0].Account)
	assert.Equal(t, uint64(1010), all[0].BlockTime)
	assert.Equal(t, uint256.NewInt(2), all[1].Reward)
	assert.True(t, all[0].Reward.IsZero())

	tests := []struct {
		name     string
		filter   *EventFilter
		expected int
		first    uint32
	}{
		{"by account", &EventFilter{Account: &alice}, 10, 1},
		{"by kind", &EventFilter{Kinds: []stakepool.Kind{stakepool.KindWithdraw}}, 10, 1},
		{"by kinds", &EventFilter{Kinds: []stakepool.Kind{stakepool.KindWithdraw, stakepool.KindDeposit}}, 20, 1},
		{"unknown kind", &EventFilter{Kinds: []stakepool.Kind{stakepool.KindRewardsStop}}, 0, 0},
		{"by range", &EventFilter{Range: &Range{From: 3, To: 5}}, 6, 3},
		{"open range", &EventFilter{Range: &Range{From: 8}}, 6, 8},
		{"desc", &EventFilter{Order: DESC}, 20, 10},
		{"limit", &EventFilter{Options: &Options{Offset: 4, Limit: 3}}, 3, 3},
		{"combined", &EventFilter{Account: &bob, Range: &Range{From: 2, To: 9}, Order: DESC, Options: &Options{Limit: 2}}, 2, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.Filter(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, events, tt.expected)
			if tt.expected > 0 {
				assert.Equal(t, tt.first, events[0].BlockNumber)
			}
		})
	}
}

func TestInsertLargeAmounts(t *testing.T) {
	db := newTestDB(t)
	huge := new(uint256.Int).SetAllOne()

	require.NoError(t, db.Insert([]*Event{
		NewEvent(1, 10, 0, &stakepool.Event{Kind: stakepool.KindNewRewardPerPeriod, Amount: huge}),
		NewEvent(1, 10, 1, &stakepool.Event{Kind: stakepool.KindNewWindow, StartPeriod: 100, EndPeriod: 200}),
	}))

	events, err := db.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, huge, events[0].Amount)
	assert.Equal(t, uint64(100), events[1].StartPeriod)
	assert.Equal(t, uint64(200), events[1].EndPeriod)
}

func TestNewEventCopiesAmounts(t *testing.T) {
	amount := uint256.NewInt(5)
	ev := NewEvent(1, 10, 0, &stakepool.Event{Kind: stakepool.KindDeposit, Amount: amount})
	amount.SetUint64(6)

	assert.Equal(t, uint256.NewInt(5), ev.Amount)
	assert.True(t, ev.Reward.IsZero())
}

func TestNewestBlockNumber(t *testing.T) {
	db := newTestDB(t)

	_, ok, err := db.NewestBlockNumber()
	require.NoError(t, err)
	assert.False(t, ok)

	insertBlocks(t, db, 7, datagen.RandAddress(), datagen.RandAddress())
	n, ok, err := db.NewestBlockNumber()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint32(7), n)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	alice := datagen.RandAddress()

	db, err := New(path)
	require.NoError(t, err)
	insertBlocks(t, db, 3, alice, datagen.RandAddress())
	db.Close()

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	events, err := db.Filter(context.Background(), &EventFilter{Account: &alice})
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestFilterCanceled(t *testing.T) {
	db := newTestDB(t)
	insertBlocks(t, db, 2, datagen.RandAddress(), datagen.RandAddress())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := db.Filter(ctx, nil)
	assert.Error(t, err)
}
