// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/thor"
)

const launchTime = uint64(1_700_000_000)

var unit = new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18))

func newTestHost(t *testing.T) (*Host, *eventdb.EventDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(edb.Close)

	h, err := New(db, genesis.NewDevnet(launchTime), edb, 1024)
	require.NoError(t, err)
	return h, edb
}

func deposit(addr thor.Address, amount *uint256.Int) func(d *genesis.Deployment) error {
	return func(d *genesis.Deployment) error {
		if err := d.StakedAsset.Approve(addr, d.Pool.Address(), amount); err != nil {
			return err
		}
		return d.Pool.Deposit(addr, amount)
	}
}

func TestGenesisHead(t *testing.T) {
	h, _ := newTestHost(t)

	head := h.Head()
	assert.Equal(t, uint32(0), head.Number)
	assert.Equal(t, launchTime, head.Timestamp)
	assert.False(t, head.ChangesHash.IsZero())

	number, timestamp := h.Pending()
	assert.Equal(t, uint32(1), number)
	assert.Equal(t, launchTime+thor.BlockInterval, timestamp)
}

func TestMintBlock(t *testing.T) {
	h, edb := newTestHost(t)
	alice := genesis.DevAccounts()[2].Address

	require.NoError(t, h.Exec(deposit(alice, unit)))
	head, err := h.MintBlock()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), head.Number)
	assert.Equal(t, launchTime+thor.BlockInterval, head.Timestamp)
	assert.Equal(t, head, h.Head())

	// empty blocks still advance the clock
	for range 3 {
		_, err := h.MintBlock()
		require.NoError(t, err)
	}
	assert.Equal(t, uint32(4), h.Head().Number)

	require.NoError(t, h.View(func(d *genesis.Deployment) error {
		pending, err := d.Pool.PendingReward(alice)
		require.NoError(t, err)
		// accrues from block 1 to the pending block 5
		assert.Equal(t, new(uint256.Int).Mul(unit, uint256.NewInt(4)), pending)
		return nil
	}))

	events, err := edb.Filter(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, stakepool.KindDeposit, events[0].Kind)
	assert.Equal(t, uint32(1), events[0].BlockNumber)
	assert.Equal(t, launchTime+thor.BlockInterval, events[0].BlockTime)
	assert.Equal(t, alice, events[0].Account)
}

func TestExecFailureDiscardsChanges(t *testing.T) {
	h, edb := newTestHost(t)
	alice := genesis.DevAccounts()[2].Address

	boom := errors.New("boom")
	err := h.Exec(func(d *genesis.Deployment) error {
		if err := deposit(alice, unit)(d); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, h.View(func(d *genesis.Deployment) error {
		part, err := d.Pool.Participant(alice)
		require.NoError(t, err)
		assert.True(t, part.Staked.IsZero())

		allowance, err := d.StakedAsset.Allowance(alice, d.Pool.Address())
		require.NoError(t, err)
		assert.True(t, allowance.IsZero())
		return nil
	}))

	_, err = h.MintBlock()
	require.NoError(t, err)
	events, err := edb.Filter(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestViewDiscardsChanges(t *testing.T) {
	h, _ := newTestHost(t)
	alice := genesis.DevAccounts()[2].Address

	require.NoError(t, h.View(deposit(alice, unit)))
	require.NoError(t, h.View(func(d *genesis.Deployment) error {
		part, err := d.Pool.Participant(alice)
		require.NoError(t, err)
		assert.True(t, part.Staked.IsZero())
		return nil
	}))
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	alice := genesis.DevAccounts()[3].Address
	gen := genesis.NewDevnet(launchTime)

	db, err := lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{})
	require.NoError(t, err)
	h, err := New(db, gen, nil, 0)
	require.NoError(t, err)

	require.NoError(t, h.Exec(deposit(alice, unit)))
	_, err = h.MintBlock()
	require.NoError(t, err)
	// left pending, lost on close
	require.NoError(t, h.Exec(deposit(alice, unit)))
	require.NoError(t, db.Close())

	db, err = lvldb.New(filepath.Join(dir, "main.db"), lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()
	h, err = New(db, gen, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, uint32(1), h.Head().Number)
	require.NoError(t, h.View(func(d *genesis.Deployment) error {
		part, err := d.Pool.Participant(alice)
		require.NoError(t, err)
		assert.Equal(t, unit, part.Staked)
		return nil
	}))
}

func TestConcurrentExec(t *testing.T) {
	h, _ := newTestHost(t)
	accs := genesis.DevAccounts()[2:]

	var g errgroup.Group
	for _, acc := range accs {
		g.Go(func() error {
			for range 10 {
				if err := h.Exec(deposit(acc.Address, unit)); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	_, err := h.MintBlock()
	require.NoError(t, err)
	require.NoError(t, h.View(func(d *genesis.Deployment) error {
		total, err := d.Pool.TotalStaked()
		require.NoError(t, err)
		assert.Equal(t, new(uint256.Int).Mul(unit, uint256.NewInt(uint64(10*len(accs)))), total)
		return nil
	}))
}
