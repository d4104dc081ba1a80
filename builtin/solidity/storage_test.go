// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/thor"
)

func TestUint64(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint64(ctx, thor.Bytes32{1})

	v, err := u.Get()
	require.NoError(t, err)
	assert.Zero(t, v)

	u.Set(1_700_000_000)
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, uint64(1_700_000_000), v)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, thor.Bytes32{1})

	addr := datagen.RandAddress()
	a.Set(&addr)
	got, err := a.Get()
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	a.Set(nil)
	got, err = a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBool(t *testing.T) {
	ctx := newTestContext(t)
	b := NewBool(ctx, thor.Bytes32{1})

	v, err := b.Get()
	require.NoError(t, err)
	assert.False(t, v)

	b.Set(true)
	v, err = b.Get()
	require.NoError(t, err)
	assert.True(t, v)

	b.Set(false)
	v, err = b.Get()
	require.NoError(t, err)
	assert.False(t, v)
}
