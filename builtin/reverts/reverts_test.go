// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(42))
	assert.True(t, IsRevertErr(pkgerrors.Wrap(revert, "wrapped")))
}

func Test_Wrap(t *testing.T) {
	sentinel := New("stake is locked")
	other := New("stake is locked")

	err := Wrap(sentinel, "unlock at %d", 100)
	assert.Equal(t, "stake is locked: unlock at 100", err.Error())
	assert.True(t, errors.Is(err, sentinel))
	assert.False(t, errors.Is(err, other))
	assert.True(t, IsRevertErr(err))
	assert.Nil(t, New("plain").Unwrap())
}
