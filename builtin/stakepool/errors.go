// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
)

var (
	ErrAlreadyInitialized = reverts.New("stakepool: already initialized")
	ErrNotInitialized     = reverts.New("stakepool: not initialized")
	ErrPrecisionCeiling   = reverts.New("stakepool: reward asset decimals must be lower than 30")
	ErrSameAsset          = reverts.New("stakepool: staked and reward asset must differ")
	ErrInvalidWindow      = reverts.New("stakepool: start must be lower than end")
	ErrWindowInPast       = reverts.New("stakepool: start must be in the future")
	ErrLockTooLong        = reverts.New("stakepool: lock duration out of range")
	ErrInsufficientStake  = reverts.New("stakepool: amount exceeds staked amount")
	ErrLocked             = reverts.New("stakepool: stake is locked")
	ErrPoolStarted        = reverts.New("stakepool: reward window has started")
	ErrUnauthorized       = reverts.New("stakepool: caller is not the authority")
	ErrReentrant          = reverts.New("stakepool: reentrant call")
	ErrProtectedAsset     = reverts.New("stakepool: cannot recover staked or reward asset")

	// errSettledUnderOldWindow signals a broken invariant rather than a caller error.
	errSettledUnderOldWindow = errors.New("stakepool: pool settled under the previous window")
)
