// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward holds the fixed-point arithmetic of the per-share reward accumulator.
package reward

import (
	"errors"

	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/thor"
)

var (
	ErrOverflow        = errors.New("reward: arithmetic overflow")
	ErrNegativePending = errors.New("reward: baseline exceeds accrued reward")
	ErrZeroPrecision   = errors.New("reward: zero precision factor")
)

// PrecisionFactor returns 10^(30 - decimals), the scale of the accumulator.
// The second return value is false when decimals reach the precision ceiling.
func PrecisionFactor(decimals uint8) (*uint256.Int, bool) {
	if decimals >= thor.PrecisionCeiling {
		return nil, false
	}
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(thor.PrecisionCeiling-decimals))), true
}

// Multiplier returns the number of rewarded periods in [from, to) given the window end.
// There is no clamp against the window start, callers never settle before it.
func Multiplier(from, to, end uint64) uint64 {
	switch {
	case to <= end:
		return to - from
	case from >= end:
		return 0
	default:
		return end - from
	}
}

// Accumulate returns acc + periods * rate * precision / totalStaked.
func Accumulate(acc, rate, precision, totalStaked *uint256.Int, periods uint64) (*uint256.Int, error) {
	if totalStaked.IsZero() {
		return new(uint256.Int).Set(acc), nil
	}
	minted, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(periods), rate)
	if overflow {
		return nil, ErrOverflow
	}
	if _, overflow = minted.MulOverflow(minted, precision); overflow {
		return nil, ErrOverflow
	}
	minted.Div(minted, totalStaked)

	next, overflow := new(uint256.Int).AddOverflow(acc, minted)
	if overflow {
		return nil, ErrOverflow
	}
	return next, nil
}

// Accrued returns staked * acc / precision, the reward entitlement of a stake since the accumulator origin.
func Accrued(staked, acc, precision *uint256.Int) (*uint256.Int, error) {
	if precision.IsZero() {
		return nil, ErrZeroPrecision
	}
	v, overflow := new(uint256.Int).MulOverflow(staked, acc)
	if overflow {
		return nil, ErrOverflow
	}
	return v.Div(v, precision), nil
}

// Pending returns the entitlement of a stake not yet covered by its baseline.
func Pending(staked, acc, precision, baseline *uint256.Int) (*uint256.Int, error) {
	accrued, err := Accrued(staked, acc, precision)
	if err != nil {
		return nil, err
	}
	if accrued.Lt(baseline) {
		return nil, ErrNegativePending
	}
	return accrued.Sub(accrued, baseline), nil
}
