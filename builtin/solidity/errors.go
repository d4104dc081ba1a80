// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import "errors"

var (
	ErrUint256Overflow  = errors.New("uint256 overflow")
	ErrUint256Underflow = errors.New("uint256 underflow")
)
