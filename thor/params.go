// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Constants of the staking ledger.
const (
	BlockInterval uint64 = 10 // time interval between two consecutive blocks.

	// PrecisionCeiling is the number of decimals the accumulator is scaled to.
	// A reward asset must have strictly fewer decimals.
	PrecisionCeiling uint8 = 30

	// MaxTransferFeeBasisPoints caps the fee a native asset may charge on transfer.
	MaxTransferFeeBasisPoints uint64 = 10_000
)
