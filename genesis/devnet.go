// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"encoding/hex"
	"sync/atomic"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/thor"
)

// DevAccount account for development.
type DevAccount struct {
	Address    thor.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns the pre-funded accounts of the dev genesis.
// The first one is the authority, the second the treasury.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
	}
	for _, str := range privKeys {
		b, err := hex.DecodeString(str)
		if err != nil {
			panic(err)
		}
		pk := secp256k1.PrivKeyFromBytes(b).ToECDSA()
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{thor.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevConfig returns a pool that starts at the first block and pays one reward unit per block.
func DevConfig(launchTime uint64) *Config {
	accs := DevAccounts()
	unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18))
	grant := new(uint256.Int).Mul(unit, uint256.NewInt(1_000_000))

	var allocations []Allocation
	for _, acc := range accs[2:] {
		allocations = append(allocations, Allocation{Address: acc.Address, Amount: NewAmount(grant)})
	}

	return &Config{
		LaunchTime: launchTime,
		Pool: PoolConfig{
			Address:             thor.BytesToAddress([]byte("StakePool")),
			Treasury:            accs[1].Address,
			Authority:           accs[0].Address,
			RewardPerPeriod:     NewAmount(unit),
			StartPeriod:         1,
			EndPeriod:           1_000_000,
			MinimumLockDuration: 3600,
			RewardReserve:       NewAmount(grant),
		},
		StakedAsset: AssetConfig{
			Address:     thor.BytesToAddress([]byte("StakedAsset")),
			Name:        "Staked",
			Decimals:    18,
			Allocations: allocations,
		},
		RewardAsset: AssetConfig{
			Address:  thor.BytesToAddress([]byte("RewardAsset")),
			Name:     "Reward",
			Decimals: 18,
		},
	}
}

// NewDevnet returns the dev genesis.
func NewDevnet(launchTime uint64) *Genesis {
	g, err := New(DevConfig(launchTime))
	if err != nil {
		panic(err)
	}
	return g
}
