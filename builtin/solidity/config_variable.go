// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/vechain/stakepool/thor"
)

var logger = log.New("pkg", "solidity")

// ConfigVariable is a tunable with a compiled-in default that a deployment may override through storage.
type ConfigVariable struct {
	slot        thor.Bytes32
	name        string
	value       uint32
	initialised bool
}

func NewConfigVariable(name string, defaultValue uint32) *ConfigVariable {
	return &ConfigVariable{
		slot:        thor.BytesToBytes32([]byte(name)),
		name:        name,
		value:       defaultValue,
		initialised: false,
	}
}

func (c *ConfigVariable) Get() uint32 {
	return c.value
}

func (c *ConfigVariable) Name() string {
	return c.name
}

func (c *ConfigVariable) Slot() thor.Bytes32 {
	return c.slot
}

// Override loads the stored value once, a zero slot keeps the default.
func (c *ConfigVariable) Override(ctx *Context) {
	if c.initialised { // early return to prevent subsequent reads
		return
	}
	value, err := NewUint64(ctx, c.slot).Get()
	if err != nil {
		logger.Warn("failed to read config value", "slot", c.Name(), "error", err)
		return
	}
	c.initialised = true
	if value != 0 {
		c.value = uint32(value)
		logger.Debug("debug override found new config value", "slot", c.Name(), "value", c.Get())
	} else {
		logger.Debug("using default config value", "slot", c.Name(), "value", c.Get())
	}
}

// Store writes an override for the variable into the contract storage.
func (c *ConfigVariable) Store(ctx *Context, value uint32) {
	NewUint64(ctx, c.slot).Set(uint64(value))
}
