// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/thor"
)

// Config is the user defined genesis of a pool and its two assets.
type Config struct {
	LaunchTime  uint64            `yaml:"launchTime"`
	Pool        PoolConfig        `yaml:"pool"`
	StakedAsset AssetConfig       `yaml:"stakedAsset"`
	RewardAsset AssetConfig       `yaml:"rewardAsset"`
	Overrides   map[string]uint32 `yaml:"overrides,omitempty"`
}

// PoolConfig is the initialization of the pool.
type PoolConfig struct {
	Address             thor.Address `yaml:"address"`
	Treasury            thor.Address `yaml:"treasury"`
	Authority           thor.Address `yaml:"authority"`
	RewardPerPeriod     *Amount      `yaml:"rewardPerPeriod"`
	StartPeriod         uint64       `yaml:"startPeriod"`
	EndPeriod           uint64       `yaml:"endPeriod"`
	MinimumLockDuration uint64       `yaml:"minimumLockDuration"`
	RewardReserve       *Amount      `yaml:"rewardReserve,omitempty"`
}

// AssetConfig defines a native asset and its initial holders.
type AssetConfig struct {
	Address                thor.Address `yaml:"address"`
	Name                   string       `yaml:"name"`
	Decimals               uint8        `yaml:"decimals"`
	TransferFeeBasisPoints uint64       `yaml:"transferFeeBasisPoints,omitempty"`
	Allocations            []Allocation `yaml:"allocations,omitempty"`
}

type Allocation struct {
	Address thor.Address `yaml:"address"`
	Amount  *Amount      `yaml:"amount"`
}

// Amount is a 256 bits unsigned integer written as decimal or 0x prefixed hex.
type Amount uint256.Int

func NewAmount(v *uint256.Int) *Amount {
	return (*Amount)(new(uint256.Int).Set(v))
}

func (a *Amount) Int() *uint256.Int {
	return new(uint256.Int).Set((*uint256.Int)(a))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: amount must be a scalar", value.Line)
	}
	var (
		v   *uint256.Int
		err error
	)
	s := strings.ReplaceAll(value.Value, "_", "")
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return errors.Wrapf(err, "line %d: invalid amount %q", value.Line, value.Value)
	}
	*a = Amount(*v)
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (a Amount) MarshalYAML() (any, error) {
	v := uint256.Int(a)
	return v.Dec(), nil
}

// configVariables are the tunables a genesis may override.
var configVariables = map[string]*solidity.ConfigVariable{
	stakepool.MaxLockDuration.Name(): stakepool.MaxLockDuration,
}

// Load reads a yaml config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	return Parse(data)
}

// Parse decodes a yaml config, unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &cfg, nil
}

// Marshal encodes the config as yaml.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the config can be deployed.
func (c *Config) Validate() error {
	p := c.Pool
	if p.Address.IsZero() {
		return errors.New("pool: address must be set")
	}
	if p.Treasury.IsZero() {
		return errors.New("pool: treasury must be set")
	}
	if p.Authority.IsZero() {
		return errors.New("pool: authority must be set")
	}
	if p.RewardPerPeriod == nil {
		return errors.New("pool: rewardPerPeriod must be set")
	}
	if p.StartPeriod > p.EndPeriod {
		return errors.Errorf("pool: startPeriod %d is after endPeriod %d", p.StartPeriod, p.EndPeriod)
	}

	maxLock := uint64(stakepool.MaxLockDuration.Get())
	for name, value := range c.Overrides {
		if _, ok := configVariables[name]; !ok {
			return errors.Errorf("overrides: unknown variable %q", name)
		}
		if value == 0 {
			return errors.Errorf("overrides: %s must not be zero", name)
		}
		if name == stakepool.MaxLockDuration.Name() {
			maxLock = uint64(value)
		}
	}
	if p.MinimumLockDuration > maxLock {
		return errors.Errorf("pool: minimumLockDuration %d exceeds %d", p.MinimumLockDuration, maxLock)
	}

	if err := c.StakedAsset.validate("stakedAsset"); err != nil {
		return err
	}
	if err := c.RewardAsset.validate("rewardAsset"); err != nil {
		return err
	}
	if c.StakedAsset.Address == c.RewardAsset.Address {
		return errors.New("stakedAsset and rewardAsset must differ")
	}
	if c.StakedAsset.Address == p.Address || c.RewardAsset.Address == p.Address {
		return errors.New("asset address collides with the pool")
	}
	if c.RewardAsset.Decimals >= thor.PrecisionCeiling {
		return errors.Errorf("rewardAsset: decimals must be lower than %d", thor.PrecisionCeiling)
	}
	return nil
}

func (a *AssetConfig) validate(field string) error {
	if a.Address.IsZero() {
		return errors.Errorf("%s: address must be set", field)
	}
	if a.TransferFeeBasisPoints > thor.MaxTransferFeeBasisPoints {
		return errors.Errorf("%s: transferFeeBasisPoints %d out of range", field, a.TransferFeeBasisPoints)
	}
	for i, alloc := range a.Allocations {
		if alloc.Address.IsZero() {
			return errors.Errorf("%s: allocation %d: address must be set", field, i)
		}
		if alloc.Amount == nil {
			return errors.Errorf("%s: allocation %d: amount must be set", field, i)
		}
	}
	return nil
}
