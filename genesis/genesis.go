// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis defines and deploys the initial state of a pool and its assets.
package genesis

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/state"
)

var logger = log.New("pkg", "genesis")

// Genesis is a validated config ready to be deployed.
type Genesis struct {
	config  *Config
	builder *Builder
}

// Deployment is the set of builtins of a genesis bound to a state.
type Deployment struct {
	StakedAsset *token.Token
	RewardAsset *token.Token
	Pool        *stakepool.StakePool
	Clock       stakepool.Clock
}

// launchClock is the clock of the genesis block.
type launchClock struct {
	now uint64
}

func (c launchClock) Period() uint64 { return 0 }
func (c launchClock) Now() uint64    { return c.now }

// New validates the config and prepares its deployment.
func New(cfg *Config) (*Genesis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid genesis")
	}

	g := &Genesis{config: cfg}
	g.builder = new(Builder).
		Timestamp(cfg.LaunchTime).
		State(g.storeOverrides).
		State(g.deployAssets).
		State(g.deployPool)
	return g, nil
}

func (g *Genesis) Config() *Config {
	return g.config
}

func (g *Genesis) LaunchTime() uint64 {
	return g.builder.timestamp
}

// Build deploys the genesis into st.
func (g *Genesis) Build(st *state.State) error {
	if err := g.builder.Build(st); err != nil {
		return err
	}
	logger.Info("genesis built",
		"pool", g.config.Pool.Address,
		"stakedAsset", g.config.StakedAsset.Address,
		"rewardAsset", g.config.RewardAsset.Address,
	)
	return nil
}

// Bind returns the builtins of the genesis over st.
func (g *Genesis) Bind(st *state.State, clock stakepool.Clock, notifier stakepool.Notifier) *Deployment {
	staked := token.New(g.config.StakedAsset.Address, st)
	reward := token.New(g.config.RewardAsset.Address, st)
	return &Deployment{
		StakedAsset: staked,
		RewardAsset: reward,
		Pool:        stakepool.New(g.config.Pool.Address, st, clock, staked, reward, notifier),
		Clock:       clock,
	}
}

func (g *Genesis) storeOverrides(st *state.State) error {
	ctx := solidity.NewContext(g.config.Pool.Address, st)
	for name, value := range g.config.Overrides {
		configVariables[name].Store(ctx, value)
	}
	return nil
}

func (g *Genesis) deployAssets(st *state.State) error {
	for _, asset := range []*AssetConfig{&g.config.StakedAsset, &g.config.RewardAsset} {
		t := token.New(asset.Address, st)
		if err := t.Initialize(asset.Decimals, asset.TransferFeeBasisPoints); err != nil {
			return errors.Wrapf(err, "initialize %s", asset.Name)
		}
		for _, alloc := range asset.Allocations {
			if err := t.Mint(alloc.Address, alloc.Amount.Int()); err != nil {
				return errors.Wrapf(err, "allocate %s to %s", asset.Name, alloc.Address)
			}
		}
	}
	return nil
}

func (g *Genesis) deployPool(st *state.State) error {
	p := g.config.Pool
	d := g.Bind(st, launchClock{now: g.config.LaunchTime}, nil)

	if err := d.Pool.Initialize(&stakepool.Params{
		Treasury:            p.Treasury,
		Authority:           p.Authority,
		RewardPerPeriod:     p.RewardPerPeriod.Int(),
		StartPeriod:         p.StartPeriod,
		EndPeriod:           p.EndPeriod,
		MinimumLockDuration: p.MinimumLockDuration,
	}); err != nil {
		return errors.Wrap(err, "initialize pool")
	}
	if p.RewardReserve != nil {
		if err := d.RewardAsset.Mint(p.Address, p.RewardReserve.Int()); err != nil {
			return errors.Wrap(err, "fund reward reserve")
		}
	}
	return nil
}
