// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakepool implements an accrual-based staking ledger.
//
// Participants deposit a staked asset and accrue a reward asset in proportion to
// their share of the pool. The pool keeps a lazily settled reward-per-share
// accumulator, each participant keeps a baseline of what was already settled.
package stakepool

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/builtin/stakepool/participant"
	"github.com/vechain/stakepool/builtin/stakepool/pool"
	"github.com/vechain/stakepool/builtin/stakepool/reward"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	logger = log.New("pkg", "stakepool")

	MaxLockDuration = solidity.NewConfigVariable("stakepool-max-lock-duration", 365*24*3600) // 1 year

	slotInitialized = thor.BytesToBytes32([]byte("initialized"))
	slotGuard       = thor.BytesToBytes32([]byte("guard"))
)

func SetLogger(l log.Logger) {
	logger = l
}

// Asset is the fungible asset ledger the pool moves staked and reward assets with.
type Asset interface {
	Address() thor.Address
	Decimals() (uint8, error)
	BalanceOf(holder thor.Address) (*uint256.Int, error)
	Transfer(from, to thor.Address, amount *uint256.Int) error
	TransferFrom(spender, from, to thor.Address, amount *uint256.Int) error
}

// Clock supplies the logical period rewards accrue over and the time locks expire against.
type Clock interface {
	Period() uint64
	Now() uint64
}

// Params configures a pool at initialization.
type Params struct {
	Treasury            thor.Address
	Authority           thor.Address
	RewardPerPeriod     *uint256.Int
	StartPeriod         uint64
	EndPeriod           uint64
	MinimumLockDuration uint64
}

// StakePool implements the staking ledger at a fixed address.
type StakePool struct {
	sctx        *solidity.Context
	clock       Clock
	stakedAsset Asset
	rewardAsset Asset
	notifier    Notifier

	initialized  *solidity.Bool
	guard        *solidity.Bool
	poolService  *pool.Service
	participants *participant.Service

	events []*Event
	depth  int
}

// New create a new instance. The notifier is optional.
func New(addr thor.Address, state *state.State, clock Clock, stakedAsset, rewardAsset Asset, notifier Notifier) *StakePool {
	sctx := solidity.NewContext(addr, state)

	MaxLockDuration.Override(sctx)

	return &StakePool{
		sctx:        sctx,
		clock:       clock,
		stakedAsset: stakedAsset,
		rewardAsset: rewardAsset,
		notifier:    notifier,

		initialized:  solidity.NewBool(sctx, slotInitialized),
		guard:        solidity.NewBool(sctx, slotGuard),
		poolService:  pool.New(sctx),
		participants: participant.New(sctx),
	}
}

// Address returns the address of the pool, the holder of its assets.
func (s *StakePool) Address() thor.Address {
	return s.sctx.Address()
}

//
// Getters - no state change
//

// Initialized returns whether the pool was initialized.
func (s *StakePool) Initialized() (bool, error) {
	return s.initialized.Get()
}

// Pool returns the pool as last settled.
func (s *StakePool) Pool() (*pool.Pool, error) {
	return s.poolService.Get()
}

// Participant returns the record of the address, zeroed if it never staked.
func (s *StakePool) Participant(addr thor.Address) (*participant.Participant, error) {
	return s.participants.Get(addr)
}

// TotalStaked returns the staked asset held by the pool.
func (s *StakePool) TotalStaked() (*uint256.Int, error) {
	return s.stakedAsset.BalanceOf(s.Address())
}

// RewardReserve returns the reward asset held by the pool.
func (s *StakePool) RewardReserve() (*uint256.Int, error) {
	return s.rewardAsset.BalanceOf(s.Address())
}

// PendingReward returns the reward the address would be paid if settled now.
func (s *StakePool) PendingReward(addr thor.Address) (*uint256.Int, error) {
	p, err := s.poolService.Get()
	if err != nil {
		return nil, err
	}
	part, err := s.participants.Get(addr)
	if err != nil {
		return nil, err
	}
	if part.Staked.IsZero() {
		return new(uint256.Int), nil
	}
	total, err := s.TotalStaked()
	if err != nil {
		return nil, err
	}
	acc, err := p.Project(s.clock.Period(), total)
	if err != nil {
		return nil, err
	}
	return part.Pending(acc, p.PrecisionFactor)
}

//
// Setters - state change
//

// Initialize configures the pool. It can be called once.
func (s *StakePool) Initialize(params *Params) error {
	logger.Debug("initializing pool",
		"stakedAsset", s.stakedAsset.Address(),
		"rewardAsset", s.rewardAsset.Address(),
		"start", params.StartPeriod,
		"end", params.EndPeriod,
	)

	err := s.execute("initialize", func() error {
		initialized, err := s.initialized.Get()
		if err != nil {
			return err
		}
		if initialized {
			return ErrAlreadyInitialized
		}
		if s.stakedAsset.Address() == s.rewardAsset.Address() {
			return ErrSameAsset
		}
		if params.StartPeriod > params.EndPeriod {
			return ErrInvalidWindow
		}
		if params.MinimumLockDuration > uint64(MaxLockDuration.Get()) {
			return ErrLockTooLong
		}
		decimals, err := s.rewardAsset.Decimals()
		if err != nil {
			return err
		}
		precision, ok := reward.PrecisionFactor(decimals)
		if !ok {
			return ErrPrecisionCeiling
		}

		s.initialized.Set(true)
		s.poolService.Set(&pool.Pool{
			StakedAsset:         s.stakedAsset.Address(),
			RewardAsset:         s.rewardAsset.Address(),
			Treasury:            params.Treasury,
			Authority:           params.Authority,
			AccRewardPerShare:   new(uint256.Int),
			RewardPerPeriod:     zeroIfNil(params.RewardPerPeriod),
			PrecisionFactor:     precision,
			StartPeriod:         params.StartPeriod,
			EndPeriod:           params.EndPeriod,
			LastUpdatePeriod:    params.StartPeriod,
			MinimumLockDuration: params.MinimumLockDuration,
		})
		return nil
	}, s.nonReentrant())
	if err != nil {
		logger.Info("initialize pool failed", "error", err)
		return err
	}

	logger.Info("initialized pool", "address", s.Address())
	return nil
}

// settle brings the accumulator up to the current period and returns the settled pool.
func (s *StakePool) settle() (*pool.Pool, error) {
	p, err := s.poolService.Get()
	if err != nil {
		return nil, err
	}
	total, err := s.TotalStaked()
	if err != nil {
		return nil, err
	}
	changed, err := p.Settle(s.clock.Period(), total)
	if err != nil {
		return nil, err
	}
	if changed {
		s.poolService.Set(p)
	}
	return p, nil
}
