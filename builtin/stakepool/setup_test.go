// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/token"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/test/datagen"
	"github.com/vechain/stakepool/thor"
)

const (
	basePeriod = uint64(1000)
	baseTime   = uint64(1_700_000_000)
	lockTime   = uint64(100)
)

var maxAllowance = new(uint256.Int).SetAllOne()

type testClock struct {
	period uint64
	now    uint64
}

func (c *testClock) Period() uint64 { return c.period }
func (c *testClock) Now() uint64    { return c.now }

// advance moves the clock forward by n blocks.
func (c *testClock) advance(n uint64) {
	c.period += n
	c.now += n * thor.BlockInterval
}

func (c *testClock) advanceTo(period uint64) {
	if period > c.period {
		c.advance(period - c.period)
	}
}

type envConfig struct {
	stakedFee      uint64
	rewardDecimals uint8
	rate           uint64
	start, end     uint64
	lock           uint64
	reserve        uint64
	skipInit       bool
}

func defaultConfig() envConfig {
	return envConfig{
		rewardDecimals: 18,
		rate:           2,
		start:          basePeriod + 10,
		end:            basePeriod + 500010,
		lock:           lockTime,
		reserve:        1_000_000_000,
	}
}

type testEnv struct {
	state     *state.State
	clock     *testClock
	staked    *token.Token
	reward    *token.Token
	pool      *StakePool
	treasury  thor.Address
	authority thor.Address
	events    []*Event
}

func newTestEnv(t *testing.T, cfgs ...func(*envConfig)) *testEnv {
	cfg := defaultConfig()
	for _, f := range cfgs {
		f(&cfg)
	}

	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		state:     state.New(db, nil),
		clock:     &testClock{period: basePeriod, now: baseTime},
		treasury:  datagen.RandAddress(),
		authority: datagen.RandAddress(),
	}
	env.staked = token.New(datagen.RandAddress(), env.state)
	require.NoError(t, env.staked.Initialize(18, cfg.stakedFee))
	env.reward = token.New(datagen.RandAddress(), env.state)
	require.NoError(t, env.reward.Initialize(cfg.rewardDecimals, 0))

	env.pool = New(datagen.RandAddress(), env.state, env.clock, env.staked, env.reward, NotifierFunc(func(ev *Event) {
		env.events = append(env.events, ev)
	}))
	require.NoError(t, env.reward.Mint(env.pool.Address(), uint256.NewInt(cfg.reserve)))

	if !cfg.skipInit {
		require.NoError(t, env.pool.Initialize(env.params(cfg)))
	}
	return env
}

func (env *testEnv) params(cfg envConfig) *Params {
	return &Params{
		Treasury:            env.treasury,
		Authority:           env.authority,
		RewardPerPeriod:     uint256.NewInt(cfg.rate),
		StartPeriod:         cfg.start,
		EndPeriod:           cfg.end,
		MinimumLockDuration: cfg.lock,
	}
}

// fund mints staked asset to a fresh participant and approves the pool.
func (env *testEnv) fund(t *testing.T, amount uint64) thor.Address {
	addr := datagen.RandAddress()
	require.NoError(t, env.staked.Mint(addr, uint256.NewInt(amount)))
	require.NoError(t, env.staked.Approve(addr, env.pool.Address(), maxAllowance))
	return addr
}

func (env *testEnv) stakedBalance(t *testing.T, addr thor.Address) *uint256.Int {
	bal, err := env.staked.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (env *testEnv) rewardBalance(t *testing.T, addr thor.Address) *uint256.Int {
	bal, err := env.reward.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (env *testEnv) pending(t *testing.T, addr thor.Address) *uint256.Int {
	v, err := env.pool.PendingReward(addr)
	require.NoError(t, err)
	return v
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) AdvanceTo(period uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.env.clock.advanceTo(period)
		t.Logf("advanced to period %d", period)
	})
}

func (st *TestSequence) Advance(periods uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.env.clock.advance(periods)
		t.Logf("advanced %d periods to %d", periods, st.env.clock.period)
	})
}

func (st *TestSequence) Deposit(addr thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.pool.Deposit(addr, uint256.NewInt(amount)); err != nil {
			t.Fatalf("failed to deposit %d for %s: %v", amount, addr, err)
		}
		t.Logf("deposited %d for %s", amount, addr)
	})
}

func (st *TestSequence) Withdraw(addr thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.pool.Withdraw(addr, uint256.NewInt(amount)); err != nil {
			t.Fatalf("failed to withdraw %d for %s: %v", amount, addr, err)
		}
		t.Logf("withdrew %d for %s", amount, addr)
	})
}

func (st *TestSequence) EarlyWithdraw(addr thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.pool.EarlyWithdraw(addr, uint256.NewInt(amount)); err != nil {
			t.Fatalf("failed to early withdraw %d for %s: %v", amount, addr, err)
		}
		t.Logf("early withdrew %d for %s", amount, addr)
	})
}

func (st *TestSequence) EmergencyWithdraw(addr thor.Address) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.pool.EmergencyWithdraw(addr); err != nil {
			t.Fatalf("failed to emergency withdraw for %s: %v", addr, err)
		}
		t.Logf("emergency withdrew for %s", addr)
	})
}

func (st *TestSequence) ExpectError(expected error, call func(p *StakePool) error) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.ErrorIs(t, call(st.env.pool), expected)
	})
}

func (st *TestSequence) AssertPending(addr thor.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.Equal(t, uint256.NewInt(expected), st.env.pending(t, addr), "pending reward of %s", addr)
	})
}

func (st *TestSequence) AssertRewardBalance(addr thor.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.Equal(t, uint256.NewInt(expected), st.env.rewardBalance(t, addr), "reward balance of %s", addr)
	})
}

func (st *TestSequence) AssertStakedBalance(addr thor.Address, expected uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.Equal(t, uint256.NewInt(expected), st.env.stakedBalance(t, addr), "staked balance of %s", addr)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}

type ParticipantAssertions struct {
	pool *StakePool
	addr thor.Address

	staked   *uint256.Int
	baseline *uint256.Int
	unlockAt *uint64
}

func AssertParticipant(pool *StakePool, addr thor.Address) *ParticipantAssertions {
	return &ParticipantAssertions{pool: pool, addr: addr}
}

func (pa *ParticipantAssertions) Staked(expected uint64) *ParticipantAssertions {
	pa.staked = uint256.NewInt(expected)
	return pa
}

func (pa *ParticipantAssertions) Baseline(expected uint64) *ParticipantAssertions {
	pa.baseline = uint256.NewInt(expected)
	return pa
}

func (pa *ParticipantAssertions) UnlockAt(expected uint64) *ParticipantAssertions {
	pa.unlockAt = &expected
	return pa
}

func (pa *ParticipantAssertions) Assert(t *testing.T) {
	part, err := pa.pool.Participant(pa.addr)
	require.NoError(t, err, "failed to get participant %s", pa.addr)

	if pa.staked != nil {
		assert.Equal(t, pa.staked, part.Staked, "participant %s staked mismatch", pa.addr)
	}
	if pa.baseline != nil {
		assert.Equal(t, pa.baseline, part.RewardBaseline, "participant %s baseline mismatch", pa.addr)
	}
	if pa.unlockAt != nil {
		assert.Equal(t, *pa.unlockAt, part.UnlockAt, "participant %s unlock time mismatch", pa.addr)
	}
}
