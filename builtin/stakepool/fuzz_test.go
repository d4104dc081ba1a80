// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"fmt"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/builtin/stakepool/reward"
	"github.com/vechain/stakepool/thor"
)

type randomOp struct {
	Kind    uint8
	Who     uint8
	Amount  uint16
	Advance uint8
}

const (
	opDeposit = iota
	opWithdraw
	opHarvest
	opEarlyWithdraw
	opEmergencyWithdraw
	opCount
)

func TestRandomOperations(t *testing.T) {
	for seed := int64(1); seed <= 8; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			runRandomOperations(t, seed)
		})
	}
}

func runRandomOperations(t *testing.T, seed int64) {
	const rate = 1000
	env := newTestEnv(t, func(c *envConfig) {
		c.rate = rate
		c.start = basePeriod + 10
		c.end = basePeriod + 400
		c.lock = 30
	})

	var ops []randomOp
	fuzz.NewWithSeed(seed).NilChance(0).NumElements(150, 250).Fuzz(&ops)

	participants := make([]thor.Address, 4)
	for i := range participants {
		participants[i] = env.fund(t, 100_000)
	}

	var (
		paid      = new(uint256.Int)
		succeeded uint64
	)
	for i, op := range ops {
		env.clock.advance(uint64(op.Advance % 8))
		who := participants[int(op.Who)%len(participants)]
		amount := uint256.NewInt(uint64(op.Amount % 2000))

		var err error
		switch op.Kind % opCount {
		case opDeposit:
			err = env.pool.Deposit(who, amount)
		case opWithdraw:
			err = env.pool.Withdraw(who, amount)
		case opHarvest:
			before := env.rewardBalance(t, who)
			pending := env.pending(t, who)
			err = env.pool.Withdraw(who, new(uint256.Int))
			if err == nil {
				after := env.rewardBalance(t, who)
				assert.Equal(t, pending, new(uint256.Int).Sub(after, before), "op %d: harvest must pay the pending reward", i)
			}
		case opEarlyWithdraw:
			err = env.pool.EarlyWithdraw(who, amount)
		case opEmergencyWithdraw:
			err = env.pool.EmergencyWithdraw(who)
		}
		if err != nil {
			require.True(t, reverts.IsRevertErr(err), "op %d: unexpected error %v", i, err)
		} else {
			succeeded++
		}

		// every staked unit is owned by a participant
		sum := new(uint256.Int)
		outstanding := new(uint256.Int)
		for _, addr := range participants {
			part, err := env.pool.Participant(addr)
			require.NoError(t, err)
			sum.Add(sum, part.Staked)
			outstanding.Add(outstanding, env.pending(t, addr))
		}
		total, err := env.pool.TotalStaked()
		require.NoError(t, err)
		require.Equal(t, total, sum, "op %d: staked balance mismatch", i)

		// never distribute more than the window has minted, each baseline reset may round up by one unit
		paid.Set(env.rewardBalance(t, env.treasury))
		for _, addr := range participants {
			paid.Add(paid, env.rewardBalance(t, addr))
		}
		distributed := new(uint256.Int).Add(paid, outstanding)

		var periods uint64
		if current := env.clock.Period(); current > basePeriod+10 {
			periods = reward.Multiplier(basePeriod+10, current, basePeriod+400)
		}
		minted := uint256.NewInt(rate*periods + succeeded + uint64(len(participants)))
		require.False(t, distributed.Gt(minted), "op %d: distributed %s exceeds minted %s", i, distributed, minted)
	}
}
