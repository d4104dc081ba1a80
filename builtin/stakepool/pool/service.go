// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/thor"
)

var (
	slotStakedAsset         = thor.BytesToBytes32([]byte("staked-asset"))
	slotRewardAsset         = thor.BytesToBytes32([]byte("reward-asset"))
	slotTreasury            = thor.BytesToBytes32([]byte("treasury"))
	slotAuthority           = thor.BytesToBytes32([]byte("authority"))
	slotAccRewardPerShare   = thor.BytesToBytes32([]byte("acc-reward-per-share"))
	slotRewardPerPeriod     = thor.BytesToBytes32([]byte("reward-per-period"))
	slotPrecisionFactor     = thor.BytesToBytes32([]byte("precision-factor"))
	slotStartPeriod         = thor.BytesToBytes32([]byte("start-period"))
	slotEndPeriod           = thor.BytesToBytes32([]byte("end-period"))
	slotLastUpdatePeriod    = thor.BytesToBytes32([]byte("last-update-period"))
	slotMinimumLockDuration = thor.BytesToBytes32([]byte("minimum-lock-duration"))
)

// Service stores the pool, one slot per field.
type Service struct {
	stakedAsset         *solidity.Address
	rewardAsset         *solidity.Address
	treasury            *solidity.Address
	authority           *solidity.Address
	accRewardPerShare   *solidity.Uint256
	rewardPerPeriod     *solidity.Uint256
	precisionFactor     *solidity.Uint256
	startPeriod         *solidity.Uint64
	endPeriod           *solidity.Uint64
	lastUpdatePeriod    *solidity.Uint64
	minimumLockDuration *solidity.Uint64
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakedAsset:         solidity.NewAddress(sctx, slotStakedAsset),
		rewardAsset:         solidity.NewAddress(sctx, slotRewardAsset),
		treasury:            solidity.NewAddress(sctx, slotTreasury),
		authority:           solidity.NewAddress(sctx, slotAuthority),
		accRewardPerShare:   solidity.NewUint256(sctx, slotAccRewardPerShare),
		rewardPerPeriod:     solidity.NewUint256(sctx, slotRewardPerPeriod),
		precisionFactor:     solidity.NewUint256(sctx, slotPrecisionFactor),
		startPeriod:         solidity.NewUint64(sctx, slotStartPeriod),
		endPeriod:           solidity.NewUint64(sctx, slotEndPeriod),
		lastUpdatePeriod:    solidity.NewUint64(sctx, slotLastUpdatePeriod),
		minimumLockDuration: solidity.NewUint64(sctx, slotMinimumLockDuration),
	}
}

// Get loads the pool.
func (s *Service) Get() (*Pool, error) {
	var (
		p   Pool
		err error
	)
	addrs := []struct {
		slot *solidity.Address
		dst  *thor.Address
	}{
		{s.stakedAsset, &p.StakedAsset},
		{s.rewardAsset, &p.RewardAsset},
		{s.treasury, &p.Treasury},
		{s.authority, &p.Authority},
	}
	for _, a := range addrs {
		if *a.dst, err = a.slot.Get(); err != nil {
			return nil, err
		}
	}
	nums := []struct {
		slot *solidity.Uint256
		dst  **uint256.Int
	}{
		{s.accRewardPerShare, &p.AccRewardPerShare},
		{s.rewardPerPeriod, &p.RewardPerPeriod},
		{s.precisionFactor, &p.PrecisionFactor},
	}
	for _, n := range nums {
		if *n.dst, err = n.slot.Get(); err != nil {
			return nil, err
		}
	}
	periods := []struct {
		slot *solidity.Uint64
		dst  *uint64
	}{
		{s.startPeriod, &p.StartPeriod},
		{s.endPeriod, &p.EndPeriod},
		{s.lastUpdatePeriod, &p.LastUpdatePeriod},
		{s.minimumLockDuration, &p.MinimumLockDuration},
	}
	for _, n := range periods {
		if *n.dst, err = n.slot.Get(); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Set stores every field of the pool.
func (s *Service) Set(p *Pool) {
	s.stakedAsset.Set(&p.StakedAsset)
	s.rewardAsset.Set(&p.RewardAsset)
	s.treasury.Set(&p.Treasury)
	s.authority.Set(&p.Authority)
	s.accRewardPerShare.Set(p.AccRewardPerShare)
	s.rewardPerPeriod.Set(p.RewardPerPeriod)
	s.precisionFactor.Set(p.PrecisionFactor)
	s.startPeriod.Set(p.StartPeriod)
	s.endPeriod.Set(p.EndPeriod)
	s.lastUpdatePeriod.Set(p.LastUpdatePeriod)
	s.minimumLockDuration.Set(p.MinimumLockDuration)
}
