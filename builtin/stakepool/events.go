// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/vechain/stakepool/thor"
)

// Kind identifies the type of an event.
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdraw
	KindEarlyWithdraw
	KindEmergencyWithdraw
	KindNewRewardPerPeriod
	KindNewWindow
	KindRewardsStop
	KindAssetRecovered
)

var kindNames = map[Kind]string{
	KindDeposit:            "Deposit",
	KindWithdraw:           "Withdraw",
	KindEarlyWithdraw:      "EarlyWithdraw",
	KindEmergencyWithdraw:  "EmergencyWithdraw",
	KindNewRewardPerPeriod: "NewRewardPerPeriod",
	KindNewWindow:          "NewWindow",
	KindRewardsStop:        "RewardsStop",
	KindAssetRecovered:     "AssetRecovered",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// Topic returns the keccak-256 hash of the kind name.
func (k Kind) Topic() thor.Bytes32 {
	return thor.Keccak256([]byte(k.String()))
}

// Event is a notification emitted by a successful operation.
//
//	Deposit, Withdraw: Account is the participant, Amount the nominal principal, Reward the reward paid.
//	EarlyWithdraw: Reward is the amount forfeited to the treasury.
//	EmergencyWithdraw: Amount is the principal returned.
//	NewRewardPerPeriod: Amount is the new rate.
//	NewWindow: StartPeriod and EndPeriod are the new window.
//	RewardsStop: EndPeriod is the period rewards stopped at.
//	AssetRecovered: Account is the asset, Amount the quantity sent to the authority.
type Event struct {
	Kind        Kind
	Account     thor.Address
	Amount      *uint256.Int
	Reward      *uint256.Int
	StartPeriod uint64
	EndPeriod   uint64
}

// Notifier receives the events of successful operations, in emission order.
type Notifier interface {
	Notify(ev *Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ev *Event)

func (f NotifierFunc) Notify(ev *Event) {
	f(ev)
}

func zeroIfNil(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}

func (s *StakePool) emit(ev *Event) {
	ev.Amount = zeroIfNil(ev.Amount)
	ev.Reward = zeroIfNil(ev.Reward)
	s.events = append(s.events, ev)
}
