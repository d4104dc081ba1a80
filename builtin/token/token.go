// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a native fungible asset kept in contract storage.
package token

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	logger = log.New("pkg", "token")

	slotInitialized    = thor.BytesToBytes32([]byte("initialized"))
	slotDecimals       = thor.BytesToBytes32([]byte("decimals"))
	slotFeeBasisPoints = thor.BytesToBytes32([]byte("fee-basis-points"))
	slotTotalSupply    = thor.BytesToBytes32([]byte("total-supply"))
	slotBalances       = thor.BytesToBytes32([]byte("balances"))
	slotAllowances     = thor.BytesToBytes32([]byte("allowances"))

	basisPoints = uint256.NewInt(10_000)
)

var (
	ErrAlreadyInitialized    = reverts.New("token: already initialized")
	ErrInsufficientBalance   = reverts.New("token: insufficient balance")
	ErrInsufficientAllowance = reverts.New("token: insufficient allowance")
	ErrFeeOutOfRange         = reverts.New("token: transfer fee out of range")
)

func SetLogger(l log.Logger) {
	logger = l
}

// Token implements the fungible asset at a fixed address.
type Token struct {
	sctx           *solidity.Context
	initialized    *solidity.Bool
	decimals       *solidity.Uint64
	feeBasisPoints *solidity.Uint64
	totalSupply    *solidity.Uint256
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Token {
	sctx := solidity.NewContext(addr, state)
	return &Token{
		sctx:           sctx,
		initialized:    solidity.NewBool(sctx, slotInitialized),
		decimals:       solidity.NewUint64(sctx, slotDecimals),
		feeBasisPoints: solidity.NewUint64(sctx, slotFeeBasisPoints),
		totalSupply:    solidity.NewUint256(sctx, slotTotalSupply),
	}
}

func balanceSlot(holder thor.Address) thor.Bytes32 {
	return thor.Blake2b(holder.Bytes(), slotBalances.Bytes())
}

func allowanceSlot(owner, spender thor.Address) thor.Bytes32 {
	return thor.Blake2b(owner.Bytes(), spender.Bytes(), slotAllowances.Bytes())
}

func (t *Token) balance(holder thor.Address) *solidity.Uint256 {
	return solidity.NewUint256(t.sctx, balanceSlot(holder))
}

func (t *Token) allowance(owner, spender thor.Address) *solidity.Uint256 {
	return solidity.NewUint256(t.sctx, allowanceSlot(owner, spender))
}

// Initialize sets the immutable parameters of the token.
// A non zero fee is charged on every transfer and burned.
func (t *Token) Initialize(decimals uint8, feeBasisPoints uint64) error {
	initialized, err := t.initialized.Get()
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	if feeBasisPoints > thor.MaxTransferFeeBasisPoints {
		return ErrFeeOutOfRange
	}
	t.initialized.Set(true)
	t.decimals.Set(uint64(decimals))
	t.feeBasisPoints.Set(feeBasisPoints)
	return nil
}

// Address returns the address of the token.
func (t *Token) Address() thor.Address {
	return t.sctx.Address()
}

// Decimals returns the decimals of the token.
func (t *Token) Decimals() (uint8, error) {
	v, err := t.decimals.Get()
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// FeeBasisPoints returns the share of each transfer that is burned.
func (t *Token) FeeBasisPoints() (uint64, error) {
	return t.feeBasisPoints.Get()
}

// TotalSupply returns the circulating supply.
func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.totalSupply.Get()
}

// BalanceOf returns the balance of the holder.
func (t *Token) BalanceOf(holder thor.Address) (*uint256.Int, error) {
	return t.balance(holder).Get()
}

// Allowance returns the amount spender may still move from owner.
func (t *Token) Allowance(owner, spender thor.Address) (*uint256.Int, error) {
	return t.allowance(owner, spender).Get()
}

// Approve sets the amount spender may move from owner.
func (t *Token) Approve(owner, spender thor.Address, amount *uint256.Int) error {
	t.allowance(owner, spender).Set(amount)
	return nil
}

// Mint creates amount for the holder.
func (t *Token) Mint(to thor.Address, amount *uint256.Int) error {
	if err := t.totalSupply.Add(amount); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := t.balance(to).Add(amount); err != nil {
		return errors.Wrap(err, "mint")
	}
	logger.Debug("minted", "token", t.Address(), "to", to, "amount", amount)
	return nil
}

// Transfer moves amount from the holder to the recipient.
// The recipient is credited amount less the transfer fee.
func (t *Token) Transfer(from, to thor.Address, amount *uint256.Int) error {
	bal, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return reverts.Wrap(ErrInsufficientBalance, "%s has %s, needs %s", from, bal, amount)
	}
	if amount.IsZero() {
		return nil
	}

	fee, err := t.fee(amount)
	if err != nil {
		return err
	}
	t.balance(from).Set(bal.Sub(bal, amount))
	if err := t.balance(to).Add(new(uint256.Int).Sub(amount, fee)); err != nil {
		return errors.Wrap(err, "transfer")
	}
	if !fee.IsZero() {
		if err := t.totalSupply.Sub(fee); err != nil {
			return errors.Wrap(err, "burn fee")
		}
	}
	return nil
}

// TransferFrom moves amount from the owner to the recipient on behalf of spender.
func (t *Token) TransferFrom(spender, from, to thor.Address, amount *uint256.Int) error {
	allowed, err := t.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowed.Lt(amount) {
		return reverts.Wrap(ErrInsufficientAllowance, "%s allowed %s, needs %s", spender, allowed, amount)
	}
	t.allowance(from, spender).Set(allowed.Sub(allowed, amount))
	return t.Transfer(from, to, amount)
}

func (t *Token) fee(amount *uint256.Int) (*uint256.Int, error) {
	bp, err := t.feeBasisPoints.Get()
	if err != nil {
		return nil, err
	}
	if bp == 0 {
		return new(uint256.Int), nil
	}
	fee, overflow := new(uint256.Int).MulOverflow(amount, uint256.NewInt(bp))
	if overflow {
		return nil, solidity.ErrUint256Overflow
	}
	return fee.Div(fee, basisPoints), nil
}
