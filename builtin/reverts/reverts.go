// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// ErrRevert is a caller error, the call is rejected and has no effect.
type ErrRevert struct {
	message string
	cause   *ErrRevert
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

// Wrap annotates a revert with call specific details, errors.Is still matches the original.
func Wrap(cause *ErrRevert, format string, args ...any) *ErrRevert {
	return &ErrRevert{
		message: fmt.Sprintf("%s: %s", cause.message, fmt.Sprintf(format, args...)),
		cause:   cause,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
