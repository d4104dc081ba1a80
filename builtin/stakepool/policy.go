// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"github.com/vechain/stakepool/builtin/reverts"
	"github.com/vechain/stakepool/thor"
)

// operation is the body of a mutating entry point.
type operation func() error

// policy wraps an operation with a cross-cutting rule.
type policy func(op operation) operation

// chain applies policies to op, the first policy being the outermost.
func chain(op operation, policies ...policy) operation {
	for i := len(policies) - 1; i >= 0; i-- {
		op = policies[i](op)
	}
	return op
}

// execute runs op under the policies, all or nothing.
// On failure every storage write and buffered event of op is discarded.
// Events are released to the notifier once the outermost call succeeds.
func (s *StakePool) execute(name string, op operation, policies ...policy) (err error) {
	checkpoint := s.sctx.State().NewCheckpoint()
	mark := len(s.events)

	func() {
		s.depth++
		defer func() {
			s.depth--
			if r := recover(); r != nil {
				s.sctx.State().RevertTo(checkpoint)
				s.events = s.events[:mark]
				panic(r)
			}
		}()
		err = chain(op, policies...)()
	}()

	if err != nil {
		s.sctx.State().RevertTo(checkpoint)
		s.events = s.events[:mark]
		metricOperationCount().AddWithLabel(1, map[string]string{"op": name, "result": "failed"})
		return err
	}
	metricOperationCount().AddWithLabel(1, map[string]string{"op": name, "result": "ok"})

	if s.depth == 0 {
		events := s.events
		s.events = nil
		if s.notifier != nil {
			for _, ev := range events {
				s.notifier.Notify(ev)
			}
		}
	}
	return nil
}

// whenInitialized rejects calls before the pool is initialized.
func (s *StakePool) whenInitialized() policy {
	return func(op operation) operation {
		return func() error {
			initialized, err := s.initialized.Get()
			if err != nil {
				return err
			}
			if !initialized {
				return ErrNotInitialized
			}
			return op()
		}
	}
}

// onlyAuthority rejects callers other than the pool authority.
func (s *StakePool) onlyAuthority(caller thor.Address) policy {
	return func(op operation) operation {
		return func() error {
			p, err := s.poolService.Get()
			if err != nil {
				return err
			}
			if caller != p.Authority {
				return reverts.Wrap(ErrUnauthorized, "%s", caller)
			}
			return op()
		}
	}
}

// nonReentrant rejects any mutating call while another one is active.
// The flag lives in storage so that it is shared by every instance bound to the same state.
func (s *StakePool) nonReentrant() policy {
	return func(op operation) operation {
		return func() error {
			entered, err := s.guard.Get()
			if err != nil {
				return err
			}
			if entered {
				return ErrReentrant
			}
			s.guard.Set(true)
			defer s.guard.Set(false)
			return op()
		}
	}
}

// mutating is the policy set of participant operations.
func (s *StakePool) mutating() []policy {
	return []policy{s.whenInitialized(), s.nonReentrant()}
}

// administrative is the policy set of authority operations.
func (s *StakePool) administrative(caller thor.Address) []policy {
	return []policy{s.whenInitialized(), s.onlyAuthority(caller), s.nonReentrant()}
}
