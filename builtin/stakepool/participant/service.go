// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participant

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/thor"
)

var slotParticipants = thor.BytesToBytes32([]byte("participants"))

// Service stores participant records keyed by address.
type Service struct {
	records *solidity.Mapping[thor.Address, *Participant]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		records: solidity.NewMapping[thor.Address, *Participant](sctx, slotParticipants),
	}
}

// Get returns the record of the address, a zeroed record if it never staked.
func (s *Service) Get(addr thor.Address) (*Participant, error) {
	p, err := s.records.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get participant")
	}
	if p.Staked == nil {
		p.Staked = new(uint256.Int)
	}
	if p.RewardBaseline == nil {
		p.RewardBaseline = new(uint256.Int)
	}
	return p, nil
}

// Set stores the record. Records are never deleted, a full exit leaves a zeroed record.
func (s *Service) Set(addr thor.Address, p *Participant) error {
	if err := s.records.Set(addr, p); err != nil {
		return errors.Wrap(err, "failed to set participant")
	}
	return nil
}
