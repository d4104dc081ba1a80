// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package participants

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

type Participants struct {
	host *runtime.Host
}

func New(host *runtime.Host) *Participants {
	return &Participants{host}
}

func parseAddress(req *http.Request) (thor.Address, error) {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return thor.Address{}, utils.BadRequest(errors.WithMessage(err, "address"))
	}
	return addr, nil
}

func (p *Participants) handleGetParticipant(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}

	var resp *JSONParticipant
	err = p.host.View(func(d *genesis.Deployment) error {
		part, err := d.Pool.Participant(addr)
		if err != nil {
			return err
		}
		resp = &JSONParticipant{
			Address:        addr,
			Staked:         utils.Amount(part.Staked),
			RewardBaseline: utils.Amount(part.RewardBaseline),
			UnlockAt:       part.UnlockAt,
			Locked:         part.Locked,
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, resp)
}

func (p *Participants) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	addr, err := parseAddress(req)
	if err != nil {
		return err
	}

	var resp *JSONPending
	err = p.host.View(func(d *genesis.Deployment) error {
		pending, err := d.Pool.PendingReward(addr)
		if err != nil {
			return err
		}
		resp = &JSONPending{
			Address: addr,
			Pending: utils.Amount(pending),
			Period:  d.Clock.Period(),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, resp)
}

func (p *Participants) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET " + pathPrefix + "/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetParticipant))
	sub.Path("/{address}/pending").
		Methods(http.MethodGet).
		Name("GET " + pathPrefix + "/{address}/pending").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPending))
}
