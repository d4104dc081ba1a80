// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/runtime"
)

type Pool struct {
	host *runtime.Host
}

func New(host *runtime.Host) *Pool {
	return &Pool{host}
}

func (p *Pool) handleGetPool(w http.ResponseWriter, _ *http.Request) error {
	var resp *JSONPool
	err := p.host.View(func(d *genesis.Deployment) error {
		pl, err := d.Pool.Pool()
		if err != nil {
			return err
		}
		total, err := d.Pool.TotalStaked()
		if err != nil {
			return err
		}
		reserve, err := d.Pool.RewardReserve()
		if err != nil {
			return err
		}
		resp = &JSONPool{
			Address:             d.Pool.Address(),
			StakedAsset:         pl.StakedAsset,
			RewardAsset:         pl.RewardAsset,
			Treasury:            pl.Treasury,
			Authority:           pl.Authority,
			RewardPerPeriod:     utils.Amount(pl.RewardPerPeriod),
			AccRewardPerShare:   utils.Amount(pl.AccRewardPerShare),
			PrecisionFactor:     utils.Amount(pl.PrecisionFactor),
			StartPeriod:         pl.StartPeriod,
			EndPeriod:           pl.EndPeriod,
			LastUpdatePeriod:    pl.LastUpdatePeriod,
			MinimumLockDuration: pl.MinimumLockDuration,
			TotalStaked:         utils.Amount(total),
			RewardReserve:       utils.Amount(reserve),
			Period:              d.Clock.Period(),
		}
		return nil
	})
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, resp)
}

func (p *Pool) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET " + pathPrefix).
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
}
