// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/thor"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func parseUint(query url.Values, key string, bitSize int) (*uint64, error) {
	s := query.Get(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, key))
	}
	return &v, nil
}

// parseFilter builds a filter from the query string:
// account, kind (comma separated), from, to, order, offset and limit.
func (e *Events) parseFilter(query url.Values) (*eventdb.EventFilter, error) {
	filter := &eventdb.EventFilter{
		Order:   eventdb.ASC,
		Options: &eventdb.Options{Limit: e.limit},
	}

	if s := query.Get("account"); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "account"))
		}
		filter.Account = &addr
	}
	if s := query.Get("kind"); s != "" {
		for _, name := range strings.Split(s, ",") {
			kind, err := stakepool.ParseKind(strings.TrimSpace(name))
			if err != nil {
				return nil, utils.BadRequest(errors.WithMessage(err, "kind"))
			}
			filter.Kinds = append(filter.Kinds, kind)
		}
	}

	from, err := parseUint(query, "from", 32)
	if err != nil {
		return nil, err
	}
	to, err := parseUint(query, "to", 32)
	if err != nil {
		return nil, err
	}
	if from != nil || to != nil {
		filter.Range = &eventdb.Range{To: math.MaxUint32}
		if from != nil {
			filter.Range.From = uint32(*from)
		}
		if to != nil {
			filter.Range.To = uint32(*to)
		}
		if filter.Range.From > filter.Range.To {
			return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
		}
	}

	switch eventdb.Order(query.Get("order")) {
	case "", eventdb.ASC:
	case eventdb.DESC:
		filter.Order = eventdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unknown value %q", query.Get("order")))
	}

	offset, err := parseUint(query, "offset", 63)
	if err != nil {
		return nil, err
	}
	if offset != nil {
		filter.Options.Offset = *offset
	}
	limit, err := parseUint(query, "limit", 64)
	if err != nil {
		return nil, err
	}
	if limit != nil {
		if *limit > e.limit {
			return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
		}
		filter.Options.Limit = *limit
	}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	events, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	resp := make([]*JSONEvent, len(events))
	for i, ev := range events {
		resp[i] = convertEvent(ev)
	}
	return utils.WriteJSON(w, resp)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET " + pathPrefix).
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
