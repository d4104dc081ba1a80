// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package api serves a read-only http view of a hosted pool.
package api

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/stakepool/api/events"
	"github.com/vechain/stakepool/api/participants"
	"github.com/vechain/stakepool/api/pool"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/runtime"
)

var logger = log.New("pkg", "api")

type Options struct {
	AllowedOrigins string
	EventsLimit    uint64
	EnableMetrics  bool
}

// New return api router. Events are served only with an event db.
func New(host *runtime.Host, eventDB *eventdb.EventDB, opts Options) http.Handler {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pool.New(host).
		Mount(router, "/pool")
	participants.New(host).
		Mount(router, "/participants")
	if eventDB != nil {
		events.New(eventDB, opts.EventsLimit).
			Mount(router, "/events")
	}

	if opts.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	logger.Info("api router ready", "events", eventDB != nil, "metrics", opts.EnableMetrics)
	return handler
}
