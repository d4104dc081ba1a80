// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime hosts a pool: it serializes calls, drives the block clock and
// commits each block atomically.
package runtime

import (
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/eventdb"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var logger = log.New("pkg", "runtime")

// blockClock exposes the block being built. Periods are block numbers.
type blockClock struct {
	number    uint32
	timestamp uint64
}

func (c *blockClock) Period() uint64 { return uint64(c.number) }
func (c *blockClock) Now() uint64    { return c.timestamp }

// Host runs pool calls one at a time against the pending block.
type Host struct {
	mu sync.Mutex

	db      kv.Store
	stater  *state.Stater
	genesis *genesis.Genesis
	eventDB *eventdb.EventDB

	head       Head
	clock      *blockClock
	state      *state.State
	deployment *genesis.Deployment
	pending    []*eventdb.Event
}

// New opens the host over db, deploying the genesis if db is empty.
// The event db is optional.
func New(db kv.Store, gen *genesis.Genesis, eventDB *eventdb.EventDB, cacheSize int) (*Host, error) {
	stater, err := state.NewStater(db, cacheSize)
	if err != nil {
		return nil, err
	}
	h := &Host{
		db:      db,
		stater:  stater,
		genesis: gen,
		eventDB: eventDB,
		clock:   &blockClock{},
	}

	head, err := loadHead(db)
	if err != nil {
		return nil, errors.Wrap(err, "load head")
	}
	if head == nil {
		if head, err = h.buildGenesis(); err != nil {
			return nil, err
		}
	}
	h.head = *head
	h.resetPending()

	initialized, err := h.deployment.Pool.Initialized()
	if err != nil {
		return nil, err
	}
	if !initialized {
		return nil, errors.New("genesis mismatch: pool not deployed")
	}
	metricHeadNumber().Set(int64(h.head.Number))
	logger.Info("host started", "head", h.head.Number, "pool", h.deployment.Pool.Address())
	return h, nil
}

func (h *Host) buildGenesis() (*Head, error) {
	st := h.stater.NewState()
	if err := h.genesis.Build(st); err != nil {
		return nil, errors.Wrap(err, "build genesis")
	}
	stage := st.Stage()
	head := Head{
		Number:      0,
		Timestamp:   h.genesis.LaunchTime(),
		ChangesHash: stage.Hash(),
	}
	if _, err := stage.Commit(writeHead(head)); err != nil {
		return nil, errors.Wrap(err, "commit genesis")
	}
	return &head, nil
}

// resetPending starts a new block on top of the head.
func (h *Host) resetPending() {
	h.clock.number = h.head.Number + 1
	h.clock.timestamp = h.head.Timestamp + thor.BlockInterval
	h.state = h.stater.NewState()
	h.pending = nil
	h.deployment = h.genesis.Bind(h.state, h.clock, stakepool.NotifierFunc(h.collect))
}

func (h *Host) collect(ev *stakepool.Event) {
	h.pending = append(h.pending, eventdb.NewEvent(h.clock.number, h.clock.timestamp, uint32(len(h.pending)), ev))
}

// Head returns the last committed block.
func (h *Host) Head() Head {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.head
}

// Pending returns the number and timestamp of the block being built.
func (h *Host) Pending() (uint32, uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.clock.number, h.clock.timestamp
}

// Exec runs fn in the pending block. If fn fails, nothing it did is kept.
func (h *Host) Exec(fn func(d *genesis.Deployment) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	checkpoint := h.state.NewCheckpoint()
	mark := len(h.pending)
	if err := fn(h.deployment); err != nil {
		h.state.RevertTo(checkpoint)
		h.pending = h.pending[:mark]
		metricExecCount().AddWithLabel(1, map[string]string{"result": "failed"})
		return err
	}
	metricExecCount().AddWithLabel(1, map[string]string{"result": "ok"})
	return nil
}

// View runs fn against the pending block and discards any change it makes.
func (h *Host) View(fn func(d *genesis.Deployment) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	checkpoint := h.state.NewCheckpoint()
	mark := len(h.pending)
	defer func() {
		h.state.RevertTo(checkpoint)
		h.pending = h.pending[:mark]
	}()
	return fn(h.deployment)
}

// MintBlock commits the pending block and starts the next one.
// Events are persisted once the state is committed.
func (h *Host) MintBlock() (Head, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stage := h.state.Stage()
	head := Head{
		Number:      h.clock.number,
		Timestamp:   h.clock.timestamp,
		ChangesHash: stage.Hash(),
	}
	if _, err := stage.Commit(writeHead(head)); err != nil {
		return Head{}, errors.Wrap(err, "commit block")
	}

	events := h.pending
	h.head = head
	h.resetPending()
	metricHeadNumber().Set(int64(head.Number))
	metricBlockEvents().Observe(int64(len(events)))

	logger.Debug("block minted", "number", head.Number, "changes", stage.Len(), "events", len(events))

	if h.eventDB != nil {
		if err := h.eventDB.Insert(events); err != nil {
			logger.Warn("failed to persist events", "number", head.Number, "error", err)
			return head, errors.Wrap(err, "persist events")
		}
	}
	return head, nil
}

// Stater returns the creator of states over committed storage.
func (h *Host) Stater() *state.Stater {
	return h.stater
}
