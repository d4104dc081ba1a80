// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists pool events in sqlite and serves filtered queries over them.
package eventdb

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/stakepool"
	"github.com/vechain/stakepool/thor"
)

var logger = log.New("pkg", "eventdb")

const insertEventQuery = "INSERT OR REPLACE INTO event(blockNumber, eventIndex, blockTime, kind, account, amount, reward, startPeriod, endPeriod) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"

type EventDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open an event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// a memory db only lives as long as its connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("event db opened", "path", path, "sqlite", driverVer)
	return &EventDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

func (db *EventDB) Path() string {
	return db.path
}

func (db *EventDB) Close() {
	db.stmtCache.Clear()
	db.db.Close()
}

// Insert writes events in a single transaction.
func (db *EventDB) Insert(events []*Event) error {
	if len(events) == 0 {
		return nil
	}
	startTime := time.Now()

	stmt, err := db.stmtCache.Prepare(insertEventQuery)
	if err != nil {
		return err
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	txStmt := tx.Stmt(stmt)
	for _, ev := range events {
		if _, err := txStmt.Exec(
			ev.BlockNumber,
			ev.Index,
			ev.BlockTime,
			ev.Kind.String(),
			ev.Account.Bytes(),
			ev.Amount.Dec(),
			ev.Reward.Dec(),
			ev.StartPeriod,
			ev.EndPeriod,
		); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert event %d/%d", ev.BlockNumber, ev.Index)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	metricInsertDuration().Observe(time.Since(startTime).Milliseconds())
	return nil
}

// Filter returns the events matching filter, ordered by block number and index.
func (db *EventDB) Filter(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		filter = &EventFilter{}
	}
	metricsHandleFilter(filter)

	var (
		args []any
		stmt strings.Builder
	)
	stmt.WriteString("SELECT blockNumber, eventIndex, blockTime, kind, account, amount, reward, startPeriod, endPeriod FROM event WHERE 1")
	if filter.Range != nil {
		stmt.WriteString(" AND blockNumber >= ?")
		args = append(args, filter.Range.From)
		if filter.Range.To >= filter.Range.From {
			stmt.WriteString(" AND blockNumber <= ?")
			args = append(args, filter.Range.To)
		}
	}
	if filter.Account != nil {
		stmt.WriteString(" AND account = ?")
		args = append(args, filter.Account.Bytes())
	}
	if len(filter.Kinds) > 0 {
		stmt.WriteString(" AND kind IN (?" + strings.Repeat(", ?", len(filter.Kinds)-1) + ")")
		for _, k := range filter.Kinds {
			args = append(args, k.String())
		}
	}

	if filter.Order == DESC {
		stmt.WriteString(" ORDER BY blockNumber DESC, eventIndex DESC")
	} else {
		stmt.WriteString(" ORDER BY blockNumber ASC, eventIndex ASC")
	}
	if filter.Options != nil {
		stmt.WriteString(" LIMIT ?, ?")
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt.String(), args...)
}

func (db *EventDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			ev      Event
			kind    string
			account []byte
			amount  string
			reward  string
		)
		if err := rows.Scan(
			&ev.BlockNumber,
			&ev.Index,
			&ev.BlockTime,
			&kind,
			&account,
			&amount,
			&reward,
			&ev.StartPeriod,
			&ev.EndPeriod,
		); err != nil {
			return nil, err
		}
		if ev.Kind, err = stakepool.ParseKind(kind); err != nil {
			return nil, err
		}
		ev.Account = thor.BytesToAddress(account)
		if ev.Amount, err = uint256.FromDecimal(amount); err != nil {
			return nil, errors.Wrap(err, "decode amount")
		}
		if ev.Reward, err = uint256.FromDecimal(reward); err != nil {
			return nil, errors.Wrap(err, "decode reward")
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// NewestBlockNumber returns the highest block number holding an event, false if none.
func (db *EventDB) NewestBlockNumber() (uint32, bool, error) {
	var n sql.NullInt64
	if err := db.db.QueryRow("SELECT MAX(blockNumber) FROM event").Scan(&n); err != nil {
		return 0, false, err
	}
	if !n.Valid {
		return 0, false, nil
	}
	return uint32(n.Int64), true, nil
}
