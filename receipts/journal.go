// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package receipts journals executed receipt outcomes into SQLite so they can
// be queried by transaction or by account after the fact.
package receipts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/inconshreveable/log15"

	// registers the "sqlite3" driver
	_ "github.com/mattn/go-sqlite3"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

var errClosed = errors.New("journal is closed")

const schema = `
CREATE TABLE IF NOT EXISTS outcomes (
	receipt_id   TEXT PRIMARY KEY,
	tx_id        TEXT NOT NULL,
	height       INTEGER NOT NULL,
	idx          INTEGER NOT NULL,
	predecessor  TEXT NOT NULL,
	receiver     TEXT NOT NULL,
	refund       INTEGER NOT NULL,
	status       TEXT NOT NULL,
	value        BLOB,
	failure      TEXT NOT NULL,
	logs         TEXT NOT NULL,
	gas_burnt    INTEGER NOT NULL,
	timestamp    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS outcomes_tx ON outcomes (tx_id, height, idx);
CREATE INDEX IF NOT EXISTS outcomes_receiver ON outcomes (receiver, height, idx);
CREATE INDEX IF NOT EXISTS outcomes_predecessor ON outcomes (predecessor, height, idx);
`

const selectColumns = `
SELECT receipt_id, tx_id, height, idx, predecessor, receiver, refund, status,
       value, failure, logs, gas_burnt, timestamp
FROM outcomes`

// Entry is one journaled receipt outcome.
type Entry struct {
	ReceiptID   string   `json:"receiptID"`
	TxID        string   `json:"txID"`
	Height      uint64   `json:"height"`
	Index       uint32   `json:"index"`
	Predecessor string   `json:"predecessor"`
	Receiver    string   `json:"receiver"`
	Refund      bool     `json:"refund"`
	Status      string   `json:"status"`
	Value       []byte   `json:"value,omitempty"`
	Failure     string   `json:"failure,omitempty"`
	Logs        []string `json:"logs,omitempty"`
	GasBurnt    uint64   `json:"gasBurnt"`
	Timestamp   int64    `json:"timestamp"`
}

// Journal is an append-only SQLite record of outcomes.
type Journal struct {
	db *sql.DB
}

// Open opens, creating it when needed, the journal at [path].
func Open(ctx context.Context, path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open journal %q: %w", path, err)
	}
	if path == MemoryPath {
		// Every connection to ":memory:" is a separate database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("couldn't create journal schema: %w", err)
	}
	log.Debug("opened receipt journal", "path", path)
	return &Journal{db: db}, nil
}

// Record stores [entries] in one transaction. Entries already journaled are
// left untouched.
func (j *Journal) Record(ctx context.Context, entries []Entry) error {
	if j.db == nil {
		return errClosed
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes (
			receipt_id, tx_id, height, idx, predecessor, receiver, refund,
			status, value, failure, logs, gas_burnt, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (receipt_id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		logs, err := json.Marshal(e.Logs)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx,
			e.ReceiptID, e.TxID, e.Height, e.Index, e.Predecessor, e.Receiver, e.Refund,
			e.Status, e.Value, e.Failure, string(logs), e.GasBurnt, e.Timestamp,
		); err != nil {
			return fmt.Errorf("couldn't journal receipt %s: %w", e.ReceiptID, err)
		}
	}
	return tx.Commit()
}

// ListByTransaction returns the outcomes of [txID] in execution order.
func (j *Journal) ListByTransaction(ctx context.Context, txID string) ([]Entry, error) {
	return j.query(ctx, selectColumns+` WHERE tx_id = ? ORDER BY height, idx`, txID)
}

// ListByAccount returns the outcomes of receipts [account] sent or received,
// most recent first.
func (j *Journal) ListByAccount(ctx context.Context, account string, limit, offset int) ([]Entry, error) {
	return j.query(ctx,
		selectColumns+` WHERE receiver = ? OR predecessor = ? ORDER BY height DESC, idx DESC LIMIT ? OFFSET ?`,
		account, account, limit, offset,
	)
}

func (j *Journal) query(ctx context.Context, query string, args ...interface{}) ([]Entry, error) {
	if j.db == nil {
		return nil, errClosed
	}
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			logs string
		)
		if err := rows.Scan(
			&e.ReceiptID, &e.TxID, &e.Height, &e.Index, &e.Predecessor, &e.Receiver, &e.Refund,
			&e.Status, &e.Value, &e.Failure, &logs, &e.GasBurnt, &e.Timestamp,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(logs), &e.Logs); err != nil {
			return nil, fmt.Errorf("couldn't parse logs of %s: %w", e.ReceiptID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the journal.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}
