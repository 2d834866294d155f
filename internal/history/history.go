/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package history keeps a local log of generated documents in an
// embedded SQLite database, so repeated runs can show what was produced
// when and where it went.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	applog "rmagenda/internal/log"
	"rmagenda/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	FileName = "history.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump on breaking
	// changes and add a migration step.
	schemaVersion = 1
)

// Entry is one recorded generation.
type Entry struct {
	ID         int64
	OutputPath string
	Device     string
	Pages      int
	Links      int
	CreatedAt  time.Time
}

// Store wraps the history database. Open once, close when done.
type Store struct {
	db *sql.DB
}

// Path returns the history database location under dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Open ensures the history database exists under dir, enables WAL mode
// and brings the schema up to date.
func Open(dir string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("history"), "open").With(
		slog.String("dir", dir),
	)
	if dir == "" {
		return nil, errors.New("history dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(Path(dir)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	l.Info("history ready", slog.String("path", Path(dir)))
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record inserts one generation entry and returns its id. A zero
// CreatedAt means now.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	at := e.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO generations(output_path, device, pages, links, created_at) VALUES(?,?,?,?,?)`,
		e.OutputPath, e.Device, e.Pages, e.Links, at.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("record generation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record generation: %w", err)
	}
	return id, nil
}

// Recent returns the newest entries, most recent first. limit <= 0 means
// a default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, output_path, device, pages, links, created_at
		 FROM generations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &e.OutputPath, &e.Device, &e.Pages, &e.Links, &at); err != nil {
			return nil, fmt.Errorf("scan generation: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			e.CreatedAt = t
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list generations: %w", err)
	}
	return out, nil
}

// Prune deletes all but the newest keep entries and reports how many
// rows went away.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM generations WHERE id NOT IN
		 (SELECT id FROM generations ORDER BY id DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune generations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune generations: %w", err)
	}
	return n, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS generations (
			id          INTEGER PRIMARY KEY,
			output_path TEXT    NOT NULL,
			device      TEXT    NOT NULL,
			pages       INTEGER NOT NULL,
			links       INTEGER NOT NULL,
			created_at  TEXT    NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_generations_created ON generations(created_at);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure history schema: %w", err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}
