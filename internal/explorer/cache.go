package explorer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const lruSize = 1024

var cacheSchema = []string{
	`PRAGMA journal_mode=WAL;`,
	`CREATE TABLE IF NOT EXISTS lookups (
		lookup_key TEXT PRIMARY KEY,
		moves_json TEXT NOT NULL,
		fetched_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_lookups_fetched_at ON lookups(fetched_at);`,
}

// Cache stores explorer responses keyed by profile and FEN, with an in-process
// LRU in front of a SQLite file. It holds no game records, only raw candidate
// lists as returned by the explorer.
type Cache struct {
	db  *sqlx.DB
	lru *lru.Cache[string, []CandidateMove]
}

func OpenCache(path string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// keep it predictable; the cache is only ever used by one process.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range cacheSchema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate cache: %w", err)
		}
	}

	hot, err := lru.New[string, []CandidateMove](lruSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Cache{db: db, lru: hot}, nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]CandidateMove, bool) {
	if moves, ok := c.lru.Get(key); ok {
		return moves, true
	}

	var body string
	err := c.db.GetContext(ctx, &body, `SELECT moves_json FROM lookups WHERE lookup_key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}

	var moves []CandidateMove
	if err := json.Unmarshal([]byte(body), &moves); err != nil {
		return nil, false
	}
	c.lru.Add(key, moves)
	return moves, true
}

func (c *Cache) Put(ctx context.Context, key string, moves []CandidateMove) error {
	body, err := json.Marshal(moves)
	if err != nil {
		return fmt.Errorf("marshal moves: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO lookups (lookup_key, moves_json)
		VALUES (?, ?)
	`, key, string(body))
	if err != nil {
		return fmt.Errorf("store lookup: %w", err)
	}

	c.lru.Add(key, moves)
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
