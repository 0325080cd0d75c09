// Package sqlitekv is a durable offline.KV backed by a single sqlite table.
package sqlitekv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-krishi-portal/offline"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var _ offline.KV = (*Store)(nil)

type row struct {
	bun.BaseModel `bun:"table:offline_kv"`

	Name      string    `bun:"name,pk"`
	Value     []byte    `bun:"value"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Store keeps offline entries in the offline_kv table.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// Open opens (creating if needed) the sqlite database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: open %s: %w", path, err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	sqldb.SetMaxOpenConns(1)

	s := New(bun.NewDB(sqldb, sqlitedialect.New()))
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing bun database. Call Migrate before use.
func New(db *bun.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates the table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*row)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("sqlitekv: migrate: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var r row
	err := s.db.NewSelect().
		Model(&r).
		Where("name = ?", key).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlitekv: get %s: %w", key, err)
	}
	return r.Value, true, nil
}

// SetMany upserts every entry in one transaction.
func (s *Store) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	now := s.now()
	rows := make([]row, 0, len(entries))
	for k, v := range entries {
		rows = append(rows, row{Name: k, Value: v, UpdatedAt: now})
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&rows).
			On("CONFLICT (name) DO UPDATE").
			Set("value = EXCLUDED.value").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("sqlitekv: set: %w", err)
		}
		return nil
	})
}

func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	q := s.db.NewSelect().
		Model((*row)(nil)).
		Column("name").
		OrderExpr("name ASC")
	if prefix != "" {
		// LIKE would treat the underscore in "cache_" as a wildcard
		q = q.Where("substr(name, 1, ?) = ?", len(prefix), prefix)
	}
	if err := q.Scan(ctx, &keys); err != nil {
		return nil, fmt.Errorf("sqlitekv: keys: %w", err)
	}
	return keys, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
