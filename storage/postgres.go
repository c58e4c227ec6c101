package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const createTable = `
CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const upsertValue = `
INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO
UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

// PostgresStore keeps values in a single kv_store table.
type PostgresStore struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// OpenPostgres opens and pings a pool, then ensures the table exists.
func OpenPostgres(ctx context.Context, connStr string, log logrus.FieldLogger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := NewPostgresStore(db, log)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	log.Info("Connected to Postgres")
	return s, nil
}

func NewPostgresStore(db *sql.DB, log logrus.FieldLogger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

func (p *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key=$1", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("select %s: %w", key, err)
	}
	return v, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string) error {
	if _, err := p.db.ExecContext(ctx, upsertValue, key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (p *PostgresStore) Remove(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM kv_store WHERE key=$1", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Apply runs every mutation inside one transaction.
func (p *PostgresStore) Apply(ctx context.Context, muts []Mutation) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	for _, m := range muts {
		if m.Value == nil {
			if _, err := tx.ExecContext(ctx, "DELETE FROM kv_store WHERE key=$1", m.Key); err != nil {
				return fmt.Errorf("delete %s: %w", m.Key, err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, upsertValue, m.Key, *m.Value); err != nil {
			return fmt.Errorf("upsert %s: %w", m.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
