package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/neuhauss/example-gemini/internal/domain/repository"
)

var _ repository.BlobStore = (*PostgresStore)(nil)

// Querier interfaz mínima satisfecha por *pgxpool.Pool, *pgx.Conn y pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createBlobTable = `
	CREATE TABLE IF NOT EXISTS blob_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// PostgresStore guarda cada clave como una fila de la tabla blob_store.
type PostgresStore struct {
	q Querier
}

// NewPostgresStore construye el adaptador. Pasar pool o tx (Querier).
func NewPostgresStore(q Querier) *PostgresStore {
	return &PostgresStore{q: q}
}

// EnsureSchema crea la tabla blob_store si no existe.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.q.Exec(ctx, createBlobTable); err != nil {
		return fmt.Errorf("blob: crear tabla: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := p.q.QueryRow(ctx, `SELECT value FROM blob_store WHERE key = $1`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("blob: get %s: %w", key, err)
	}
	return v, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := p.q.Exec(ctx, `
		INSERT INTO blob_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("blob: set %s: %w", key, err)
	}
	return nil
}
