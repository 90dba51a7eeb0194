package dispatch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"intake-gateway/internal/conversation"
)

// PostgresRequestStore persists intake requests in PostgreSQL.
type PostgresRequestStore struct {
	pool *pgxpool.Pool
}

func NewPostgresRequestStore(pool *pgxpool.Pool) *PostgresRequestStore {
	return &PostgresRequestStore{pool: pool}
}

const createRequestsTableSQL = `
CREATE TABLE IF NOT EXISTS intake_requests (
	id              UUID PRIMARY KEY,
	user_id         TEXT NOT NULL,
	display_name    TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL,
	full_name       TEXT NOT NULL,
	snils           TEXT NOT NULL DEFAULT '',
	passport        TEXT NOT NULL DEFAULT '',
	lookup_report   TEXT NOT NULL DEFAULT '',
	document_report TEXT NOT NULL DEFAULT '',
	received_at     TIMESTAMPTZ NOT NULL
)`

// Migrate creates the backing table when it does not exist yet.
func (s *PostgresRequestStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createRequestsTableSQL); err != nil {
		return fmt.Errorf("migrate intake_requests: %w", err)
	}
	return nil
}

const insertRequestSQL = `
INSERT INTO intake_requests
	(id, user_id, display_name, phone, full_name, snils, passport, lookup_report, document_report, received_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (s *PostgresRequestStore) Save(ctx context.Context, d conversation.Dossier) error {
	_, err := s.pool.Exec(ctx, insertRequestSQL,
		d.ID, d.UserID, d.DisplayName, d.Phone, d.FullName,
		d.SNILS, d.Passport, d.LookupReport, d.DocumentReport, d.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert intake request: %w", err)
	}
	return nil
}
