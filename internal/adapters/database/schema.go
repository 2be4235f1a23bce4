package database

import (
	"context"

	"github.com/localserve/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/localserve/backend/pkg/errors"
)

// schemaDDL creates the marketplace tables when they do not exist yet.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS services (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	category   TEXT,
	rating     DOUBLE PRECISION,
	status     TEXT,
	location   TEXT,
	vendor_id  TEXT,
	verified   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reviews (
	id          TEXT PRIMARY KEY,
	service_id  TEXT NOT NULL,
	rating      DOUBLE PRECISION,
	text        TEXT,
	customer_id TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_reviews_service_id ON reviews (service_id);

CREATE TABLE IF NOT EXISTS contact_requests (
	id          TEXT PRIMARY KEY,
	service_id  TEXT NOT NULL,
	customer_id TEXT,
	message     TEXT,
	status      TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema applies the table definitions.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	if _, err := client.DB().ExecContext(ctx, schemaDDL); err != nil {
		return apperrors.NewInternalError("failed to apply schema", err)
	}
	return nil
}
