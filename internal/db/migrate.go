package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the schema derived from the entity definitions. The
// statements are idempotent so the server can run them on every startup.
// Cross-entity references (doctor_id, appointment_id) are plain columns,
// not foreign keys: orphaned references are tolerated by the domain layer.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            bigserial PRIMARY KEY,
		email         text NOT NULL,
		password_hash text NOT NULL,
		created_at    timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id             bigserial PRIMARY KEY,
		name           text NOT NULL,
		specialization text NOT NULL,
		gender         text NOT NULL,
		location       text NOT NULL,
		status         text NOT NULL DEFAULT 'Available',
		next_available text NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id           bigserial PRIMARY KEY,
		patient_name text NOT NULL,
		doctor_name  text NOT NULL,
		doctor_id    bigint NOT NULL,
		date         text NOT NULL,
		time         text NOT NULL,
		status       text NOT NULL DEFAULT 'Booked'
	)`,
	`CREATE INDEX IF NOT EXISTS appointments_doctor_idx ON appointments (doctor_id, status, date, time)`,
	`CREATE TABLE IF NOT EXISTS queue_entries (
		id             bigserial PRIMARY KEY,
		patient_name   text NOT NULL,
		arrival        text NOT NULL,
		est_wait       text NOT NULL,
		status         text NOT NULL DEFAULT 'Waiting',
		priority       text NOT NULL DEFAULT 'Normal',
		doctor_id      bigint,
		appointment_id bigint,
		created_at     timestamptz NOT NULL DEFAULT now()
	)`,
}

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
