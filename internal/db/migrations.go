package db

import (
	"context"
	"fmt"
)

// Migration is one idempotent schema change.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema changes in the order they are applied. Every statement is safe
// to run against a database that already has it. gen_random_uuid requires PostgreSQL 13+.
var Migrations = []Migration{
	{
		Name: "create_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			skills        JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		Name: "create_student_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS student_profiles (
			id                   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id              UUID REFERENCES users(id) ON DELETE SET NULL,
			personal_info        JSONB NOT NULL,
			education            JSONB NOT NULL,
			skills               JSONB NOT NULL,
			resume               BYTEA,
			resume_filename      TEXT NOT NULL DEFAULT '',
			picture              BYTEA,
			picture_filename     TEXT NOT NULL DEFAULT '',
			picture_content_type TEXT NOT NULL DEFAULT '',
			created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		Name: "index_student_profiles_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_student_profiles_user_id ON student_profiles (user_id)`,
	},
	{
		Name: "create_recommendations",
		SQL: `CREATE TABLE IF NOT EXISTS recommendations (
			id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
}

// RunMigrations applies every migration in order and stops at the first failure.
func (db *DB) RunMigrations(ctx context.Context) error {
	for _, m := range Migrations {
		if _, err := db.pool.Exec(ctx, m.SQL); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name, err)
		}
	}
	return nil
}
