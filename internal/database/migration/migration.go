package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked before running steps; its presence means the schema exists.
const sentinelTable = "public.materials"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_topics",
		SQL: `CREATE TABLE IF NOT EXISTS topics (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  is_active  BOOLEAN     NOT NULL DEFAULT TRUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_material_types",
		SQL: `CREATE TABLE IF NOT EXISTS material_types (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  type       TEXT        NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "seed_material_types",
		SQL: `INSERT INTO material_types (type)
VALUES ('Video'), ('Audio'), ('Document'), ('Presentation')
ON CONFLICT (type) DO NOTHING;`,
	},
	{
		// (topic_id, name) uniqueness is checked by the service, not enforced here.
		Name: "create_table_materials",
		SQL: `CREATE TABLE IF NOT EXISTS materials (
  id               UUID        PRIMARY KEY,
  topic_id         UUID        NOT NULL REFERENCES topics (id),
  material_type_id UUID        NOT NULL REFERENCES material_types (id),
  name             TEXT        NOT NULL,
  file_path        TEXT        NOT NULL,
  duration         INTEGER     NOT NULL DEFAULT 0 CHECK (duration >= 0),
  is_active        BOOLEAN     NOT NULL DEFAULT TRUE,
  is_available     BOOLEAN     NOT NULL DEFAULT TRUE,
  created_by       TEXT        NOT NULL,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  modified_by      TEXT        NULL,
  modified_at      TIMESTAMPTZ NULL
);`,
	},
	{
		Name: "create_index_materials_topic_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_materials_topic_name ON materials (topic_id, name);`,
	},
	{
		Name: "create_index_materials_topic_type",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_materials_topic_type ON materials (topic_id, material_type_id);`,
	},
}

// EnsureMigrated checks if the 'materials' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))

	log.Info("db_migration_check", zap.String("status", "starting"))

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.String("status", "error"),
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip",
			zap.String("status", "success"),
			zap.String("msg", "schema already exists, skipping migration"),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	log.Info("db_migration_start", zap.String("status", "in_progress"))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("status", "error"),
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Info("db_migration_step",
			zap.String("status", "success"),
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success",
		zap.String("status", "success"),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
