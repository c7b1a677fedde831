package postgres

import (
	"context"
	"database/sql"

	"materialapi/internal/model"
	"materialapi/internal/repository"
)

// MaterialPostgres is a PostgreSQL implementation of repository.MaterialRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type MaterialPostgres struct {
	db *sql.DB
}

// NewMaterialPostgres creates a new MaterialPostgres repository.
func NewMaterialPostgres(db *sql.DB) *MaterialPostgres {
	return &MaterialPostgres{db: db}
}

var _ repository.MaterialRepository = (*MaterialPostgres)(nil)

const selectMaterial = `
	SELECT m.id, m.name, m.topic_id, m.material_type_id, m.file_path, m.duration,
	       m.is_active, m.is_available, m.created_by, m.created_at, m.modified_by, m.modified_at,
	       t.name, mt.type
	FROM materials m
	JOIN topics t ON t.id = m.topic_id
	JOIN material_types mt ON mt.id = m.material_type_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*model.Material, error) {
	var (
		m          model.Material
		modifiedBy sql.NullString
		modifiedAt sql.NullTime
		topicName  string
		typeName   string
	)
	if err := row.Scan(
		&m.ID,
		&m.Name,
		&m.TopicID,
		&m.MaterialTypeID,
		&m.FilePath,
		&m.Duration,
		&m.IsActive,
		&m.IsAvailable,
		&m.CreatedBy,
		&m.CreatedAt,
		&modifiedBy,
		&modifiedAt,
		&topicName,
		&typeName,
	); err != nil {
		return nil, err
	}
	if modifiedBy.Valid {
		m.ModifiedBy = &modifiedBy.String
	}
	if modifiedAt.Valid {
		m.ModifiedAt = &modifiedAt.Time
	}
	m.Topic = &model.Topic{ID: m.TopicID, Name: topicName}
	m.MaterialType = &model.MaterialType{ID: m.MaterialTypeID, Type: typeName}
	return &m, nil
}

// Create inserts a new material row.
func (r *MaterialPostgres) Create(ctx context.Context, m *model.Material) error {
	const q = `
		INSERT INTO materials (id, topic_id, material_type_id, name, file_path, duration,
		                       is_active, is_available, created_by, created_at, modified_by, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, q,
		m.ID,
		m.TopicID,
		m.MaterialTypeID,
		m.Name,
		m.FilePath,
		m.Duration,
		m.IsActive,
		m.IsAvailable,
		m.CreatedBy,
		m.CreatedAt,
		m.ModifiedBy,
		m.ModifiedAt,
	)
	return err
}

// FindByID fetches a single material by its ID.
func (r *MaterialPostgres) FindByID(ctx context.Context, id string) (*model.Material, error) {
	q := selectMaterial + `WHERE m.id = $1`
	return scanMaterial(r.db.QueryRowContext(ctx, q, id))
}

// FindByNameAndTopic fetches the newest material named name under topicID.
func (r *MaterialPostgres) FindByNameAndTopic(ctx context.Context, name, topicID string) (*model.Material, error) {
	q := selectMaterial + `WHERE m.name = $1 AND m.topic_id = $2
	ORDER BY m.created_at DESC
	LIMIT 1`
	return scanMaterial(r.db.QueryRowContext(ctx, q, name, topicID))
}

// ExistsByNameAndTopic checks for any material, active or not, with the pair.
func (r *MaterialPostgres) ExistsByNameAndTopic(ctx context.Context, name, topicID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM materials WHERE name = $1 AND topic_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, name, topicID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByTopicAndType returns active materials of a topic and type.
func (r *MaterialPostgres) ListByTopicAndType(ctx context.Context, topicID, materialTypeID string) ([]model.Material, error) {
	q := selectMaterial + `WHERE m.topic_id = $1 AND m.material_type_id = $2 AND m.is_active = TRUE
	ORDER BY m.created_at ASC, m.id ASC`
	rows, err := r.db.QueryContext(ctx, q, topicID, materialTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Material, 0)
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes the mutable columns of a material.
func (r *MaterialPostgres) Update(ctx context.Context, m *model.Material) (int64, error) {
	const q = `
		UPDATE materials
		SET name = $2, file_path = $3, duration = $4, is_active = $5, is_available = $6,
		    modified_by = $7, modified_at = $8
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q,
		m.ID,
		m.Name,
		m.FilePath,
		m.Duration,
		m.IsActive,
		m.IsAvailable,
		m.ModifiedBy,
		m.ModifiedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
