package postgres

import (
	"context"
	"database/sql"

	"materialapi/internal/model"
	"materialapi/internal/repository"
)

// TopicPostgres reads topics.
type TopicPostgres struct {
	db *sql.DB
}

func NewTopicPostgres(db *sql.DB) *TopicPostgres {
	return &TopicPostgres{db: db}
}

var _ repository.TopicRepository = (*TopicPostgres)(nil)

// FindByID fetches a topic by id, returning sql.ErrNoRows when absent.
func (r *TopicPostgres) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	const q = `SELECT id, name, is_active FROM topics WHERE id = $1`
	var t model.Topic
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.IsActive); err != nil {
		return nil, err
	}
	return &t, nil
}

// MaterialTypePostgres reads material types.
type MaterialTypePostgres struct {
	db *sql.DB
}

func NewMaterialTypePostgres(db *sql.DB) *MaterialTypePostgres {
	return &MaterialTypePostgres{db: db}
}

var _ repository.MaterialTypeRepository = (*MaterialTypePostgres)(nil)

// FindByID fetches a material type by id, returning sql.ErrNoRows when absent.
func (r *MaterialTypePostgres) FindByID(ctx context.Context, id string) (*model.MaterialType, error) {
	const q = `SELECT id, type FROM material_types WHERE id = $1`
	var mt model.MaterialType
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&mt.ID, &mt.Type); err != nil {
		return nil, err
	}
	return &mt, nil
}
