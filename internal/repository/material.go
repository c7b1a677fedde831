package repository

import (
	"context"

	"materialapi/internal/model"
)

// MaterialRepository defines data access for course materials using SQL queries only.
// Lookups that find nothing return sql.ErrNoRows; callers translate it.
type MaterialRepository interface {
	// Create inserts a new material record. The caller provides ID and CreatedAt.
	Create(ctx context.Context, m *model.Material) error

	// FindByID returns a material with its topic and material type joined.
	FindByID(ctx context.Context, id string) (*model.Material, error)

	// FindByNameAndTopic returns the most recent material with the given name under a topic.
	FindByNameAndTopic(ctx context.Context, name, topicID string) (*model.Material, error)

	// ExistsByNameAndTopic reports whether any material, active or not, uses name under topicID.
	ExistsByNameAndTopic(ctx context.Context, name, topicID string) (bool, error)

	// ListByTopicAndType returns active materials matching both parents, oldest first.
	ListByTopicAndType(ctx context.Context, topicID, materialTypeID string) ([]model.Material, error)

	// Update persists mutable fields and returns the number of affected rows.
	Update(ctx context.Context, m *model.Material) (int64, error)
}

// TopicRepository resolves topics by id.
type TopicRepository interface {
	FindByID(ctx context.Context, id string) (*model.Topic, error)
}

// MaterialTypeRepository resolves material types by id.
type MaterialTypeRepository interface {
	FindByID(ctx context.Context, id string) (*model.MaterialType, error)
}
