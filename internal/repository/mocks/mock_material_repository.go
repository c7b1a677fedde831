package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"materialapi/internal/model"
)

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) Create(ctx context.Context, mat *model.Material) error {
	args := m.Called(ctx, mat)
	return args.Error(0)
}

func (m *MockMaterialRepository) FindByID(ctx context.Context, id string) (*model.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Material), args.Error(1)
}

func (m *MockMaterialRepository) FindByNameAndTopic(ctx context.Context, name, topicID string) (*model.Material, error) {
	args := m.Called(ctx, name, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Material), args.Error(1)
}

func (m *MockMaterialRepository) ExistsByNameAndTopic(ctx context.Context, name, topicID string) (bool, error) {
	args := m.Called(ctx, name, topicID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaterialRepository) ListByTopicAndType(ctx context.Context, topicID, materialTypeID string) ([]model.Material, error) {
	args := m.Called(ctx, topicID, materialTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Material), args.Error(1)
}

func (m *MockMaterialRepository) Update(ctx context.Context, mat *model.Material) (int64, error) {
	args := m.Called(ctx, mat)
	return args.Get(0).(int64), args.Error(1)
}

type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Topic), args.Error(1)
}

type MockMaterialTypeRepository struct {
	mock.Mock
}

func (m *MockMaterialTypeRepository) FindByID(ctx context.Context, id string) (*model.MaterialType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialType), args.Error(1)
}
