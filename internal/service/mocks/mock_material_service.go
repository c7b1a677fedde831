package mocks

import (
	"context"

	"materialapi/internal/model"
	"materialapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMaterialService struct {
	mock.Mock
}

func (m *MockMaterialService) Create(ctx context.Context, origin service.Origin, req service.CreateMaterialRequest) (*model.MaterialView, error) {
	args := m.Called(ctx, origin, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialView), args.Error(1)
}

func (m *MockMaterialService) SoftDelete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaterialService) ListByTopicAndType(ctx context.Context, origin service.Origin, topicID, materialTypeID string) ([]model.MaterialView, error) {
	args := m.Called(ctx, origin, topicID, materialTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MaterialView), args.Error(1)
}

func (m *MockMaterialService) GetByNameAndTopic(ctx context.Context, origin service.Origin, name, topicID string) (*model.MaterialView, error) {
	args := m.Called(ctx, origin, name, topicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialView), args.Error(1)
}

func (m *MockMaterialService) Update(ctx context.Context, req service.UpdateMaterialRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockMaterialService) View(ctx context.Context, origin service.Origin, id string) (*model.MaterialView, error) {
	args := m.Called(ctx, origin, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MaterialView), args.Error(1)
}
