package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockConverter struct {
	mock.Mock
}

// ToPDF accepts either a string or a func(ctx, srcPath, outDir) string as the first return value.
func (m *MockConverter) ToPDF(ctx context.Context, srcPath, outDir string) (string, error) {
	args := m.Called(ctx, srcPath, outDir)
	if f, ok := args.Get(0).(func(context.Context, string, string) string); ok {
		return f(ctx, srcPath, outDir), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
