package mocks

import (
	"context"

	"github.com/bhataasim1/integrations-technical-assessment/internal/core/domain"
)

// MockItemSource is a mock implementation of ItemSource for testing
type MockItemSource struct {
	FetchAllFn func(ctx context.Context, accessToken string) ([]domain.Item, error)
}

// NewMockItemSource creates a new MockItemSource
func NewMockItemSource() *MockItemSource {
	return &MockItemSource{}
}

func (m *MockItemSource) FetchAll(ctx context.Context, accessToken string) ([]domain.Item, error) {
	if m.FetchAllFn != nil {
		return m.FetchAllFn(ctx, accessToken)
	}
	return []domain.Item{}, nil
}
