package store

import (
	"context"

	"github.com/huangsam/agrilens/internal/contract"
	"github.com/huangsam/agrilens/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordSource is a mock implementation of RecordSource for testing.
type MockRecordSource struct {
	mock.Mock
}

var _ contract.RecordSource = &MockRecordSource{} // Compile-time check

// Load implements the RecordSource interface.
func (m *MockRecordSource) Load(ctx context.Context) (*schema.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*schema.Dataset)
	return ds, args.Error(1)
}
