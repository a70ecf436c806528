// Code generated manually for testing. Update as needed.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luxfi/wasm-deploy/pkg/contract"
	"github.com/luxfi/wasm-deploy/pkg/deployment"
)

// Builder is a mock implementation of deployment.Builder
type Builder struct {
	mock.Mock
}

var _ deployment.Builder = (*Builder)(nil)

func (m *Builder) Build(ctx context.Context, contracts []contract.Contract) error {
	args := m.Called(ctx, contracts)
	return args.Error(0)
}
