// Code generated manually for testing. Update as needed.

package mocks

import (
	"context"
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/mock"

	"github.com/luxfi/wasm-deploy/pkg/chain"
)

// ChainClient is a mock implementation of chain.Client
type ChainClient struct {
	mock.Mock
}

var _ chain.Client = (*ChainClient)(nil)

func (m *ChainClient) StoreCodeBatch(ctx context.Context, wasm [][]byte) (*chain.StoreCodeResponse, error) {
	args := m.Called(ctx, wasm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.StoreCodeResponse), args.Error(1)
}

func (m *ChainClient) InstantiateBatch(ctx context.Context, reqs []chain.InstantiateRequest) (*chain.InstantiateResponse, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.InstantiateResponse), args.Error(1)
}

func (m *ChainClient) ExecuteBatch(ctx context.Context, reqs []chain.ExecRequest) (*chain.CommitResult, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.CommitResult), args.Error(1)
}

func (m *ChainClient) MigrateBatch(ctx context.Context, reqs []chain.MigrateRequest) (*chain.CommitResult, error) {
	args := m.Called(ctx, reqs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.CommitResult), args.Error(1)
}

func (m *ChainClient) Send(ctx context.Context, to string, amount sdk.Coins) (*chain.CommitResult, error) {
	args := m.Called(ctx, to, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chain.CommitResult), args.Error(1)
}

func (m *ChainClient) Query(ctx context.Context, address string, msg json.RawMessage) (json.RawMessage, error) {
	args := m.Called(ctx, address, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *ChainClient) Address() string {
	args := m.Called()
	return args.String(0)
}
