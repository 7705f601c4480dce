// Code generated manually for testing. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/luxfi/deployer/pkg/chain"
	"github.com/stretchr/testify/mock"
)

// ChainClient is a mock implementation of chain.Client
type ChainClient struct {
	mock.Mock
}

func (m *ChainClient) Deploy(ctx context.Context, req chain.DeployRequest) (chain.DeployResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(chain.DeployResult), args.Error(1)
}

func (m *ChainClient) Call(ctx context.Context, req chain.CallRequest) (chain.CallResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(chain.CallResult), args.Error(1)
}

// LookupChainClient is a ChainClient that also implements chain.ReceiptLookup
type LookupChainClient struct {
	ChainClient
}

func (m *LookupChainClient) LookupDeployment(ctx context.Context, txID string) (string, bool, error) {
	args := m.Called(ctx, txID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *LookupChainClient) LookupCall(ctx context.Context, txID string) (bool, error) {
	args := m.Called(ctx, txID)
	return args.Bool(0), args.Error(1)
}
