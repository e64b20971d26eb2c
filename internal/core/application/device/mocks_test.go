package device_test

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Connect(ctx context.Context, coin string) error {
	args := m.Called(ctx, coin)
	return args.Error(0)
}

func (m *mockTransport) Disconnect() error {
	args := m.Called()
	return args.Error(0)
}

func (m *mockTransport) GetVersion(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockTransport) GetPublicKey(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *mockTransport) SignMessage(
	ctx context.Context, path string, payload []byte,
) (string, error) {
	args := m.Called(ctx, path, payload)
	return args.String(0), args.Error(1)
}

func (m *mockTransport) SignTransaction(
	ctx context.Context, path string, payload []byte,
) (string, error) {
	args := m.Called(ctx, path, payload)
	return args.String(0), args.Error(1)
}
