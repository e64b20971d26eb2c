package restore_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) Sync(ctx context.Context, wallet domain.Wallet) (uint64, error) {
	args := m.Called(ctx, wallet)
	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockSigner) Address(ctx context.Context, network, publicKey string) (string, error) {
	args := m.Called(ctx, network, publicKey)
	return args.String(0), args.Error(1)
}

func (m *mockSigner) sign(
	method string, ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	args := m.MethodCalled(method, ctx, wallet, input)
	return args.String(0), args.Error(1)
}

func (m *mockSigner) SignTransfer(ctx context.Context, wallet domain.Wallet, input ports.SignInput) (string, error) {
	return m.sign("SignTransfer", ctx, wallet, input)
}

func (m *mockSigner) SignVote(ctx context.Context, wallet domain.Wallet, input ports.SignInput) (string, error) {
	return m.sign("SignVote", ctx, wallet, input)
}

func (m *mockSigner) SignMultiPayment(ctx context.Context, wallet domain.Wallet, input ports.SignInput) (string, error) {
	return m.sign("SignMultiPayment", ctx, wallet, input)
}

func (m *mockSigner) SignDelegateRegistration(ctx context.Context, wallet domain.Wallet, input ports.SignInput) (string, error) {
	return m.sign("SignDelegateRegistration", ctx, wallet, input)
}

func (m *mockSigner) SignDelegateResignation(ctx context.Context, wallet domain.Wallet, input ports.SignInput) (string, error) {
	return m.sign("SignDelegateResignation", ctx, wallet, input)
}

func (m *mockSigner) SignUnlockToken(ctx context.Context, wallet domain.Wallet, input ports.SignInput) (string, error) {
	return m.sign("SignUnlockToken", ctx, wallet, input)
}

func (m *mockSigner) Transaction(ctx context.Context, uuid string) (*ports.SignedTransaction, error) {
	args := m.Called(ctx, uuid)
	var res *ports.SignedTransaction
	if a := args.Get(0); a != nil {
		res = a.(*ports.SignedTransaction)
	}
	return res, args.Error(1)
}

func (m *mockSigner) Broadcast(ctx context.Context, uuids []string) (*ports.BroadcastResult, error) {
	args := m.Called(ctx, uuids)
	var res *ports.BroadcastResult
	if a := args.Get(0); a != nil {
		res = a.(*ports.BroadcastResult)
	}
	return res, args.Error(1)
}

