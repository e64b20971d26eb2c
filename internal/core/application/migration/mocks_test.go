package migration_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-signer/internal/core/application/transaction"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

/*
 * WalletRepository
 */
type mockWalletRepository struct {
	mock.Mock
}

func (m *mockWalletRepository) Push(ctx context.Context, wallet *domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *mockWalletRepository) FindByID(ctx context.Context, id string) (*domain.Wallet, error) {
	args := m.Called(ctx, id)
	var res *domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.(*domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletRepository) FindByAddress(
	ctx context.Context, network, address string,
) (*domain.Wallet, error) {
	args := m.Called(ctx, network, address)
	var res *domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.(*domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletRepository) FindByAlias(
	ctx context.Context, network, alias string,
) (*domain.Wallet, error) {
	args := m.Called(ctx, network, alias)
	var res *domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.(*domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletRepository) FindByNetwork(
	ctx context.Context, network string,
) ([]domain.Wallet, error) {
	args := m.Called(ctx, network)
	var res []domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.([]domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletRepository) All(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	var res []domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.([]domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockWalletRepository) Update(
	ctx context.Context, id string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	args := m.Called(ctx, id, updateFn)
	return args.Error(0)
}

func (m *mockWalletRepository) Forget(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockWalletRepository) ToObject(ctx context.Context) (map[string]domain.Wallet, error) {
	args := m.Called(ctx)
	var res map[string]domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.(map[string]domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletRepository) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockWalletRepository) Fill(ctx context.Context, wallets map[string]domain.Wallet) error {
	args := m.Called(ctx, wallets)
	return args.Error(0)
}

/*
 * TransactionBuilder
 */
type mockBuilder struct {
	mock.Mock
}

func (m *mockBuilder) Build(
	ctx context.Context, txType domain.TxType, input ports.SignInput,
	wallet domain.Wallet, opts transaction.BuildOpts,
) (*transaction.Result, error) {
	args := m.Called(ctx, txType, input, wallet, opts)
	var res *transaction.Result
	if a := args.Get(0); a != nil {
		res = a.(*transaction.Result)
	}
	return res, args.Error(1)
}

/*
 * Signer
 */
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

/*
 * FeeOracle, BalanceProvider, RecipientResolver
 */
type mockFeeOracle struct {
	mock.Mock
}

func (m *mockFeeOracle) Fees(ctx context.Context, network string) (*domain.FeeEstimate, error) {
	args := m.Called(ctx, network)
	var res *domain.FeeEstimate
	if a := args.Get(0); a != nil {
		res = a.(*domain.FeeEstimate)
	}
	return res, args.Error(1)
}

type mockBalances struct {
	mock.Mock
}

func (m *mockBalances) Balance(
	ctx context.Context, network, address string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, network, address)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockRecipients struct {
	mock.Mock
}

func (m *mockRecipients) RecipientAddress(
	ctx context.Context, sender domain.Wallet, path string,
) (string, error) {
	args := m.Called(ctx, sender, path)
	return args.String(0), args.Error(1)
}

/*
 * DeviceTransport
 */
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
