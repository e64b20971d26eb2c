package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-signer/internal/core/application/transaction"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

var (
	softwareWallet = domain.Wallet{
		ID: "w1", Address: "addr1", Network: "ark.mainnet", Coin: "ARK",
		AuthMode: domain.AuthModeMnemonic,
	}
	multisigWallet = domain.Wallet{
		ID: "w2", Address: "addr2", Network: "ark.mainnet", Coin: "ARK",
		AuthMode: domain.AuthModeMultiSignature,
		MultiSignature: &domain.MultiSignatureAsset{
			Min: 1, PublicKeys: []string{"k1", "k2"},
		},
	}
	ledgerWallet = domain.Wallet{
		ID: "w3", Address: "addr3", Network: "ark.mainnet", Coin: "ARK",
		AuthMode: domain.AuthModeLedger, DerivationPath: "m/44'/111'/0'/0/0",
	}
	transferInput = ports.SignInput{
		Fee: decimal.NewFromFloat(0.1),
		Data: ports.TransactionData{
			Amount: decimal.NewFromInt(10),
			To:     "recipient",
		},
	}
)

func TestBuildSoftwareTransfer(t *testing.T) {
	ctx := context.Background()
	signatory := domain.NewSoftwareSignatory(domain.AuthModeMnemonic, "secret")
	signed := &ports.SignedTransaction{ID: "txid", Type: domain.TxTypeTransfer}

	signer := &mockSigner{}
	signer.On("Sync", mock.Anything, softwareWallet).Return(uint64(3), nil)
	signer.On("SignTransfer", mock.Anything, softwareWallet, mock.MatchedBy(
		func(in ports.SignInput) bool {
			return in.Nonce == 4 && in.Signatory == signatory &&
				in.Data.To == "recipient"
		},
	)).Return("uuid-1", nil)
	signer.On("Transaction", mock.Anything, "uuid-1").Return(signed, nil)

	resolver := &mockResolver{}
	resolver.On("Software", mock.Anything, softwareWallet, "password").
		Return(signatory, nil)

	builder := transaction.NewBuilder(signer, resolver)
	res, err := builder.Build(
		ctx, domain.TxTypeTransfer, transferInput, softwareWallet,
		transaction.BuildOpts{Password: "password"},
	)
	require.NoError(t, err)
	require.Equal(t, "uuid-1", res.UUID)
	require.Equal(t, signed, res.Transaction)
	signer.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestBuildMultiSignatureVote(t *testing.T) {
	ctx := context.Background()
	signatory := domain.NewMultiSignatureSignatory(*multisigWallet.MultiSignature)

	signer := &mockSigner{}
	signer.On("Sync", mock.Anything, multisigWallet).Return(uint64(0), nil)
	signer.On("SignVote", mock.Anything, multisigWallet, mock.MatchedBy(
		func(in ports.SignInput) bool { return in.Signatory == signatory },
	)).Return("uuid-2", nil)
	signer.On("Transaction", mock.Anything, "uuid-2").
		Return(&ports.SignedTransaction{ID: "txid2"}, nil)

	resolver := &mockResolver{}
	resolver.On("MultiSignature", multisigWallet).Return(signatory, nil)

	res, err := transaction.NewBuilder(signer, resolver).Build(
		ctx, domain.TxTypeVote, ports.SignInput{}, multisigWallet,
		transaction.BuildOpts{},
	)
	require.NoError(t, err)
	require.Equal(t, "uuid-2", res.UUID)
	resolver.AssertNotCalled(t, "Software", mock.Anything, mock.Anything, mock.Anything)
}

func TestBuildUnsupportedType(t *testing.T) {
	signer := &mockSigner{}
	resolver := &mockResolver{}

	res, err := transaction.NewBuilder(signer, resolver).Build(
		context.Background(), domain.TxType("htlcLock"), ports.SignInput{},
		softwareWallet, transaction.BuildOpts{},
	)
	require.ErrorIs(t, err, domain.ErrUnsupportedTxType)
	require.Nil(t, res)
	signer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
}

func TestBuildPropagatesErrors(t *testing.T) {
	syncErr := errors.New("peer unreachable")
	signer := &mockSigner{}
	signer.On("Sync", mock.Anything, softwareWallet).Return(nil, syncErr)

	res, err := transaction.NewBuilder(signer, &mockResolver{}).Build(
		context.Background(), domain.TxTypeTransfer, transferInput,
		softwareWallet, transaction.BuildOpts{},
	)
	require.Equal(t, syncErr, err)
	require.Nil(t, res)
}

func TestBuildLedgerAbort(t *testing.T) {
	t.Run("while_resolving_signatory", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		signer := &mockSigner{}
		signer.On("Sync", mock.Anything, ledgerWallet).Return(uint64(1), nil)

		resolver := &mockResolver{}
		resolver.On("Ledger", mock.Anything, ledgerWallet).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, errors.New("Condition of use not satisfied"))

		time.AfterFunc(20*time.Millisecond, cancel)

		res, err := transaction.NewBuilder(signer, resolver).Build(
			ctx, domain.TxTypeTransfer, transferInput, ledgerWallet,
			transaction.BuildOpts{},
		)
		require.EqualError(t, err, "ERR_ABORT")
		require.Equal(t, transaction.ErrAbort, err)
		require.Nil(t, res)
		signer.AssertNotCalled(t, "SignTransfer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("while_signing", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		release := make(chan struct{})
		defer close(release)

		signatory := domain.NewLedgerSignatory(ledgerWallet.DerivationPath, "pubkey")
		signer := &mockSigner{}
		signer.On("Sync", mock.Anything, ledgerWallet).Return(uint64(1), nil)
		signer.On("SignTransfer", mock.Anything, ledgerWallet, mock.Anything).
			Run(func(mock.Arguments) { <-release }).
			Return("", errors.New("device timeout"))

		resolver := &mockResolver{}
		resolver.On("Ledger", mock.Anything, ledgerWallet).Return(signatory, nil)

		time.AfterFunc(20*time.Millisecond, cancel)

		_, err := transaction.NewBuilder(signer, resolver).Build(
			ctx, domain.TxTypeTransfer, transferInput, ledgerWallet,
			transaction.BuildOpts{},
		)
		require.Equal(t, transaction.ErrAbort, err)
	})

	t.Run("device_error_without_abort", func(t *testing.T) {
		deviceErr := errors.New("no device found")
		signer := &mockSigner{}
		signer.On("Sync", mock.Anything, ledgerWallet).Return(uint64(1), nil)

		resolver := &mockResolver{}
		resolver.On("Ledger", mock.Anything, ledgerWallet).Return(nil, deviceErr)

		_, err := transaction.NewBuilder(signer, resolver).Build(
			context.Background(), domain.TxTypeTransfer, transferInput,
			ledgerWallet, transaction.BuildOpts{},
		)
		require.Equal(t, deviceErr, err)
	})
}

func TestBuildNetworkAbort(t *testing.T) {
	blockUntilDone := func(args mock.Arguments) {
		<-args.Get(0).(context.Context).Done()
	}

	tests := []struct {
		name   string
		wallet domain.Wallet
		setup  func(signer *mockSigner, resolver *mockResolver)
	}{
		{
			name:   "ledger_wallet_while_syncing",
			wallet: ledgerWallet,
			setup: func(signer *mockSigner, _ *mockResolver) {
				signer.On("Sync", mock.Anything, ledgerWallet).
					Run(blockUntilDone).
					Return(nil, context.Canceled)
			},
		},
		{
			name:   "software_wallet_while_syncing",
			wallet: softwareWallet,
			setup: func(signer *mockSigner, _ *mockResolver) {
				signer.On("Sync", mock.Anything, softwareWallet).
					Run(blockUntilDone).
					Return(nil, errors.New("Post \"http://signer\": context canceled"))
			},
		},
		{
			name:   "software_wallet_while_fetching_signed_tx",
			wallet: softwareWallet,
			setup: func(signer *mockSigner, resolver *mockResolver) {
				signatory := domain.NewSoftwareSignatory(domain.AuthModeMnemonic, "secret")
				signer.On("Sync", mock.Anything, softwareWallet).Return(uint64(1), nil)
				signer.On("SignTransfer", mock.Anything, softwareWallet, mock.Anything).
					Return("uuid-1", nil)
				signer.On("Transaction", mock.Anything, "uuid-1").
					Run(blockUntilDone).
					Return(nil, context.Canceled)
				resolver.On("Software", mock.Anything, softwareWallet, "").
					Return(signatory, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			signer := &mockSigner{}
			resolver := &mockResolver{}
			tt.setup(signer, resolver)

			time.AfterFunc(20*time.Millisecond, cancel)

			res, err := transaction.NewBuilder(signer, resolver).Build(
				ctx, domain.TxTypeTransfer, transferInput, tt.wallet,
				transaction.BuildOpts{},
			)
			require.Equal(t, transaction.ErrAbort, err)
			require.Nil(t, res)
		})
	}

	t.Run("already_cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		signer := &mockSigner{}
		_, err := transaction.NewBuilder(signer, &mockResolver{}).Build(
			ctx, domain.TxTypeTransfer, transferInput, softwareWallet,
			transaction.BuildOpts{},
		)
		require.Equal(t, transaction.ErrAbort, err)
		signer.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	})
}
