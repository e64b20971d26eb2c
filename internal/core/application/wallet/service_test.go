package wallet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-signer/internal/core/application/wallet"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/keystore"
	"github.com/tdex-network/tdex-signer/internal/infrastructure/storage/db/inmemory"
	pkgwallet "github.com/tdex-network/tdex-signer/pkg/wallet"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	pubkey1      = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	pubkey2      = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
	pubkey3      = "02f9308a019258c31049344f85f89d5229b531c845836f99b08601f113bce036f9"
)

var ctx = context.Background()

func newTestService(t *testing.T) *wallet.Service {
	svc, err := wallet.NewService(
		inmemory.NewWalletRepositoryImpl(),
		keystore.NewCredentialStore(&pkgwallet.LightScryptParams),
	)
	require.NoError(t, err)
	return svc
}

func TestImport(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	w, err := svc.Import(ctx, wallet.ImportArgs{
		Alias:    "hot",
		Address:  "AHotAddress",
		Network:  "ark.mainnet",
		AuthMode: domain.AuthModeEncryptedMnemonic,
		Secret:   testMnemonic,
		Password: "password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, w.EncryptedSecret)
	require.NotContains(t, w.EncryptedSecret, "abandon")

	w, err = svc.Import(ctx, wallet.ImportArgs{
		Alias:    "vault",
		Address:  "AVaultAddress",
		Network:  "ark.mainnet",
		AuthMode: domain.AuthModeMultiSignature,
		MultiSignature: &domain.MultiSignatureAsset{
			Min: 2, PublicKeys: []string{pubkey1, pubkey2, pubkey3},
		},
	})
	require.NoError(t, err)
	require.True(t, w.IsMultiSignature())

	w, err = svc.Import(ctx, wallet.ImportArgs{
		Alias:          "ledger",
		Address:        "lskledger",
		Network:        "lsk.mainnet",
		PublicKey:      pubkey1,
		AuthMode:       domain.AuthModeLedger,
		DerivationPath: "m/44'/134'/0'",
	})
	require.NoError(t, err)
	require.Empty(t, w.EncryptedSecret)

	wallets, err := svc.List(ctx, "ark.mainnet")
	require.NoError(t, err)
	require.Len(t, wallets, 2)

	wallets, err = svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, wallets, 3)
}

func TestFailingImport(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	_, err := svc.Import(ctx, wallet.ImportArgs{
		Alias: "hot", Address: "A1", Network: "ark.mainnet",
		AuthMode: domain.AuthModeMnemonic, Secret: testMnemonic,
	})
	require.NoError(t, err)

	tests := []struct {
		name          string
		args          wallet.ImportArgs
		expectedError error
	}{
		{
			name: "duplicate_alias",
			args: wallet.ImportArgs{
				Alias: "HOT", Address: "A2", Network: "ark.mainnet",
				AuthMode: domain.AuthModeMnemonic, Secret: testMnemonic,
			},
			expectedError: domain.ErrDuplicateAlias,
		},
		{
			name: "duplicate_address",
			args: wallet.ImportArgs{
				Alias: "other", Address: "A1", Network: "ark.mainnet",
				AuthMode: domain.AuthModeMnemonic, Secret: testMnemonic,
			},
			expectedError: wallet.ErrAddressAlreadyImported,
		},
		{
			name: "invalid_mnemonic",
			args: wallet.ImportArgs{
				Alias: "bad", Address: "A3", Network: "ark.mainnet",
				AuthMode: domain.AuthModeMnemonic, Secret: "not a mnemonic",
			},
			expectedError: pkgwallet.ErrInvalidMnemonic,
		},
		{
			name: "invalid_public_key",
			args: wallet.ImportArgs{
				Alias: "ledger", Address: "A4", Network: "ark.mainnet",
				PublicKey: "02abcd", AuthMode: domain.AuthModeLedger,
				DerivationPath: "m/44'/111'/0'/0/0",
			},
			expectedError: wallet.ErrInvalidPublicKey,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w, err := svc.Import(ctx, tt.args)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, w)
		})
	}

	_, err = svc.Import(ctx, wallet.ImportArgs{
		Alias: "vault", Address: "A5", Network: "ark.mainnet",
		AuthMode: domain.AuthModeMultiSignature,
		MultiSignature: &domain.MultiSignatureAsset{
			Min: 1, PublicKeys: []string{pubkey1, "zz"},
		},
	})
	require.ErrorIs(t, err, wallet.ErrInvalidPublicKey)
}

func TestRenameAndRemove(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	first, err := svc.Import(ctx, wallet.ImportArgs{
		Alias: "first", Address: "A1", Network: "ark.mainnet",
		AuthMode: domain.AuthModeSecret, Secret: "secret",
	})
	require.NoError(t, err)
	second, err := svc.Import(ctx, wallet.ImportArgs{
		Alias: "second", Address: "A2", Network: "ark.mainnet",
		AuthMode: domain.AuthModeSecret, Secret: "secret",
	})
	require.NoError(t, err)

	err = svc.Rename(ctx, second.ID, "First")
	require.Equal(t, domain.ErrDuplicateAlias, err)

	require.NoError(t, svc.Rename(ctx, second.ID, "third"))
	w, err := svc.Get(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, "third", w.Alias)

	require.NoError(t, svc.Remove(ctx, first.ID))
	_, err = svc.Get(ctx, first.ID)
	require.Equal(t, domain.ErrWalletNotFound, err)
}

func TestExportRestore(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	for _, alias := range []string{"a", "b"} {
		_, err := svc.Import(ctx, wallet.ImportArgs{
			Alias: alias, Address: "addr-" + alias, Network: "lsk.mainnet",
			AuthMode: domain.AuthModeSecret, Secret: "secret",
		})
		require.NoError(t, err)
	}

	dump, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Len(t, dump, 2)

	other := newTestService(t)
	_, err = other.Import(ctx, wallet.ImportArgs{
		Alias: "c", Address: "addr-c", Network: "lsk.mainnet",
		AuthMode: domain.AuthModeSecret, Secret: "secret",
	})
	require.NoError(t, err)

	require.NoError(t, other.Restore(ctx, dump))
	restored, err := other.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, dump, restored)

	// a dump with colliding aliases is rejected and the previous wallets kept
	broken := map[string]domain.Wallet{
		"id-1": {Alias: "x", Address: "x1", Network: "lsk.mainnet"},
		"id-2": {Alias: "X", Address: "x2", Network: "lsk.mainnet"},
	}
	err = other.Restore(ctx, broken)
	require.Equal(t, domain.ErrDuplicateAlias, err)

	kept, err := other.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, dump, kept)
}
