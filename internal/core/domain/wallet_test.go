package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

func TestNewWallet(t *testing.T) {
	t.Parallel()

	w, err := domain.NewWallet(domain.NewWalletArgs{
		Alias:          " Cold ",
		Address:        "AHXtmB84sTZ9Zd35h9Y1vfFvPE2Xzqj8ri",
		Network:        "ark.mainnet",
		AuthMode:       domain.AuthModeLedger,
		DerivationPath: "m/44'/111'/0'/0/0",
	})
	require.NoError(t, err)
	require.NotEmpty(t, w.ID)
	require.Equal(t, "Cold", w.Alias)
	require.Equal(t, "ARK", w.Coin)
	require.True(t, w.IsLedger())
	require.False(t, w.IsMultiSignature())
	require.NotZero(t, w.CreatedAt)
	require.Zero(t, w.SyncedAt)

	w.MarkSynced(3)
	require.Equal(t, uint64(3), w.Nonce)
	require.NotZero(t, w.SyncedAt)
}

func TestFailingNewWallet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		args          domain.NewWalletArgs
		expectedError error
	}{
		{
			name:          "missing_alias",
			args:          domain.NewWalletArgs{Address: "addr", Network: "ark.mainnet", AuthMode: domain.AuthModeMnemonic},
			expectedError: domain.ErrWalletInvalidAlias,
		},
		{
			name:          "missing_address",
			args:          domain.NewWalletArgs{Alias: "a", Network: "ark.mainnet", AuthMode: domain.AuthModeMnemonic},
			expectedError: domain.ErrWalletInvalidAddress,
		},
		{
			name:          "invalid_network",
			args:          domain.NewWalletArgs{Alias: "a", Address: "addr", Network: "ark", AuthMode: domain.AuthModeMnemonic},
			expectedError: domain.ErrWalletInvalidNetwork,
		},
		{
			name:          "invalid_auth_mode",
			args:          domain.NewWalletArgs{Alias: "a", Address: "addr", Network: "ark.mainnet", AuthMode: "passkey"},
			expectedError: domain.ErrWalletInvalidAuthMode,
		},
		{
			name:          "ledger_without_path",
			args:          domain.NewWalletArgs{Alias: "a", Address: "addr", Network: "ark.mainnet", AuthMode: domain.AuthModeLedger},
			expectedError: domain.ErrWalletMissingDerivationPath,
		},
		{
			name:          "multisig_without_asset",
			args:          domain.NewWalletArgs{Alias: "a", Address: "addr", Network: "ark.mainnet", AuthMode: domain.AuthModeMultiSignature},
			expectedError: domain.ErrWalletMissingMultiSignature,
		},
		{
			name: "multisig_min_too_high",
			args: domain.NewWalletArgs{
				Alias: "a", Address: "addr", Network: "ark.mainnet", AuthMode: domain.AuthModeMultiSignature,
				MultiSignature: &domain.MultiSignatureAsset{Min: 3, PublicKeys: []string{"k1", "k2"}},
			},
			expectedError: domain.ErrWalletInvalidMultiSignature,
		},
		{
			name: "multisig_duplicated_keys",
			args: domain.NewWalletArgs{
				Alias: "a", Address: "addr", Network: "ark.mainnet", AuthMode: domain.AuthModeMultiSignature,
				MultiSignature: &domain.MultiSignatureAsset{Min: 1, PublicKeys: []string{"k1", "k1"}},
			},
			expectedError: domain.ErrWalletInvalidMultiSignature,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := domain.NewWallet(tt.args)
			require.Equal(t, tt.expectedError, err)
			require.Nil(t, w)
		})
	}
}

func TestAuthMode(t *testing.T) {
	t.Parallel()

	require.True(t, domain.AuthModeWIF.IsSoftware())
	require.True(t, domain.AuthModeEncryptedSecret.IsSoftware())
	require.False(t, domain.AuthModeLedger.IsSoftware())
	require.False(t, domain.AuthModeMultiSignature.IsSoftware())
	require.True(t, domain.AuthModeEncryptedMnemonic.IsEncrypted())
	require.False(t, domain.AuthModeMnemonic.IsEncrypted())
	require.True(t, domain.SameAlias("Cold ", "cold"))
}
