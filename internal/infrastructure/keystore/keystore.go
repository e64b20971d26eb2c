package keystore

import (
	"context"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"github.com/tdex-network/tdex-signer/pkg/wallet"
)

var (
	// ErrNotSoftwareWallet is returned when sealing or revealing a secret for
	// a wallet that does not sign with a software credential.
	ErrNotSoftwareWallet = errors.New("wallet does not hold a software credential")
	// ErrEmptySecret ...
	ErrEmptySecret = errors.New("secret must not be empty")
	// ErrInvalidWIF ...
	ErrInvalidWIF = errors.New("secret is not a valid WIF private key")
	// ErrMissingSealedSecret is returned when revealing an encrypted wallet
	// that has no sealed secret stored.
	ErrMissingSealedSecret = errors.New("wallet has no sealed secret")
)

type credentialStore struct {
	params *wallet.ScryptParams
}

// NewCredentialStore returns a CredentialStore sealing secrets with the
// given scrypt parameters. Nil params select wallet.DefaultScryptParams.
func NewCredentialStore(params *wallet.ScryptParams) ports.CredentialStore {
	if params == nil {
		p := wallet.DefaultScryptParams
		params = &p
	}
	return &credentialStore{params}
}

func (s *credentialStore) Seal(
	_ context.Context, mode domain.AuthMode, secret, password string,
) (string, error) {
	if !mode.IsSoftware() {
		return "", ErrNotSoftwareWallet
	}

	secret, err := validateSecret(mode, secret)
	if err != nil {
		return "", err
	}
	if !mode.IsEncrypted() {
		return "", nil
	}

	return wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  secret,
		Passphrase: password,
		Params:     s.params,
	})
}

func (s *credentialStore) Reveal(
	_ context.Context, w domain.Wallet, password string,
) (string, error) {
	if !w.AuthMode.IsSoftware() {
		return "", ErrNotSoftwareWallet
	}

	if !w.AuthMode.IsEncrypted() {
		return validateSecret(w.AuthMode, password)
	}

	if w.EncryptedSecret == "" {
		return "", ErrMissingSealedSecret
	}
	secret, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: w.EncryptedSecret,
		Passphrase: password,
		Params:     s.params,
	})
	if err != nil {
		return "", err
	}
	return validateSecret(w.AuthMode, secret)
}

func validateSecret(mode domain.AuthMode, secret string) (string, error) {
	switch mode {
	case domain.AuthModeMnemonic, domain.AuthModeEncryptedMnemonic:
		if err := wallet.ValidateMnemonic(secret); err != nil {
			return "", err
		}
		return wallet.NormalizeMnemonic(secret), nil
	case domain.AuthModeWIF:
		secret = strings.TrimSpace(secret)
		if secret == "" {
			return "", ErrEmptySecret
		}
		if _, err := btcutil.DecodeWIF(secret); err != nil {
			return "", ErrInvalidWIF
		}
		return secret, nil
	default:
		if strings.TrimSpace(secret) == "" {
			return "", ErrEmptySecret
		}
		return secret, nil
	}
}
