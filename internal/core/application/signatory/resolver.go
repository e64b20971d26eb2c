package signatory

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/application/device"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

// Resolver produces the signatory matching the authentication mode of a
// wallet.
type Resolver struct {
	credentials ports.CredentialStore
	link        *device.Link
	driver      *device.RetryDriver
}

func NewResolver(
	credentials ports.CredentialStore,
	link *device.Link, driver *device.RetryDriver,
) *Resolver {
	return &Resolver{credentials, link, driver}
}

// Resolve returns the signatory of the wallet. The password is only used by
// software wallets.
func (r *Resolver) Resolve(
	ctx context.Context, wallet domain.Wallet, password string,
) (*domain.Signatory, error) {
	switch {
	case wallet.AuthMode.IsSoftware():
		return r.Software(ctx, wallet, password)
	case wallet.IsMultiSignature():
		return r.MultiSignature(wallet)
	case wallet.IsLedger():
		return r.Ledger(ctx, wallet)
	default:
		return nil, domain.ErrWalletInvalidAuthMode
	}
}

// Software reveals the wallet credential through the credential store.
func (r *Resolver) Software(
	ctx context.Context, wallet domain.Wallet, password string,
) (*domain.Signatory, error) {
	if r.credentials == nil {
		return nil, fmt.Errorf("missing credential store")
	}
	secret, err := r.credentials.Reveal(ctx, wallet, password)
	if err != nil {
		return nil, err
	}
	return domain.NewSoftwareSignatory(wallet.AuthMode, secret), nil
}

// MultiSignature aggregates the multi-signature asset stored on the wallet.
func (r *Resolver) MultiSignature(
	wallet domain.Wallet,
) (*domain.Signatory, error) {
	if wallet.MultiSignature == nil {
		return nil, domain.ErrWalletMissingMultiSignature
	}
	return domain.NewMultiSignatureSignatory(*wallet.MultiSignature), nil
}

// Ledger makes sure the device app is reachable and returns a signatory
// bound to the wallet derivation path. The device is always disconnected
// before returning so that the next signing round can open it again.
func (r *Resolver) Ledger(
	ctx context.Context, wallet domain.Wallet,
) (*domain.Signatory, error) {
	if r.link == nil || r.driver == nil {
		return nil, fmt.Errorf("hardware wallets are not enabled")
	}
	if wallet.DerivationPath == "" {
		return nil, domain.ErrWalletMissingDerivationPath
	}
	defer r.link.Disconnect()

	if err := r.driver.Connect(
		ctx, wallet.Coin, wallet.DerivationPath,
	); err != nil {
		return nil, err
	}

	publicKey, err := r.link.Transport().GetPublicKey(ctx, wallet.DerivationPath)
	if err != nil {
		return nil, device.Classify(err)
	}

	log.WithFields(log.Fields{
		"wallet": wallet.ID,
		"path":   wallet.DerivationPath,
	}).Debug("resolved ledger signatory")

	return domain.NewLedgerSignatory(wallet.DerivationPath, publicKey), nil
}
