package migration

import (
	"context"

	"github.com/tdex-network/tdex-signer/internal/core/application/device"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

// RecipientResolver returns the address a sender migrates its balance to.
type RecipientResolver interface {
	RecipientAddress(
		ctx context.Context, sender domain.Wallet, path string,
	) (string, error)
}

// LedgerRecipientResolver derives the recipient address from the public key
// the device reports at the recipient path.
type LedgerRecipientResolver struct {
	link   *device.Link
	driver *device.RetryDriver
	signer ports.Signer
}

func NewLedgerRecipientResolver(
	link *device.Link, driver *device.RetryDriver, signer ports.Signer,
) *LedgerRecipientResolver {
	return &LedgerRecipientResolver{link, driver, signer}
}

func (r *LedgerRecipientResolver) RecipientAddress(
	ctx context.Context, sender domain.Wallet, path string,
) (string, error) {
	defer r.link.Disconnect()

	if err := r.driver.Connect(ctx, sender.Coin, path); err != nil {
		return "", err
	}
	publicKey, err := r.link.Transport().GetPublicKey(ctx, path)
	if err != nil {
		return "", device.Classify(err)
	}
	return r.signer.Address(ctx, sender.Network, publicKey)
}
