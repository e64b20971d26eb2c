package ports

import (
	"context"

	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

// CredentialStore validates, seals and reveals the secrets of software
// wallets.
type CredentialStore interface {
	// Seal validates the secret for the given mode and, for encrypted modes,
	// returns it sealed with the password. Plain modes return an empty string
	// since their secret is never stored.
	Seal(ctx context.Context, mode domain.AuthMode, secret, password string) (string, error)
	// Reveal returns the secret of the wallet. For encrypted modes password
	// opens the sealed secret, otherwise it is the secret itself.
	Reveal(ctx context.Context, wallet domain.Wallet, password string) (string, error)
}
