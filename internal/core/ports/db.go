package ports

import (
	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

// RepoManager interface defines the methods for the wallet store.
type RepoManager interface {
	WalletRepository() domain.WalletRepository
	Close()
}
