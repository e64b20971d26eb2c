package inmemory

import (
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

type RepoManager struct {
	walletRepository domain.WalletRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		walletRepository: NewWalletRepositoryImpl(),
	}
}

func (d *RepoManager) WalletRepository() domain.WalletRepository {
	return d.walletRepository
}

func (d *RepoManager) Close() {}
