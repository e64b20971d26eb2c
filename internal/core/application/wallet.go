package application

import (
	"context"

	"github.com/tdex-network/tdex-signer/internal/core/application/wallet"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

type WalletService interface {
	Import(ctx context.Context, args wallet.ImportArgs) (*domain.Wallet, error)
	List(ctx context.Context, network string) ([]domain.Wallet, error)
	Get(ctx context.Context, id string) (*domain.Wallet, error)
	Rename(ctx context.Context, id, alias string) error
	Remove(ctx context.Context, id string) error
	Export(ctx context.Context) (map[string]domain.Wallet, error)
	Restore(ctx context.Context, dump map[string]domain.Wallet) error
}

func NewWalletService(
	repo ports.RepoManager, credentials ports.CredentialStore,
) (WalletService, error) {
	svc, err := wallet.NewService(repo.WalletRepository(), credentials)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
