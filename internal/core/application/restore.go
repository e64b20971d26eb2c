package application

import (
	"context"

	"github.com/tdex-network/tdex-signer/internal/core/application/restore"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"github.com/tdex-network/tdex-signer/pkg/stats"
)

type RestoreService interface {
	SyncAll(ctx context.Context) error
	RestoreNetwork(ctx context.Context, network string) ([]restore.WalletResult, error)
}

func NewRestoreService(
	repo ports.RepoManager, signer ports.Signer, concurrency, ratePerSecond int,
) (RestoreService, error) {
	svc, err := restore.NewService(
		repo.WalletRepository(), signer, concurrency, ratePerSecond,
		func(w domain.Wallet, err error) {
			stats.RecordWalletSync(w.Network, err)
		},
	)
	if err != nil {
		return nil, err
	}
	return svc, nil
}
