package restore

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"go.uber.org/ratelimit"
)

// WalletResult is the sync outcome of a wallet.
type WalletResult struct {
	WalletID string
	Alias    string
	Address  string
	Err      error
}

// Service keeps the signer state of stored wallets up to date.
type Service struct {
	repository domain.WalletRepository
	signer     ports.Signer
	queue      *Queue
	limiter    ratelimit.Limiter
	onSynced   func(wallet domain.Wallet, err error)
}

// NewService returns a restore service syncing at most concurrency wallets
// at once and calling the signer at most ratePerSecond times per second.
func NewService(
	repository domain.WalletRepository, signer ports.Signer,
	concurrency, ratePerSecond int, onSynced func(domain.Wallet, error),
) (*Service, error) {
	if repository == nil {
		return nil, fmt.Errorf("missing wallet repository")
	}
	if signer == nil {
		return nil, fmt.Errorf("missing signer")
	}

	limiter := ratelimit.NewUnlimited()
	if ratePerSecond > 0 {
		limiter = ratelimit.New(ratePerSecond)
	}
	return &Service{
		repository: repository,
		signer:     signer,
		queue:      NewQueue(concurrency),
		limiter:    limiter,
		onSynced:   onSynced,
	}, nil
}

// SyncAll syncs every stored wallet in the background fashion: failures are
// logged and never returned.
func (s *Service) SyncAll(ctx context.Context) error {
	wallets, err := s.repository.All(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	s.queue.RunSettled(ctx, s.tasks(wallets))

	log.Infof(
		"synced %d wallet(s) in %s", len(wallets),
		time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// RestoreNetwork syncs the wallets of the given network and reports the
// outcome of each of them.
func (s *Service) RestoreNetwork(
	ctx context.Context, network string,
) ([]WalletResult, error) {
	wallets, err := s.repository.FindByNetwork(ctx, network)
	if err != nil {
		return nil, err
	}

	results := s.queue.Run(ctx, s.tasks(wallets))

	walletResults := make([]WalletResult, 0, len(results))
	failed := 0
	for _, r := range results {
		w := wallets[r.Index]
		if r.Err != nil {
			failed++
		}
		walletResults = append(walletResults, WalletResult{
			WalletID: w.ID,
			Alias:    w.Alias,
			Address:  w.Address,
			Err:      r.Err,
		})
	}

	log.WithField("network", network).Infof(
		"restored %d wallet(s), %d failed", len(wallets)-failed, failed,
	)
	return walletResults, nil
}

func (s *Service) tasks(wallets []domain.Wallet) []Task {
	tasks := make([]Task, 0, len(wallets))
	for i := range wallets {
		wallet := wallets[i]
		tasks = append(tasks, func(ctx context.Context) error {
			err := s.sync(ctx, wallet)
			if s.onSynced != nil {
				s.onSynced(wallet, err)
			}
			return err
		})
	}
	return tasks
}

func (s *Service) sync(ctx context.Context, wallet domain.Wallet) error {
	s.limiter.Take()

	nonce, err := s.signer.Sync(ctx, wallet)
	if err != nil {
		return fmt.Errorf("sync %s: %w", wallet.Alias, err)
	}

	return s.repository.Update(
		ctx, wallet.ID, func(w *domain.Wallet) (*domain.Wallet, error) {
			w.MarkSynced(nonce)
			return w, nil
		},
	)
}
