package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

// WalletRepositoryImpl represents an in memory storage
type WalletRepositoryImpl struct {
	wallets map[string]domain.Wallet

	lock *sync.RWMutex
}

// NewWalletRepositoryImpl returns a new empty WalletRepositoryImpl
func NewWalletRepositoryImpl() *WalletRepositoryImpl {
	return &WalletRepositoryImpl{
		wallets: map[string]domain.Wallet{},
		lock:    &sync.RWMutex{},
	}
}

func (r *WalletRepositoryImpl) Push(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.push(*wallet)
}

func (r *WalletRepositoryImpl) FindByID(
	_ context.Context, id string,
) (*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	w, ok := r.wallets[id]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	w = copyWallet(w)
	return &w, nil
}

func (r *WalletRepositoryImpl) FindByAddress(
	_ context.Context, network, address string,
) (*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, w := range r.wallets {
		if w.Network == network && w.Address == address {
			w = copyWallet(w)
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WalletRepositoryImpl) FindByAlias(
	_ context.Context, network, alias string,
) (*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if w := r.findByAlias(network, alias); w != nil {
		cp := copyWallet(*w)
		return &cp, nil
	}
	return nil, nil
}

func (r *WalletRepositoryImpl) FindByNetwork(
	_ context.Context, network string,
) ([]domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	wallets := make([]domain.Wallet, 0)
	for _, w := range r.wallets {
		if w.Network == network {
			wallets = append(wallets, copyWallet(w))
		}
	}
	sortWallets(wallets)
	return wallets, nil
}

func (r *WalletRepositoryImpl) All(
	_ context.Context,
) ([]domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	wallets := make([]domain.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		wallets = append(wallets, copyWallet(w))
	}
	sortWallets(wallets)
	return wallets, nil
}

func (r *WalletRepositoryImpl) Count(_ context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.wallets), nil
}

func (r *WalletRepositoryImpl) Update(
	_ context.Context,
	id string, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	current, ok := r.wallets[id]
	if !ok {
		return domain.ErrWalletNotFound
	}

	cp := copyWallet(current)
	updated, err := updateFn(&cp)
	if err != nil {
		return err
	}
	if updated == nil {
		return domain.ErrWalletMissingUpdate
	}
	// id is immutable
	updated.ID = id

	if other := r.findByAlias(updated.Network, updated.Alias); other != nil &&
		other.ID != id {
		return domain.ErrDuplicateAlias
	}

	r.wallets[id] = copyWallet(*updated)
	return nil
}

func (r *WalletRepositoryImpl) Forget(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.wallets[id]; !ok {
		return domain.ErrWalletNotFound
	}
	delete(r.wallets, id)
	return nil
}

func (r *WalletRepositoryImpl) ToObject(
	_ context.Context,
) (map[string]domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	dump := make(map[string]domain.Wallet, len(r.wallets))
	for id, w := range r.wallets {
		dump[id] = copyWallet(w)
	}
	return dump, nil
}

func (r *WalletRepositoryImpl) Flush(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.wallets = map[string]domain.Wallet{}
	return nil
}

func (r *WalletRepositoryImpl) Fill(
	_ context.Context, wallets map[string]domain.Wallet,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	ids := make([]string, 0, len(wallets))
	for id := range wallets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		w := wallets[id]
		w.ID = id
		if err := r.push(w); err != nil {
			return err
		}
	}
	return nil
}

func (r *WalletRepositoryImpl) push(w domain.Wallet) error {
	if _, ok := r.wallets[w.ID]; ok {
		return ErrWalletAlreadyExists
	}
	if r.findByAlias(w.Network, w.Alias) != nil {
		return domain.ErrDuplicateAlias
	}
	r.wallets[w.ID] = copyWallet(w)
	return nil
}

func (r *WalletRepositoryImpl) findByAlias(
	network, alias string,
) *domain.Wallet {
	for _, w := range r.wallets {
		if w.Network == network && domain.SameAlias(w.Alias, alias) {
			w := w
			return &w
		}
	}
	return nil
}

func copyWallet(w domain.Wallet) domain.Wallet {
	if w.MultiSignature != nil {
		keys := make([]string, len(w.MultiSignature.PublicKeys))
		copy(keys, w.MultiSignature.PublicKeys)
		w.MultiSignature = &domain.MultiSignatureAsset{
			Min:        w.MultiSignature.Min,
			PublicKeys: keys,
		}
	}
	return w
}

func sortWallets(wallets []domain.Wallet) {
	sort.SliceStable(wallets, func(i, j int) bool {
		if wallets[i].CreatedAt == wallets[j].CreatedAt {
			return wallets[i].Alias < wallets[j].Alias
		}
		return wallets[i].CreatedAt < wallets[j].CreatedAt
	})
}
