package dbbadger

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

// walletRecord is the persisted form of a wallet. AliasKey holds the
// normalized alias so that uniqueness checks can be run as queries.
type walletRecord struct {
	ID              string
	Alias           string
	AliasKey        string
	Address         string
	Network         string
	Coin            string
	PublicKey       string
	AuthMode        string
	DerivationPath  string
	MultiSigMin     int
	MultiSigKeys    []string
	EncryptedSecret string
	Nonce           uint64
	CreatedAt       int64
	SyncedAt        int64
}

type walletRepositoryImpl struct {
	store *badgerhold.Store
	lock  *sync.Mutex
}

func NewWalletRepositoryImpl(store *badgerhold.Store) domain.WalletRepository {
	return &walletRepositoryImpl{store, &sync.Mutex{}}
}

func (r *walletRepositoryImpl) Push(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.insert(*wallet)
}

func (r *walletRepositoryImpl) FindByID(
	_ context.Context, id string,
) (*domain.Wallet, error) {
	rec, err := r.get(id)
	if err != nil {
		return nil, err
	}
	w := rec.toDomain()
	return &w, nil
}

func (r *walletRepositoryImpl) FindByAddress(
	_ context.Context, network, address string,
) (*domain.Wallet, error) {
	query := badgerhold.Where("Network").Eq(network).
		And("Address").Eq(address)
	return r.findOne(query)
}

func (r *walletRepositoryImpl) FindByAlias(
	_ context.Context, network, alias string,
) (*domain.Wallet, error) {
	return r.findOne(aliasQuery(network, alias))
}

func (r *walletRepositoryImpl) FindByNetwork(
	_ context.Context, network string,
) ([]domain.Wallet, error) {
	return r.find(badgerhold.Where("Network").Eq(network))
}

func (r *walletRepositoryImpl) All(
	_ context.Context,
) ([]domain.Wallet, error) {
	return r.find(nil)
}

func (r *walletRepositoryImpl) Count(ctx context.Context) (int, error) {
	wallets, err := r.All(ctx)
	if err != nil {
		return -1, err
	}
	return len(wallets), nil
}

func (r *walletRepositoryImpl) Update(
	_ context.Context,
	id string, updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	rec, err := r.get(id)
	if err != nil {
		return err
	}

	current := rec.toDomain()
	updated, err := updateFn(&current)
	if err != nil {
		return err
	}
	if updated == nil {
		return domain.ErrWalletMissingUpdate
	}
	updated.ID = id

	other, err := r.findOne(aliasQuery(updated.Network, updated.Alias))
	if err != nil {
		return err
	}
	if other != nil && other.ID != id {
		return domain.ErrDuplicateAlias
	}

	return r.store.Update(id, newWalletRecord(*updated))
}

func (r *walletRepositoryImpl) Forget(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.store.Delete(id, walletRecord{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrWalletNotFound
		}
		return err
	}
	return nil
}

func (r *walletRepositoryImpl) ToObject(
	ctx context.Context,
) (map[string]domain.Wallet, error) {
	wallets, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	dump := make(map[string]domain.Wallet, len(wallets))
	for _, w := range wallets {
		dump[w.ID] = w
	}
	return dump, nil
}

func (r *walletRepositoryImpl) Flush(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	var records []walletRecord
	if err := r.store.Find(&records, nil); err != nil {
		return err
	}
	for _, rec := range records {
		if err := r.store.Delete(rec.ID, walletRecord{}); err != nil &&
			err != badgerhold.ErrNotFound {
			return err
		}
	}
	return nil
}

func (r *walletRepositoryImpl) Fill(
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
		if err := r.insert(w); err != nil {
			return err
		}
	}
	return nil
}

func (r *walletRepositoryImpl) insert(w domain.Wallet) error {
	other, err := r.findOne(aliasQuery(w.Network, w.Alias))
	if err != nil {
		return err
	}
	if other != nil {
		return domain.ErrDuplicateAlias
	}

	if err := r.store.Insert(w.ID, newWalletRecord(w)); err != nil {
		if err == badgerhold.ErrKeyExists {
			return ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

func (r *walletRepositoryImpl) get(id string) (*walletRecord, error) {
	var rec walletRecord
	if err := r.store.Get(id, &rec); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *walletRepositoryImpl) findOne(
	query *badgerhold.Query,
) (*domain.Wallet, error) {
	wallets, err := r.find(query)
	if err != nil {
		return nil, err
	}
	if len(wallets) == 0 {
		return nil, nil
	}
	return &wallets[0], nil
}

func (r *walletRepositoryImpl) find(
	query *badgerhold.Query,
) ([]domain.Wallet, error) {
	var records []walletRecord
	if err := r.store.Find(&records, query); err != nil {
		return nil, err
	}

	wallets := make([]domain.Wallet, 0, len(records))
	for _, rec := range records {
		wallets = append(wallets, rec.toDomain())
	}
	sort.SliceStable(wallets, func(i, j int) bool {
		if wallets[i].CreatedAt == wallets[j].CreatedAt {
			return wallets[i].Alias < wallets[j].Alias
		}
		return wallets[i].CreatedAt < wallets[j].CreatedAt
	})
	return wallets, nil
}

func aliasQuery(network, alias string) *badgerhold.Query {
	return badgerhold.Where("Network").Eq(network).
		And("AliasKey").Eq(aliasKey(alias))
}

func aliasKey(alias string) string {
	return strings.ToLower(strings.TrimSpace(alias))
}

func newWalletRecord(w domain.Wallet) walletRecord {
	rec := walletRecord{
		ID:              w.ID,
		Alias:           w.Alias,
		AliasKey:        aliasKey(w.Alias),
		Address:         w.Address,
		Network:         w.Network,
		Coin:            w.Coin,
		PublicKey:       w.PublicKey,
		AuthMode:        string(w.AuthMode),
		DerivationPath:  w.DerivationPath,
		EncryptedSecret: w.EncryptedSecret,
		Nonce:           w.Nonce,
		CreatedAt:       w.CreatedAt,
		SyncedAt:        w.SyncedAt,
	}
	if w.MultiSignature != nil {
		rec.MultiSigMin = w.MultiSignature.Min
		rec.MultiSigKeys = append([]string{}, w.MultiSignature.PublicKeys...)
	}
	return rec
}

func (r walletRecord) toDomain() domain.Wallet {
	w := domain.Wallet{
		ID:              r.ID,
		Alias:           r.Alias,
		Address:         r.Address,
		Network:         r.Network,
		Coin:            r.Coin,
		PublicKey:       r.PublicKey,
		AuthMode:        domain.AuthMode(r.AuthMode),
		DerivationPath:  r.DerivationPath,
		EncryptedSecret: r.EncryptedSecret,
		Nonce:           r.Nonce,
		CreatedAt:       r.CreatedAt,
		SyncedAt:        r.SyncedAt,
	}
	if r.MultiSigMin > 0 {
		w.MultiSignature = &domain.MultiSignatureAsset{
			Min:        r.MultiSigMin,
			PublicKeys: append([]string{}, r.MultiSigKeys...),
		}
	}
	return w
}
