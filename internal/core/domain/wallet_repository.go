package domain

import "context"

// WalletRepository is the abstraction for any kind of database intended to
// persist Wallets.
type WalletRepository interface {
	// Push adds a new wallet to the repository. Aliases must be unique within
	// a network.
	Push(ctx context.Context, wallet *Wallet) error
	// FindByID returns the wallet with the given id or ErrWalletNotFound.
	FindByID(ctx context.Context, id string) (*Wallet, error)
	// FindByAddress returns the wallet with the given address in the given
	// network, nil if none.
	FindByAddress(ctx context.Context, network, address string) (*Wallet, error)
	// FindByAlias returns the wallet with the given alias in the given
	// network, nil if none.
	FindByAlias(ctx context.Context, network, alias string) (*Wallet, error)
	// FindByNetwork returns all wallets of the given network.
	FindByNetwork(ctx context.Context, network string) ([]Wallet, error)
	// All returns all wallets.
	All(ctx context.Context) ([]Wallet, error)
	// Count returns the number of stored wallets.
	Count(ctx context.Context) (int, error)
	// Update updates the state of a wallet. The closure function let's to
	// commit multiple changes to a certain wallet in a transactional way.
	Update(
		ctx context.Context,
		id string, updateFn func(w *Wallet) (*Wallet, error),
	) error
	// Forget removes the wallet with the given id.
	Forget(ctx context.Context, id string) error
	// ToObject dumps the repository into a map keyed by wallet id.
	ToObject(ctx context.Context) (map[string]Wallet, error)
	// Flush removes all wallets.
	Flush(ctx context.Context) error
	// Fill adds the wallets of a dump produced by ToObject.
	Fill(ctx context.Context, wallets map[string]Wallet) error
}
