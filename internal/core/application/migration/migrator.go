package migration

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/application/transaction"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

// TransactionBuilder ...
type TransactionBuilder interface {
	Build(
		ctx context.Context, txType domain.TxType, input ports.SignInput,
		wallet domain.Wallet, opts transaction.BuildOpts,
	) (*transaction.Result, error)
}

// Opts defines the collaborators of a Migrator.
type Opts struct {
	Network    string
	Repository domain.WalletRepository
	Builder    TransactionBuilder
	Signer     ports.Signer
	FeeOracle  ports.FeeOracle
	Balances   ports.BalanceProvider
	Recipients RecipientResolver
}

func (o Opts) validate() error {
	if _, err := domain.CoinFromNetwork(o.Network); err != nil {
		return err
	}
	if o.Repository == nil {
		return fmt.Errorf("missing wallet repository")
	}
	if o.Builder == nil {
		return fmt.Errorf("missing transaction builder")
	}
	if o.Signer == nil {
		return fmt.Errorf("missing signer")
	}
	if o.FeeOracle == nil {
		return fmt.Errorf("missing fee oracle")
	}
	if o.Balances == nil {
		return fmt.Errorf("missing balance provider")
	}
	if o.Recipients == nil {
		return fmt.Errorf("missing recipient resolver")
	}
	return nil
}

// TransactionRequest identifies a sender and the path of its successor.
type TransactionRequest struct {
	Address       string
	SenderPath    string
	RecipientPath string
}

// Migrator drives the migration of a sequence of wallets, one transaction
// per wallet, strictly in the given order.
type Migrator struct {
	Opts

	lock         *sync.RWMutex
	transactions []*Transaction
	currentIndex int
}

func NewMigrator(opts Opts) (*Migrator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Migrator{
		Opts:         opts,
		lock:         &sync.RWMutex{},
		currentIndex: -1,
	}, nil
}

// CreateTransaction returns an unsigned draft for the wallet with the given
// address. The draft is not added to the migration.
func (m *Migrator) CreateTransaction(
	ctx context.Context, address, senderPath, recipientPath string,
) (*Transaction, error) {
	if recipientPath == "" {
		return nil, ErrMissingRecipientPath
	}

	sender, err := m.Repository.FindByAddress(ctx, m.Network, address)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, domain.ErrWalletNotFound
	}
	if senderPath == "" {
		senderPath = sender.DerivationPath
	}

	recipient, err := m.Recipients.RecipientAddress(ctx, *sender, recipientPath)
	if err != nil {
		return nil, err
	}

	return &Transaction{
		migrator: m,
		tx: domain.NewMigrationTransaction(
			m.Network, sender.Address, senderPath, recipient, recipientPath,
		),
	}, nil
}

// CreateTransactions replaces the migration with drafts for the given
// requests, in order, and rewinds the cursor. On error the migration is left
// untouched.
func (m *Migrator) CreateTransactions(
	ctx context.Context, requests []TransactionRequest,
) error {
	transactions := make([]*Transaction, 0, len(requests))
	for _, req := range requests {
		tx, err := m.CreateTransaction(
			ctx, req.Address, req.SenderPath, req.RecipientPath,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", req.Address, err)
		}
		transactions = append(transactions, tx)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.transactions = transactions
	m.currentIndex = -1

	log.WithField("network", m.Network).Infof(
		"migration created with %d transaction(s)", len(transactions),
	)
	return nil
}

// Transactions returns the transactions of the migration in order.
func (m *Migrator) Transactions() []*Transaction {
	m.lock.RLock()
	defer m.lock.RUnlock()

	txs := make([]*Transaction, len(m.transactions))
	copy(txs, m.transactions)
	return txs
}

// NextTransaction moves the cursor forward and returns the transaction it
// points to, nil once past the end. The cursor never moves past
// len(transactions).
func (m *Migrator) NextTransaction() *Transaction {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.currentIndex < len(m.transactions) {
		m.currentIndex++
	}
	return m.current()
}

// CurrentTransaction returns the transaction under the cursor, nil if the
// cursor is not on a transaction.
func (m *Migrator) CurrentTransaction() *Transaction {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.current()
}

// PendingTransaction returns the transaction marked as pending, if any.
func (m *Migrator) PendingTransaction() *Transaction {
	m.lock.RLock()
	defer m.lock.RUnlock()

	for _, tx := range m.transactions {
		if tx.tx.IsPending && !tx.tx.IsCompleted {
			return tx
		}
	}
	return nil
}

// CompletedTransactions returns the completed transactions in order.
func (m *Migrator) CompletedTransactions() []*Transaction {
	m.lock.RLock()
	defer m.lock.RUnlock()

	completed := make([]*Transaction, 0, len(m.transactions))
	for _, tx := range m.transactions {
		if tx.tx.IsCompleted {
			completed = append(completed, tx)
		}
	}
	return completed
}

// IsMigrationComplete returns whether the migration has transactions and all
// of them are completed.
func (m *Migrator) IsMigrationComplete() bool {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if len(m.transactions) <= 0 {
		return false
	}
	for _, tx := range m.transactions {
		if !tx.tx.IsCompleted {
			return false
		}
	}
	return true
}

// Flush drops all transactions and rewinds the cursor.
func (m *Migrator) Flush() {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.transactions = nil
	m.currentIndex = -1
}

func (m *Migrator) current() *Transaction {
	if m.currentIndex < 0 || m.currentIndex >= len(m.transactions) {
		return nil
	}
	return m.transactions[m.currentIndex]
}
