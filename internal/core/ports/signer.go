package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

// Signer builds and broadcasts transactions on behalf of a wallet. Signed
// transactions are kept by the signer and referenced by an opaque handle.
type Signer interface {
	// Sync refreshes the signer state (nonce, fee schedule) of the wallet and
	// returns its current nonce.
	Sync(ctx context.Context, wallet domain.Wallet) (uint64, error)
	// Address returns the address of the given public key in the network.
	Address(ctx context.Context, network, publicKey string) (string, error)

	SignTransfer(ctx context.Context, wallet domain.Wallet, input SignInput) (string, error)
	SignVote(ctx context.Context, wallet domain.Wallet, input SignInput) (string, error)
	SignMultiPayment(ctx context.Context, wallet domain.Wallet, input SignInput) (string, error)
	SignDelegateRegistration(ctx context.Context, wallet domain.Wallet, input SignInput) (string, error)
	SignDelegateResignation(ctx context.Context, wallet domain.Wallet, input SignInput) (string, error)
	SignUnlockToken(ctx context.Context, wallet domain.Wallet, input SignInput) (string, error)

	// Transaction returns the signed transaction for the given handle.
	Transaction(ctx context.Context, uuid string) (*SignedTransaction, error)
	// Broadcast submits the transactions for the given handles.
	Broadcast(ctx context.Context, uuids []string) (*BroadcastResult, error)
}

// SignInput is the data needed to sign any transaction type. Only the fields
// relevant to the type are read.
type SignInput struct {
	Fee       decimal.Decimal
	Nonce     uint64
	Signatory *domain.Signatory
	Data      TransactionData
}

type TransactionData struct {
	Amount    decimal.Decimal
	To        string
	Memo      string
	Votes     []string
	Unvotes   []string
	Payments  []Payment
	Username  string
	UnlockIDs []string
}

type Payment struct {
	To     string
	Amount decimal.Decimal
}

type SignedTransaction struct {
	ID        string
	Type      domain.TxType
	Sender    string
	Recipient string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Nonce     uint64
	Hex       string
}

// BroadcastResult lists the accepted handles and, for the rejected ones, the
// reason reported by the network.
type BroadcastResult struct {
	Accepted []string
	Errors   map[string]string
}

// IsAccepted returns whether the given handle was accepted.
func (r BroadcastResult) IsAccepted(uuid string) bool {
	for _, id := range r.Accepted {
		if id == uuid {
			return true
		}
	}
	return false
}
