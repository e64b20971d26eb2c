package migration

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/application/transaction"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

const rejectedReason = "transaction rejected"

// Transaction is the handle of a migration transaction. Its state is guarded
// by the lock of the migrator it belongs to.
type Transaction struct {
	migrator *Migrator
	tx       *domain.MigrationTransaction
}

// Snapshot returns a copy of the current state of the transaction.
func (t *Transaction) Snapshot() domain.MigrationTransaction {
	t.migrator.lock.RLock()
	defer t.migrator.lock.RUnlock()
	return *t.tx
}

func (t *Transaction) SenderAddress() string {
	return t.tx.SenderAddress
}

func (t *Transaction) RecipientAddress() string {
	return t.tx.RecipientAddress
}

// Amount returns the amount to transfer, nil until set.
func (t *Transaction) Amount() *decimal.Decimal {
	t.migrator.lock.RLock()
	defer t.migrator.lock.RUnlock()
	return t.tx.Amount
}

// Fee returns the selected fee, nil until selected.
func (t *Transaction) Fee() *decimal.Decimal {
	t.migrator.lock.RLock()
	defer t.migrator.lock.RUnlock()
	return t.tx.SelectedFee
}

func (t *Transaction) IsPending() bool {
	t.migrator.lock.RLock()
	defer t.migrator.lock.RUnlock()
	return t.tx.IsPending
}

func (t *Transaction) IsCompleted() bool {
	t.migrator.lock.RLock()
	defer t.migrator.lock.RUnlock()
	return t.tx.IsCompleted
}

// CalculateFees fetches the fee tiers of the network from the oracle.
// A cancelled context is reported as transaction.ErrAbort.
func (t *Transaction) CalculateFees(ctx context.Context) error {
	fees, err := t.migrator.FeeOracle.Fees(ctx, t.tx.Network)
	if err != nil {
		return abortOnCancel(ctx, err)
	}

	t.migrator.lock.Lock()
	defer t.migrator.lock.Unlock()
	t.tx.SetFees(*fees)
	return nil
}

// SelectFee fixes the fee to the given tier.
func (t *Transaction) SelectFee(tier domain.FeeTier) error {
	t.migrator.lock.Lock()
	defer t.migrator.lock.Unlock()
	return t.tx.SelectFee(tier)
}

// SetSenderMaxAmount sets the amount to the whole sender balance net of the
// selected fee.
func (t *Transaction) SetSenderMaxAmount(ctx context.Context) error {
	if t.Fee() == nil {
		return domain.ErrFeeNotSelected
	}

	balance, err := t.migrator.Balances.Balance(
		ctx, t.tx.Network, t.tx.SenderAddress,
	)
	if err != nil {
		return abortOnCancel(ctx, err)
	}

	t.migrator.lock.Lock()
	defer t.migrator.lock.Unlock()
	return t.tx.SetMaxAmount(balance)
}

// SetAmount sets an explicit amount.
func (t *Transaction) SetAmount(amount decimal.Decimal) error {
	t.migrator.lock.Lock()
	defer t.migrator.lock.Unlock()
	return t.tx.SetAmount(amount)
}

// SetIsPending flags the transaction as pending. Only one transaction of the
// migration can be pending at a time, completed ones never count.
func (t *Transaction) SetIsPending(pending bool) error {
	t.migrator.lock.Lock()
	defer t.migrator.lock.Unlock()

	if pending {
		for _, other := range t.migrator.transactions {
			if other != t && other.tx.IsPending && !other.tx.IsCompleted {
				return domain.ErrAnotherTransactionPending
			}
		}
	}
	t.tx.IsPending = pending
	return nil
}

// SetIsCompleted flags the transaction as completed, which also ends its
// pending state.
func (t *Transaction) SetIsCompleted(completed bool) {
	t.migrator.lock.Lock()
	defer t.migrator.lock.Unlock()
	t.tx.IsCompleted = completed
	if completed {
		t.tx.IsPending = false
	}
}

// SignAndBroadcast signs the transfer to the recipient and broadcasts it.
// On success the transaction is completed and no longer pending. On any
// failure, cancellation included, its flags are left untouched. A cancelled
// context is reported as transaction.ErrAbort and a rejection by the network
// as *BroadcastError.
func (t *Transaction) SignAndBroadcast(
	ctx context.Context, opts transaction.BuildOpts,
) (string, error) {
	m := t.migrator
	tx := t.Snapshot()

	if tx.IsCompleted {
		return "", domain.ErrTransactionAlreadyCompleted
	}
	if tx.SelectedFee == nil {
		return "", domain.ErrFeeNotSelected
	}
	if tx.Amount == nil {
		return "", domain.ErrAmountNotSet
	}

	sender, err := m.Repository.FindByAddress(ctx, tx.Network, tx.SenderAddress)
	if err != nil {
		return "", abortOnCancel(ctx, err)
	}
	if sender == nil {
		return "", domain.ErrWalletNotFound
	}
	wallet := *sender
	if wallet.IsLedger() && tx.SenderDerivationPath != "" {
		wallet.DerivationPath = tx.SenderDerivationPath
	}

	input := ports.SignInput{
		Fee: *tx.SelectedFee,
		Data: ports.TransactionData{
			Amount: *tx.Amount,
			To:     tx.RecipientAddress,
		},
	}
	res, err := m.Builder.Build(ctx, domain.TxTypeTransfer, input, wallet, opts)
	if err != nil {
		return "", err
	}

	result, err := m.Signer.Broadcast(ctx, []string{res.UUID})
	if err != nil {
		return "", abortOnCancel(ctx, err)
	}
	if !result.IsAccepted(res.UUID) {
		reason, ok := result.Errors[res.UUID]
		if !ok || reason == "" {
			reason = rejectedReason
		}
		return "", &BroadcastError{UUID: res.UUID, Reason: reason}
	}

	txid := res.UUID
	if res.Transaction != nil && res.Transaction.ID != "" {
		txid = res.Transaction.ID
	}

	m.lock.Lock()
	t.tx.Complete(txid)
	m.lock.Unlock()

	log.WithFields(log.Fields{
		"sender":    tx.SenderAddress,
		"recipient": tx.RecipientAddress,
		"amount":    tx.Amount.String(),
		"txid":      txid,
	}).Info("migration transaction broadcasted")

	return txid, nil
}

// abortOnCancel reports the failure of a call interrupted by the cancellation
// of ctx as transaction.ErrAbort.
func abortOnCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return transaction.ErrAbort
	}
	return err
}
