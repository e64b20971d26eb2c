package domain

import (
	"github.com/shopspring/decimal"
)

// MigrationTransaction is the unit of work of a migration: it sweeps the
// balance of a sender address to its successor recipient address.
type MigrationTransaction struct {
	Network                 string
	SenderAddress           string
	SenderDerivationPath    string
	RecipientAddress        string
	RecipientDerivationPath string
	GasLimit                uint64
	GasPrice                decimal.Decimal
	Fees                    *FeeEstimate
	SelectedFee             *decimal.Decimal
	Amount                  *decimal.Decimal
	IsPending               bool
	IsCompleted             bool
	TxID                    string
}

// NewMigrationTransaction returns an unsigned draft without fees or amount.
func NewMigrationTransaction(
	network, senderAddress, senderPath, recipientAddress, recipientPath string,
) *MigrationTransaction {
	return &MigrationTransaction{
		Network:                 network,
		SenderAddress:           senderAddress,
		SenderDerivationPath:    senderPath,
		RecipientAddress:        recipientAddress,
		RecipientDerivationPath: recipientPath,
	}
}

// SetFees stores the fee estimate fetched from the oracle. A previously
// selected fee is dropped since it may not match the new estimate.
func (t *MigrationTransaction) SetFees(fees FeeEstimate) {
	t.Fees = &fees
	t.GasLimit = fees.GasLimit
	t.GasPrice = fees.GasPrice
	t.SelectedFee = nil
}

// SelectFee fixes the fee to the one of the given tier.
func (t *MigrationTransaction) SelectFee(tier FeeTier) error {
	if t.Fees == nil {
		return ErrFeesNotCalculated
	}
	fee, err := t.Fees.Fee(tier)
	if err != nil {
		return err
	}
	t.SelectedFee = &fee
	return nil
}

// SetMaxAmount sets the amount to the whole balance net of the selected fee.
func (t *MigrationTransaction) SetMaxAmount(balance decimal.Decimal) error {
	if t.SelectedFee == nil {
		return ErrFeeNotSelected
	}
	amount := balance.Sub(*t.SelectedFee)
	if !amount.IsPositive() {
		return ErrInsufficientBalance
	}
	t.Amount = &amount
	return nil
}

// SetAmount sets an explicit amount.
func (t *MigrationTransaction) SetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	t.Amount = &amount
	return nil
}

// Complete marks the transaction as broadcasted with the given id.
func (t *MigrationTransaction) Complete(txid string) {
	t.TxID = txid
	t.IsCompleted = true
	t.IsPending = false
}
