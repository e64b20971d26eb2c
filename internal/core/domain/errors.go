package domain

import "errors"

var (
	// ErrWalletNotFound is returned when looking up a wallet by an unknown id.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrDuplicateAlias is returned when pushing or renaming a wallet with an
	// alias already used by another wallet of the same network.
	ErrDuplicateAlias = errors.New("wallet alias is already in use")
	// ErrWalletMissingUpdate is returned when the update func of a wallet
	// returns neither a wallet nor an error.
	ErrWalletMissingUpdate = errors.New("wallet update returned no wallet")
	// ErrWalletInvalidAlias ...
	ErrWalletInvalidAlias = errors.New("wallet alias must not be empty")
	// ErrWalletInvalidAddress ...
	ErrWalletInvalidAddress = errors.New("wallet address must not be empty")
	// ErrWalletInvalidNetwork ...
	ErrWalletInvalidNetwork = errors.New(
		"wallet network must be in the form <coin>.<network>",
	)
	// ErrWalletInvalidAuthMode ...
	ErrWalletInvalidAuthMode = errors.New("unknown wallet authentication mode")
	// ErrWalletMissingDerivationPath is returned for ledger wallets without a
	// derivation path.
	ErrWalletMissingDerivationPath = errors.New(
		"ledger wallet must have a derivation path",
	)
	// ErrWalletMissingMultiSignature ...
	ErrWalletMissingMultiSignature = errors.New(
		"multi-signature wallet must have a multi-signature asset",
	)
	// ErrWalletInvalidMultiSignature ...
	ErrWalletInvalidMultiSignature = errors.New(
		"multi-signature min must be in range [1, len(public keys)] and keys must be unique",
	)

	// ErrFeesNotCalculated is returned when selecting a fee tier before fees
	// have been fetched.
	ErrFeesNotCalculated = errors.New("fees must be calculated first")
	// ErrFeeNotSelected ...
	ErrFeeNotSelected = errors.New("a fee must be selected first")
	// ErrInvalidFeeTier ...
	ErrInvalidFeeTier = errors.New("fee tier must be one of slow, avg or fast")
	// ErrInsufficientBalance is returned when the balance cannot cover the
	// selected fee.
	ErrInsufficientBalance = errors.New("balance is not enough to cover the fee")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrAmountNotSet ...
	ErrAmountNotSet = errors.New("transaction amount must be set first")
	// ErrTransactionAlreadyCompleted ...
	ErrTransactionAlreadyCompleted = errors.New("transaction is already completed")
	// ErrAnotherTransactionPending is returned when marking a transaction as
	// pending while another one of the same migration is pending.
	ErrAnotherTransactionPending = errors.New(
		"another transaction of the migration is pending",
	)

	// ErrUnsupportedTxType ...
	ErrUnsupportedTxType = errors.New("transaction type is not supported")
)
