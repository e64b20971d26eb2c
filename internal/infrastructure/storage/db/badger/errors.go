package dbbadger

import "errors"

var (
	// ErrWalletAlreadyExists is returned when pushing a wallet whose id is
	// already stored.
	ErrWalletAlreadyExists = errors.New("wallet with same id already exists")
)
