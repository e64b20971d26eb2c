package wallet

import (
	"errors"
)

var (
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic must not be null")

	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must respect format m/purpose'/coin_type'/account'[/change/index]",
	)
	// ErrDerivationPathTooLong is returned when a path cannot be serialized in
	// a single device request.
	ErrDerivationPathTooLong = errors.New("derivation path must have at most 10 levels")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrWrongPassphrase is returned when a cypher cannot be opened with the
	// given passphrase.
	ErrWrongPassphrase = errors.New("passphrase is not valid")
)
