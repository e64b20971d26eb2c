package wallet

import (
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// NormalizeMnemonic collapses any run of whitespace between words into a
// single space and lowercases the result.
func NormalizeMnemonic(mnemonic string) string {
	return strings.ToLower(strings.Join(strings.Fields(mnemonic), " "))
}

// ValidateMnemonic checks the mnemonic against the BIP39 english wordlist and
// its checksum.
func ValidateMnemonic(mnemonic string) error {
	m := NormalizeMnemonic(mnemonic)
	if m == "" {
		return ErrNullMnemonic
	}
	if !bip39.IsMnemonicValid(m) {
		return ErrInvalidMnemonic
	}
	return nil
}
