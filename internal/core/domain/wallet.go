package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tdex-network/tdex-signer/pkg/wallet"
)

// AuthMode tells how a wallet is authorized to sign.
type AuthMode string

const (
	AuthModeMnemonic          AuthMode = "mnemonic"
	AuthModeSecret            AuthMode = "secret"
	AuthModeEncryptedMnemonic AuthMode = "encrypted-mnemonic"
	AuthModeEncryptedSecret   AuthMode = "encrypted-secret"
	AuthModeWIF               AuthMode = "wif"
	AuthModeMultiSignature    AuthMode = "multi-signature"
	AuthModeLedger            AuthMode = "ledger"
)

func (m AuthMode) IsValid() bool {
	switch m {
	case AuthModeMnemonic, AuthModeSecret, AuthModeEncryptedMnemonic,
		AuthModeEncryptedSecret, AuthModeWIF, AuthModeMultiSignature,
		AuthModeLedger:
		return true
	}
	return false
}

// IsSoftware returns whether signing requires revealing a credential.
func (m AuthMode) IsSoftware() bool {
	switch m {
	case AuthModeMnemonic, AuthModeSecret, AuthModeEncryptedMnemonic,
		AuthModeEncryptedSecret, AuthModeWIF:
		return true
	}
	return false
}

// IsEncrypted returns whether the credential is stored sealed with a
// password.
func (m AuthMode) IsEncrypted() bool {
	return m == AuthModeEncryptedMnemonic || m == AuthModeEncryptedSecret
}

// MultiSignatureAsset holds the registered multi-signature keys of a wallet.
type MultiSignatureAsset struct {
	Min        int
	PublicKeys []string
}

func (a MultiSignatureAsset) validate() error {
	if a.Min < 1 || a.Min > len(a.PublicKeys) {
		return ErrWalletInvalidMultiSignature
	}
	seen := make(map[string]struct{}, len(a.PublicKeys))
	for _, key := range a.PublicKeys {
		if _, ok := seen[key]; ok || key == "" {
			return ErrWalletInvalidMultiSignature
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Wallet is the data structure representing a wallet entity.
type Wallet struct {
	ID              string
	Alias           string
	Address         string
	Network         string
	Coin            string
	PublicKey       string
	AuthMode        AuthMode
	DerivationPath  string
	MultiSignature  *MultiSignatureAsset
	EncryptedSecret string
	Nonce           uint64
	CreatedAt       int64
	SyncedAt        int64
}

// NewWalletArgs ...
type NewWalletArgs struct {
	Alias           string
	Address         string
	Network         string
	PublicKey       string
	AuthMode        AuthMode
	DerivationPath  string
	MultiSignature  *MultiSignatureAsset
	EncryptedSecret string
}

// NewWallet returns a wallet with a new id after validating the given args.
func NewWallet(args NewWalletArgs) (*Wallet, error) {
	if strings.TrimSpace(args.Alias) == "" {
		return nil, ErrWalletInvalidAlias
	}
	if strings.TrimSpace(args.Address) == "" {
		return nil, ErrWalletInvalidAddress
	}
	coin, err := CoinFromNetwork(args.Network)
	if err != nil {
		return nil, err
	}
	if !args.AuthMode.IsValid() {
		return nil, ErrWalletInvalidAuthMode
	}

	switch args.AuthMode {
	case AuthModeLedger:
		if args.DerivationPath == "" {
			return nil, ErrWalletMissingDerivationPath
		}
		if _, err := wallet.ParseDerivationPath(args.DerivationPath); err != nil {
			return nil, err
		}
	case AuthModeMultiSignature:
		if args.MultiSignature == nil {
			return nil, ErrWalletMissingMultiSignature
		}
		if err := args.MultiSignature.validate(); err != nil {
			return nil, err
		}
	}

	return &Wallet{
		ID:              uuid.New().String(),
		Alias:           strings.TrimSpace(args.Alias),
		Address:         args.Address,
		Network:         args.Network,
		Coin:            coin,
		PublicKey:       args.PublicKey,
		AuthMode:        args.AuthMode,
		DerivationPath:  args.DerivationPath,
		MultiSignature:  args.MultiSignature,
		EncryptedSecret: args.EncryptedSecret,
		CreatedAt:       time.Now().Unix(),
	}, nil
}

// CoinFromNetwork returns the upper-cased coin id of a network identifier
// like "ark.mainnet".
func CoinFromNetwork(network string) (string, error) {
	parts := strings.Split(network, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrWalletInvalidNetwork
	}
	return strings.ToUpper(parts[0]), nil
}

func (w *Wallet) IsLedger() bool {
	return w.AuthMode == AuthModeLedger
}

func (w *Wallet) IsMultiSignature() bool {
	return w.AuthMode == AuthModeMultiSignature
}

// Rename changes the alias of the wallet. Uniqueness is enforced by the
// repository.
func (w *Wallet) Rename(alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return ErrWalletInvalidAlias
	}
	w.Alias = alias
	return nil
}

// MarkSynced records the nonce returned by the last sync.
func (w *Wallet) MarkSynced(nonce uint64) {
	w.Nonce = nonce
	w.SyncedAt = time.Now().Unix()
}

// SameAlias reports whether the two aliases collide. Comparison is case
// insensitive.
func SameAlias(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
