package domain

// SignatoryKind tells which credential a Signatory carries.
type SignatoryKind string

const (
	SignatoryKindSoftware       SignatoryKind = "software"
	SignatoryKindMultiSignature SignatoryKind = "multi-signature"
	SignatoryKindLedger         SignatoryKind = "ledger"
)

// Signatory is a credential-bearing value able to authorize a transaction.
// Only the fields relevant to its Kind are populated.
type Signatory struct {
	Kind SignatoryKind
	// AuthMode is the software mode the secret belongs to.
	AuthMode AuthMode
	Secret   string

	Min        int
	PublicKeys []string

	DerivationPath string
	PublicKey      string
}

func NewSoftwareSignatory(mode AuthMode, secret string) *Signatory {
	return &Signatory{
		Kind:     SignatoryKindSoftware,
		AuthMode: mode,
		Secret:   secret,
	}
}

func NewMultiSignatureSignatory(asset MultiSignatureAsset) *Signatory {
	keys := make([]string, len(asset.PublicKeys))
	copy(keys, asset.PublicKeys)
	return &Signatory{
		Kind:       SignatoryKindMultiSignature,
		Min:        asset.Min,
		PublicKeys: keys,
	}
}

func NewLedgerSignatory(derivationPath, publicKey string) *Signatory {
	return &Signatory{
		Kind:           SignatoryKindLedger,
		DerivationPath: derivationPath,
		PublicKey:      publicKey,
	}
}

func (s *Signatory) IsLedger() bool {
	return s != nil && s.Kind == SignatoryKindLedger
}
