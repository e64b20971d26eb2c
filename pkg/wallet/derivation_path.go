package wallet

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart

	maxPathDepth = 10
	purpose      = 44
)

// DerivationPath is the internal representation of a hierarchical
// deterministic path used to address a key on a signing device.
type DerivationPath []uint32

// ParseDerivationPath converts a derivation path string to the
// internal binary representation
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	var path DerivationPath

	elems := strings.Split(strPath, "/")
	switch {
	case strings.TrimSpace(strPath) == "":
		return nil, ErrNullDerivationPath
	case containsEmptyString(elems):
		return nil, ErrMalformedDerivationPath
	case strings.TrimSpace(elems[0]) != "m":
		return nil, ErrMalformedDerivationPath
	case len(elems) < 4:
		return nil, ErrMalformedDerivationPath
	}
	elems = elems[1:]
	if len(elems) > maxPathDepth {
		return nil, ErrDerivationPathTooLong
	}

	for _, elem := range elems {
		elem = strings.TrimSpace(elem)
		var value uint32

		if strings.HasSuffix(elem, "'") {
			value = hdkeychain.HardenedKeyStart
			elem = strings.TrimSpace(strings.TrimSuffix(elem, "'"))
		}

		bigval, ok := new(big.Int).SetString(elem, 10)
		if !ok {
			return nil, fmt.Errorf("invalid elem '%s' in path", elem)
		}

		max := math.MaxUint32 - value
		if bigval.Sign() < 0 || bigval.Cmp(big.NewInt(int64(max))) > 0 {
			if value == 0 {
				return nil, fmt.Errorf("elem %v must be in range [0, %d]", bigval, max)
			}
			return nil, fmt.Errorf("elem %v must be in hardened range [0, %d]", bigval, max)
		}
		value += uint32(bigval.Uint64())

		path = append(path, value)
	}

	if path[0] != hdkeychain.HardenedKeyStart+purpose {
		return nil, ErrInvalidDerivationPath
	}
	if path[1] < hdkeychain.HardenedKeyStart || path[2] < hdkeychain.HardenedKeyStart {
		return nil, ErrInvalidDerivationPath
	}

	return path, nil
}

// CoinType returns the unhardened coin type level of the path.
func (path DerivationPath) CoinType() uint32 {
	return path[1] - hdkeychain.HardenedKeyStart
}

// Account returns the unhardened account level of the path.
func (path DerivationPath) Account() uint32 {
	return path[2] - hdkeychain.HardenedKeyStart
}

// WithAccount returns a copy of the path pointing to the given account.
func (path DerivationPath) WithAccount(account uint32) DerivationPath {
	next := make(DerivationPath, len(path))
	copy(next, path)
	next[2] = hdkeychain.HardenedKeyStart + account
	return next
}

// Bytes serializes the path the way hardware devices expect it: one byte
// holding the depth followed by every level as a big-endian uint32.
func (path DerivationPath) Bytes() []byte {
	buf := make([]byte, 1+4*len(path))
	buf[0] = byte(len(path))
	for i, component := range path {
		binary.BigEndian.PutUint32(buf[1+4*i:], component)
	}
	return buf
}

// String converts a binary derivation path to its canonical representation
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}

func containsEmptyString(composedPath []string) bool {
	for _, s := range composedPath {
		if strings.TrimSpace(s) == "" {
			return true
		}
	}
	return false
}
