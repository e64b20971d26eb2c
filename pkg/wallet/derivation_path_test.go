package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	h := uint32(hdkeychain.HardenedKeyStart)

	tests := []struct {
		input  string
		output DerivationPath
		err    error
	}{
		{"m/44'/111'/0'/0/0", DerivationPath{h + 44, h + 111, h, 0, 0}, nil},
		{"m/44'/111'/3'/0/0", DerivationPath{h + 44, h + 111, h + 3, 0, 0}, nil},
		{"m/44'/134'/0'", DerivationPath{h + 44, h + 134, h}, nil},
		{"m/44'/134'/12'", DerivationPath{h + 44, h + 134, h + 12}, nil},
		{" m / 44' / 134 ' / 0'", DerivationPath{h + 44, h + 134, h}, nil},

		{"", nil, ErrNullDerivationPath},
		{"m", nil, ErrMalformedDerivationPath},
		{"m/", nil, ErrMalformedDerivationPath},
		{"m/44'/134'", nil, ErrMalformedDerivationPath},
		{"44'/134'/0'/0", nil, ErrMalformedDerivationPath},
		{"m/84'/0'/0'/0/0", nil, ErrInvalidDerivationPath},
		{"m/44'/134/0'", nil, ErrInvalidDerivationPath},
		{"m/44'/134'/0'/0/0/0/0/0/0/0/0", nil, ErrDerivationPathTooLong},
	}
	for _, tt := range tests {
		path, err := ParseDerivationPath(tt.input)
		if tt.err != nil {
			assert.Equal(t, tt.err, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.output, path, tt.input)
	}
}

func TestDerivationPathHelpers(t *testing.T) {
	path, err := ParseDerivationPath("m/44'/111'/2'/0/0")
	require.NoError(t, err)

	require.Equal(t, uint32(111), path.CoinType())
	require.Equal(t, uint32(2), path.Account())
	require.Equal(t, "m/44'/111'/2'/0/0", path.String())

	next := path.WithAccount(5)
	require.Equal(t, "m/44'/111'/5'/0/0", next.String())
	require.Equal(t, uint32(2), path.Account())

	buf := path.Bytes()
	require.Len(t, buf, 1+4*5)
	require.Equal(t, byte(5), buf[0])
	require.Equal(t, []byte{0x80, 0x00, 0x00, 0x2c}, buf[1:5])
	require.Equal(t, []byte{0x80, 0x00, 0x00, 0x6f}, buf[5:9])
}
