package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

func TestParsePlan(t *testing.T) {
	buf := []byte(`{
		"transactions": [
			{"address": "AOld1", "senderPath": "m/44'/111'/0'/0/0", "recipientPath": "m/44'/111'/1'/0/0"},
			{"address": "AOld2", "recipientPath": "m/44'/111'/1'/0/1", "amount": "12.5"}
		]
	}`)

	p, err := parsePlan(buf)
	require.NoError(t, err)
	require.Equal(t, domain.FeeTierAvg, p.FeeTier)

	requests := p.requests()
	require.Len(t, requests, 2)
	require.Equal(t, "AOld1", requests[0].Address)
	require.Equal(t, "m/44'/111'/0'/0/0", requests[0].SenderPath)
	require.Nil(t, p.Transactions[0].Amount)
	require.Equal(t, "12.5", p.Transactions[1].Amount.String())
}

func TestFailingParsePlan(t *testing.T) {
	tests := []struct {
		name string
		buf  string
	}{
		{"malformed", `{"transactions":`},
		{"empty", `{"transactions": []}`},
		{"invalid fee tier", `{"feeTier": "turbo", "transactions": [{"address": "A", "recipientPath": "m/0"}]}`},
		{"missing address", `{"transactions": [{"recipientPath": "m/0"}]}`},
		{"missing recipient path", `{"transactions": [{"address": "A"}]}`},
		{"zero amount", `{"transactions": [{"address": "A", "recipientPath": "m/0", "amount": "0"}]}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p, err := parsePlan([]byte(tt.buf))
			require.Error(t, err)
			require.Nil(t, p)
		})
	}
}
