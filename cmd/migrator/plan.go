package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-signer/internal/core/application/migration"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

// plan is the json document listing the wallets to migrate, in order.
type plan struct {
	FeeTier      domain.FeeTier `json:"feeTier"`
	Transactions []planEntry    `json:"transactions"`
}

type planEntry struct {
	Address       string           `json:"address"`
	SenderPath    string           `json:"senderPath"`
	RecipientPath string           `json:"recipientPath"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

func readPlan(path string) (*plan, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	return parsePlan(buf)
}

func parsePlan(buf []byte) (*plan, error) {
	p := &plan{}
	if err := json.Unmarshal(buf, p); err != nil {
		return nil, fmt.Errorf("decoding plan: %w", err)
	}

	if p.FeeTier == "" {
		p.FeeTier = domain.FeeTierAvg
	}
	if !p.FeeTier.IsValid() {
		return nil, domain.ErrInvalidFeeTier
	}
	if len(p.Transactions) <= 0 {
		return nil, fmt.Errorf("plan has no transactions")
	}
	for i, e := range p.Transactions {
		if e.Address == "" {
			return nil, fmt.Errorf("transaction %d: missing address", i)
		}
		if e.RecipientPath == "" {
			return nil, fmt.Errorf(
				"transaction %d: %w", i, migration.ErrMissingRecipientPath,
			)
		}
		if e.Amount != nil && !e.Amount.IsPositive() {
			return nil, fmt.Errorf("transaction %d: amount must be positive", i)
		}
	}
	return p, nil
}

func (p *plan) requests() []migration.TransactionRequest {
	requests := make([]migration.TransactionRequest, 0, len(p.Transactions))
	for _, e := range p.Transactions {
		requests = append(requests, migration.TransactionRequest{
			Address:       e.Address,
			SenderPath:    e.SenderPath,
			RecipientPath: e.RecipientPath,
		})
	}
	return requests
}
