package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
)

// FeeOracle returns the tiered fees currently suggested for a network.
type FeeOracle interface {
	Fees(ctx context.Context, network string) (*domain.FeeEstimate, error)
}

// BalanceProvider returns the spendable balance of an address.
type BalanceProvider interface {
	Balance(ctx context.Context, network, address string) (decimal.Decimal, error)
}
