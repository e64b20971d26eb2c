package domain

import "github.com/shopspring/decimal"

// FeeTier identifies one of the fee levels returned by the fee oracle.
type FeeTier string

const (
	FeeTierSlow FeeTier = "slow"
	FeeTierAvg  FeeTier = "avg"
	FeeTierFast FeeTier = "fast"
)

func (t FeeTier) IsValid() bool {
	return t == FeeTierSlow || t == FeeTierAvg || t == FeeTierFast
}

// FeeEstimate holds the tiered fees for a network plus the gas parameters
// for networks that price by gas.
type FeeEstimate struct {
	Slow     decimal.Decimal
	Avg      decimal.Decimal
	Fast     decimal.Decimal
	GasLimit uint64
	GasPrice decimal.Decimal
}

// Fee returns the fee for the given tier.
func (f FeeEstimate) Fee(tier FeeTier) (decimal.Decimal, error) {
	switch tier {
	case FeeTierSlow:
		return f.Slow, nil
	case FeeTierAvg:
		return f.Avg, nil
	case FeeTierFast:
		return f.Fast, nil
	default:
		return decimal.Zero, ErrInvalidFeeTier
	}
}
