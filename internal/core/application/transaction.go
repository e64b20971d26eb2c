package application

import (
	"context"

	"github.com/tdex-network/tdex-signer/internal/core/application/transaction"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"github.com/tdex-network/tdex-signer/pkg/stats"
)

type TransactionService interface {
	Build(
		ctx context.Context, txType domain.TxType, input ports.SignInput,
		wallet domain.Wallet, opts transaction.BuildOpts,
	) (*transaction.Result, error)
}

// instrumentedBuilder counts the outcome of every build.
type instrumentedBuilder struct {
	*transaction.Builder
}

func (b instrumentedBuilder) Build(
	ctx context.Context, txType domain.TxType, input ports.SignInput,
	wallet domain.Wallet, opts transaction.BuildOpts,
) (*transaction.Result, error) {
	res, err := b.Builder.Build(ctx, txType, input, wallet, opts)
	stats.RecordBuild(string(txType), err)
	return res, err
}

func NewTransactionService(
	signer ports.Signer, resolver transaction.SignatoryResolver,
) TransactionService {
	return instrumentedBuilder{transaction.NewBuilder(signer, resolver)}
}
