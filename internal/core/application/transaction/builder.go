package transaction

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
)

var (
	// ErrAbort is returned when the caller cancels a build or a broadcast
	// while waiting on the device or the network.
	ErrAbort = errors.New("ERR_ABORT")
)

type signFunc func(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error)

// SignatoryResolver ...
type SignatoryResolver interface {
	Software(ctx context.Context, wallet domain.Wallet, password string) (*domain.Signatory, error)
	MultiSignature(wallet domain.Wallet) (*domain.Signatory, error)
	Ledger(ctx context.Context, wallet domain.Wallet) (*domain.Signatory, error)
}

// BuildOpts ...
type BuildOpts struct {
	// Password reveals the credential of software wallets.
	Password string
}

// Result holds the signer handle and the signed transaction it refers to.
type Result struct {
	UUID        string
	Transaction *ports.SignedTransaction
}

// Builder syncs the wallet, resolves its signatory and signs a transaction
// of the requested type.
type Builder struct {
	signer    ports.Signer
	resolver  SignatoryResolver
	signFuncs map[domain.TxType]signFunc
}

func NewBuilder(signer ports.Signer, resolver SignatoryResolver) *Builder {
	return &Builder{
		signer:   signer,
		resolver: resolver,
		signFuncs: map[domain.TxType]signFunc{
			domain.TxTypeTransfer:             signer.SignTransfer,
			domain.TxTypeVote:                 signer.SignVote,
			domain.TxTypeMultiPayment:         signer.SignMultiPayment,
			domain.TxTypeDelegateRegistration: signer.SignDelegateRegistration,
			domain.TxTypeDelegateResignation:  signer.SignDelegateResignation,
			domain.TxTypeUnlockToken:          signer.SignUnlockToken,
		},
	}
}

// Build signs a transaction of the given type for the wallet. Errors are
// returned unchanged, except for the cancellation of the context, reported
// as ErrAbort whichever step of the build was running. Nothing is broadcast.
func (b *Builder) Build(
	ctx context.Context, txType domain.TxType, input ports.SignInput,
	wallet domain.Wallet, opts BuildOpts,
) (*Result, error) {
	sign, ok := b.signFuncs[txType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedTxType, txType)
	}

	var res *Result
	if err := withAbort(ctx, func() (err error) {
		res, err = b.build(ctx, sign, input, wallet, opts)
		return
	}); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"wallet": wallet.ID,
		"type":   txType,
		"uuid":   res.UUID,
	}).Debug("transaction signed")

	return res, nil
}

func (b *Builder) build(
	ctx context.Context, sign signFunc, input ports.SignInput,
	wallet domain.Wallet, opts BuildOpts,
) (*Result, error) {
	nonce, err := b.signer.Sync(ctx, wallet)
	if err != nil {
		return nil, err
	}
	input.Nonce = nonce + 1

	var signatory *domain.Signatory
	switch {
	case wallet.IsMultiSignature():
		signatory, err = b.resolver.MultiSignature(wallet)
	case wallet.IsLedger():
		signatory, err = b.resolver.Ledger(ctx, wallet)
	case input.Signatory == nil && wallet.AuthMode.IsSoftware():
		signatory, err = b.resolver.Software(ctx, wallet, opts.Password)
	default:
		signatory = input.Signatory
	}
	if err != nil {
		return nil, err
	}
	input.Signatory = signatory

	uuid, err := sign(ctx, wallet, input)
	if err != nil {
		return nil, err
	}

	tx, err := b.signer.Transaction(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return &Result{UUID: uuid, Transaction: tx}, nil
}

// withAbort runs fn in its own goroutine so that a cancelled context is
// reported right away as ErrAbort, whatever fn is blocked on.
func withAbort(ctx context.Context, fn func() error) error {
	if ctx.Err() != nil {
		return ErrAbort
	}

	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		if err != nil && ctx.Err() != nil {
			return ErrAbort
		}
		return err
	case <-ctx.Done():
		return ErrAbort
	}
}
