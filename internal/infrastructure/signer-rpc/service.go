package signerrpc

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"github.com/tdex-network/tdex-signer/pkg/circuitbreaker"
	"github.com/ybbus/jsonrpc"
)

const (
	methodSync        = "signer.sync"
	methodAddress     = "signer.address"
	methodSign        = "signer.sign"
	methodPrepare     = "signer.prepare"
	methodAttach      = "signer.attach"
	methodTransaction = "signer.transaction"
	methodBroadcast   = "signer.broadcast"
)

var (
	// ErrMissingDevice is returned when signing for a ledger wallet with a
	// service created without a device.
	ErrMissingDevice = errors.New("no device configured for ledger signatures")
	// ErrMissingSignatory ...
	ErrMissingSignatory = errors.New("sign input must carry a signatory")
)

// Device signs the payloads prepared for ledger signatories on the hardware
// device. It owns the connection, and its errors are already classified.
type Device interface {
	SignTransaction(
		ctx context.Context, coin, path string, payload []byte,
	) (string, error)
}

type service struct {
	client *jsonrpc.RPCClient
	cb     *gobreaker.CircuitBreaker
	device Device
}

// NewService returns a Signer talking JSON-RPC to the signer daemon at addr.
// The device is optional and only needed for ledger wallets.
func NewService(addr string, device Device) (ports.Signer, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing signer rpc address")
	}
	return &service{
		client: jsonrpc.NewRPCClient(addr),
		cb:     circuitbreaker.NewCircuitBreaker("signer-rpc"),
		device: device,
	}, nil
}

func (s *service) Sync(
	ctx context.Context, wallet domain.Wallet,
) (uint64, error) {
	args := syncArgs{
		Network:   wallet.Network,
		Address:   wallet.Address,
		PublicKey: wallet.PublicKey,
	}
	if wallet.MultiSignature != nil {
		args.MultiSignature = &multiSig{
			Min:        wallet.MultiSignature.Min,
			PublicKeys: wallet.MultiSignature.PublicKeys,
		}
	}

	var reply syncReply
	if err := s.call(ctx, methodSync, args, &reply); err != nil {
		return 0, err
	}
	if reply.Nonce == "" {
		return 0, nil
	}
	return strconv.ParseUint(reply.Nonce, 10, 64)
}

func (s *service) Address(
	ctx context.Context, network, publicKey string,
) (string, error) {
	var reply addressReply
	if err := s.call(
		ctx, methodAddress, addressArgs{network, publicKey}, &reply,
	); err != nil {
		return "", err
	}
	return reply.Address, nil
}

func (s *service) SignTransfer(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	return s.sign(ctx, domain.TxTypeTransfer, wallet, input)
}

func (s *service) SignVote(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	return s.sign(ctx, domain.TxTypeVote, wallet, input)
}

func (s *service) SignMultiPayment(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	return s.sign(ctx, domain.TxTypeMultiPayment, wallet, input)
}

func (s *service) SignDelegateRegistration(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	return s.sign(ctx, domain.TxTypeDelegateRegistration, wallet, input)
}

func (s *service) SignDelegateResignation(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	return s.sign(ctx, domain.TxTypeDelegateResignation, wallet, input)
}

func (s *service) SignUnlockToken(
	ctx context.Context, wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	return s.sign(ctx, domain.TxTypeUnlockToken, wallet, input)
}

func (s *service) Transaction(
	ctx context.Context, uuid string,
) (*ports.SignedTransaction, error) {
	var reply transactionReply
	if err := s.call(ctx, methodTransaction, uuidArgs{uuid}, &reply); err != nil {
		return nil, err
	}

	amount, err := parseDecimal(reply.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	fee, err := parseDecimal(reply.Fee)
	if err != nil {
		return nil, fmt.Errorf("invalid fee: %w", err)
	}
	var nonce uint64
	if reply.Nonce != "" {
		if nonce, err = strconv.ParseUint(reply.Nonce, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid nonce: %w", err)
		}
	}

	return &ports.SignedTransaction{
		ID:        reply.ID,
		Type:      domain.TxType(reply.Type),
		Sender:    reply.Sender,
		Recipient: reply.Recipient,
		Amount:    amount,
		Fee:       fee,
		Nonce:     nonce,
		Hex:       reply.Hex,
	}, nil
}

func (s *service) Broadcast(
	ctx context.Context, uuids []string,
) (*ports.BroadcastResult, error) {
	var reply broadcastReply
	if err := s.call(
		ctx, methodBroadcast, broadcastArgs{uuids}, &reply,
	); err != nil {
		return nil, err
	}
	return &ports.BroadcastResult{
		Accepted: reply.Accepted,
		Errors:   reply.Errors,
	}, nil
}

func (s *service) sign(
	ctx context.Context, txType domain.TxType,
	wallet domain.Wallet, input ports.SignInput,
) (string, error) {
	if input.Signatory == nil {
		return "", ErrMissingSignatory
	}

	args := signArgs{
		Type:    string(txType),
		Network: wallet.Network,
		Sender:  wallet.Address,
		Fee:     input.Fee.String(),
		Nonce:   strconv.FormatUint(input.Nonce, 10),
		Data:    newTxData(input.Data),
	}

	if input.Signatory.IsLedger() {
		return s.signWithDevice(ctx, wallet, args, input.Signatory)
	}

	args.Signatory = newSignatory(input.Signatory)
	var reply signReply
	if err := s.call(ctx, methodSign, args, &reply); err != nil {
		return "", err
	}
	return reply.UUID, nil
}

// signWithDevice lets the daemon serialize the transaction, signs the
// payload on the device and hands the signature back to the daemon.
func (s *service) signWithDevice(
	ctx context.Context, wallet domain.Wallet, args signArgs,
	signatory *domain.Signatory,
) (string, error) {
	if s.device == nil {
		return "", ErrMissingDevice
	}

	args.Signatory = newSignatory(signatory)
	var prepared prepareReply
	if err := s.call(ctx, methodPrepare, args, &prepared); err != nil {
		return "", err
	}
	payload, err := hex.DecodeString(prepared.Payload)
	if err != nil {
		return "", fmt.Errorf("invalid payload: %w", err)
	}

	signature, err := s.device.SignTransaction(
		ctx, wallet.Coin, signatory.DerivationPath, payload,
	)
	if err != nil {
		return "", err
	}

	var reply signReply
	if err := s.call(ctx, methodAttach, attachArgs{
		UUID:      prepared.UUID,
		Signature: signature,
		PublicKey: signatory.PublicKey,
	}, &reply); err != nil {
		return "", err
	}
	return reply.UUID, nil
}

// call runs the rpc method through the circuit breaker. The client has no
// notion of context, the call is left running in background on cancellation.
func (s *service) call(
	ctx context.Context, method string, args, reply interface{},
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.cb.Execute(func() (interface{}, error) {
			res, err := s.client.Call(method, args)
			if err != nil {
				return nil, err
			}
			if res.Error != nil {
				return nil, &RPCError{
					Method: method, Code: res.Error.Code, Message: res.Error.Message,
				}
			}
			return nil, res.GetObject(reply)
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			log.WithError(err).Debugf("signer rpc %s failed", method)
		}
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RPCError is an error returned by the signer daemon.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Method, e.Message, e.Code)
}

func newSignatory(s *domain.Signatory) *signatory {
	return &signatory{
		Kind:           string(s.Kind),
		AuthMode:       string(s.AuthMode),
		Secret:         s.Secret,
		Min:            s.Min,
		PublicKeys:     s.PublicKeys,
		DerivationPath: s.DerivationPath,
		PublicKey:      s.PublicKey,
	}
}

func newTxData(d ports.TransactionData) txData {
	data := txData{
		To:        d.To,
		Memo:      d.Memo,
		Votes:     d.Votes,
		Unvotes:   d.Unvotes,
		Username:  d.Username,
		UnlockIDs: d.UnlockIDs,
	}
	if !d.Amount.IsZero() {
		data.Amount = d.Amount.String()
	}
	for _, p := range d.Payments {
		data.Payments = append(data.Payments, payment{p.To, p.Amount.String()})
	}
	return data
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
