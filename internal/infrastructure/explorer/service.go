package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-signer/internal/core/domain"
	"github.com/tdex-network/tdex-signer/pkg/circuitbreaker"
	"go.uber.org/ratelimit"
)

const (
	// DefaultRequestTimeout ...
	DefaultRequestTimeout = 15 * time.Second
)

var (
	// ErrMissingURL ...
	ErrMissingURL = errors.New("missing explorer url")
	// ErrNotFound is returned when the explorer replies with 404. Balance
	// reports it as a zero balance.
	ErrNotFound = errors.New("explorer resource not found")
)

// Opts configure the explorer client.
type Opts struct {
	URL            string
	RequestTimeout time.Duration
	// RateLimit is the max number of requests per second, 0 disables it.
	RateLimit int
}

func (o Opts) validate() error {
	if o.URL == "" {
		return ErrMissingURL
	}
	if _, err := url.Parse(o.URL); err != nil {
		return fmt.Errorf("invalid explorer url: %w", err)
	}
	if o.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative")
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

// Service is the client of the block explorer. It implements both
// ports.FeeOracle and ports.BalanceProvider.
type Service struct {
	baseURL string
	client  *client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

func NewService(opts Opts) (*Service, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	timeout := opts.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}
	limiter := ratelimit.NewUnlimited()
	if opts.RateLimit > 0 {
		limiter = ratelimit.New(opts.RateLimit)
	}

	return &Service{
		baseURL: strings.TrimRight(opts.URL, "/"),
		client:  newHTTPClient(timeout),
		cb:      circuitbreaker.NewCircuitBreaker("explorer"),
		limiter: limiter,
	}, nil
}

type feesReply struct {
	Slow     string `json:"slow"`
	Avg      string `json:"avg"`
	Fast     string `json:"fast"`
	GasLimit uint64 `json:"gasLimit"`
	GasPrice string `json:"gasPrice"`
}

type walletReply struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Fees returns the tiered fees of a transfer in the given network.
func (s *Service) Fees(
	ctx context.Context, network string,
) (*domain.FeeEstimate, error) {
	endpoint := fmt.Sprintf(
		"%s/fees?network=%s", s.baseURL, url.QueryEscape(network),
	)

	var reply feesReply
	if err := s.getJSON(ctx, endpoint, &reply); err != nil {
		return nil, err
	}

	values := make([]decimal.Decimal, 0, 3)
	for _, v := range []string{reply.Slow, reply.Avg, reply.Fast} {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid fee %q: %w", v, err)
		}
		values = append(values, d)
	}

	estimate := &domain.FeeEstimate{
		Slow:     values[0],
		Avg:      values[1],
		Fast:     values[2],
		GasLimit: reply.GasLimit,
	}
	if reply.GasPrice != "" {
		gasPrice, err := decimal.NewFromString(reply.GasPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid gas price: %w", err)
		}
		estimate.GasPrice = gasPrice
	}
	return estimate, nil
}

// Balance returns the balance of the address, zero if the explorer has
// never seen it.
func (s *Service) Balance(
	ctx context.Context, network, address string,
) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf(
		"%s/wallets/%s?network=%s",
		s.baseURL, url.PathEscape(address), url.QueryEscape(network),
	)

	var reply walletReply
	if err := s.getJSON(ctx, endpoint, &reply); err != nil {
		if errors.Is(err, ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return decimal.NewFromString(reply.Balance)
}

func (s *Service) getJSON(
	ctx context.Context, endpoint string, reply interface{},
) error {
	s.limiter.Take()

	body, err := s.cb.Execute(func() (interface{}, error) {
		status, body, err := s.client.get(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		switch {
		case status == http.StatusNotFound:
			// not an explorer failure, keep the breaker closed
			return nil, nil
		case status != http.StatusOK:
			return nil, fmt.Errorf("explorer replied with status %d: %s", status, body)
		}
		return body, nil
	})
	if err != nil {
		return err
	}
	if body == nil {
		return ErrNotFound
	}

	return json.Unmarshal([]byte(body.(string)), reply)
}
