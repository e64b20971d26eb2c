package device

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Link owns the connection to the hardware device. The device serves one
// session at a time, so every access goes through the link's lock.
type Link struct {
	transport ports.DeviceTransport

	lock      *sync.Mutex
	group     *singleflight.Group
	connected bool
	coin      string
}

func NewLink(transport ports.DeviceTransport) *Link {
	return &Link{
		transport: transport,
		lock:      &sync.Mutex{},
		group:     &singleflight.Group{},
	}
}

// Connect opens the device app of the given coin. Concurrent calls for the
// same coin share the same attempt, unless the shared attempt was cut short
// by the cancellation of another caller's context: a caller whose own
// context is still live then connects again. A device reported as already
// open is considered connected.
func (l *Link) Connect(ctx context.Context, coin string) error {
	_, err, shared := l.group.Do(coin, func() (interface{}, error) {
		return nil, l.connect(ctx, coin)
	})
	if err != nil && shared && isContextErr(err) && ctx.Err() == nil {
		log.WithField("coin", coin).Debug("shared device connection cancelled, retrying")
		return l.connect(ctx, coin)
	}
	return err
}

func (l *Link) connect(ctx context.Context, coin string) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := Classify(l.transport.Connect(ctx, coin)); err != nil {
		if !IsAlreadyOpen(err) {
			return err
		}
		log.WithField("coin", coin).Debug("device already open")
	}
	l.connected = true
	l.coin = coin
	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// Disconnect releases the device. It never fails and can be called when not
// connected.
func (l *Link) Disconnect() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.transport.Disconnect(); err != nil {
		log.WithError(err).Debug("device disconnect")
	}
	l.connected = false
	l.coin = ""
	return nil
}

func (l *Link) IsConnected() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.connected
}

// Transport returns the underlying transport for reads once connected.
func (l *Link) Transport() ports.DeviceTransport {
	return l.transport
}
