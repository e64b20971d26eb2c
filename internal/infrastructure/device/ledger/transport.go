package ledger

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/karalabe/hid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-signer/internal/core/ports"
	"github.com/tdex-network/tdex-signer/pkg/wallet"
)

const vendorID = 0x2c97

var (
	// ErrNoDevice is returned when no device is plugged in.
	ErrNoDevice = errors.New("no device found")
	// ErrAlreadyOpen is returned when connecting while a connection is open.
	ErrAlreadyOpen = errors.New("device already open")
	// ErrNotConnected ...
	ErrNotConnected = errors.New("device is not connected")
	// ErrUnknownApp is returned when connecting for a coin without a known
	// device app.
	ErrUnknownApp = errors.New("no device app for coin")
	// ErrUnsupportedPlatform ...
	ErrUnsupportedPlatform = errors.New("usb hid is not supported on this platform")
)

// Opener opens the raw channel to the first available device.
type Opener func() (io.ReadWriteCloser, error)

// HIDOpener opens the first Ledger device found on the USB bus.
func HIDOpener() (io.ReadWriteCloser, error) {
	if !hid.Supported() {
		return nil, ErrUnsupportedPlatform
	}
	devices := hid.Enumerate(vendorID, 0)
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	log.Debugf("opening ledger device %s", devices[0].Path)
	device, err := devices[0].Open()
	if err != nil {
		return nil, err
	}
	return hidDevice{device}, nil
}

type hidDevice struct {
	*hid.Device
}

func (d hidDevice) Close() error {
	d.Device.Close()
	return nil
}

type transport struct {
	open   Opener
	lock   *sync.Mutex
	device io.ReadWriteCloser
	app    app
}

// NewTransport returns a DeviceTransport talking to a Ledger device through
// the given opener. A nil opener defaults to HIDOpener.
func NewTransport(open Opener) ports.DeviceTransport {
	if open == nil {
		open = HIDOpener
	}
	return &transport{
		open: open,
		lock: &sync.Mutex{},
	}
}

func (t *transport) Connect(ctx context.Context, coin string) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if t.device != nil {
		return ErrAlreadyOpen
	}

	app, ok := apps[coin]
	if !ok {
		return fmt.Errorf("%w %s", ErrUnknownApp, coin)
	}

	device, err := t.open()
	if err != nil {
		return err
	}
	t.device = device
	t.app = app
	return nil
}

func (t *transport) Disconnect() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.device == nil {
		return nil
	}
	err := t.device.Close()
	t.device = nil
	return err
}

func (t *transport) GetVersion(ctx context.Context) (string, error) {
	reply, err := t.send(ctx, func(a app) [][]byte {
		return [][]byte{command(a.cla, a.insVersion, 0x00, 0x00, nil)}
	})
	if err != nil {
		return "", err
	}
	// flags | major | minor | patch
	if len(reply) < 4 {
		return "", ErrInvalidReply
	}
	return fmt.Sprintf("%d.%d.%d", reply[1], reply[2], reply[3]), nil
}

func (t *transport) GetPublicKey(
	ctx context.Context, path string,
) (string, error) {
	derivationPath, err := wallet.ParseDerivationPath(path)
	if err != nil {
		return "", err
	}

	reply, err := t.send(ctx, func(a app) [][]byte {
		return [][]byte{
			command(a.cla, a.insPubKey, 0x00, 0x00, derivationPath.Bytes()),
		}
	})
	if err != nil {
		return "", err
	}
	// len | pubkey
	if len(reply) < 1 || len(reply) < 1+int(reply[0]) {
		return "", ErrInvalidReply
	}
	return hex.EncodeToString(reply[1 : 1+int(reply[0])]), nil
}

func (t *transport) SignMessage(
	ctx context.Context, path string, payload []byte,
) (string, error) {
	return t.sign(ctx, path, payload, func(a app) byte { return a.insSignMsg })
}

func (t *transport) SignTransaction(
	ctx context.Context, path string, payload []byte,
) (string, error) {
	return t.sign(ctx, path, payload, func(a app) byte { return a.insSignTx })
}

func (t *transport) sign(
	ctx context.Context, path string, payload []byte, ins func(app) byte,
) (string, error) {
	derivationPath, err := wallet.ParseDerivationPath(path)
	if err != nil {
		return "", err
	}

	data := append(derivationPath.Bytes(), payload...)
	reply, err := t.send(ctx, func(a app) [][]byte {
		parts := chunks(data)
		apdus := make([][]byte, 0, len(parts))
		for i, part := range parts {
			// p1: 0x00 first chunk, 0x01 more chunks, 0x80 last chunk
			p1 := byte(0x01)
			if i == 0 {
				p1 = 0x00
			}
			if i == len(parts)-1 {
				p1 |= 0x80
			}
			apdus = append(apdus, command(a.cla, ins(a), p1, 0x40, part))
		}
		return apdus
	})
	if err != nil {
		return "", err
	}
	if len(reply) == 0 {
		return "", ErrInvalidReply
	}
	return hex.EncodeToString(reply), nil
}

// send exchanges the APDUs built for the connected app and returns the reply
// to the last one.
func (t *transport) send(
	ctx context.Context, build func(app) [][]byte,
) ([]byte, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.device == nil {
		return nil, ErrNotConnected
	}

	var reply []byte
	for _, apdu := range build(t.app) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := exchange(t.device, apdu)
		if err != nil {
			return nil, err
		}
		reply = r
	}
	return reply, nil
}
