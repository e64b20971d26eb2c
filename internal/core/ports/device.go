package ports

import "context"

// DeviceTransport is the raw channel to a hardware signing device. Errors are
// the ones reported by the device SDK and carry no type information.
type DeviceTransport interface {
	Connect(ctx context.Context, coin string) error
	Disconnect() error
	GetVersion(ctx context.Context) (string, error)
	GetPublicKey(ctx context.Context, path string) (string, error)
	SignMessage(ctx context.Context, path string, payload []byte) (string, error)
	SignTransaction(ctx context.Context, path string, payload []byte) (string, error)
}
