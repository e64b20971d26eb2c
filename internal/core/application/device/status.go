package device

import (
	"context"
)

// Status is a snapshot of the coin app running on the device.
type Status struct {
	Coin           string
	Version        string
	DerivationPath string
	PublicKey      string
}

// Status connects to the coin app, retrying as configured, and reports its
// version and the public key at the coin default path. The device is
// released before returning.
func (d *RetryDriver) Status(ctx context.Context, coin string) (*Status, error) {
	path, ok := DefaultDerivationPaths[coin]
	if !ok {
		return nil, ErrUnsupportedCoin
	}

	link := d.validator.link
	defer link.Disconnect()

	if err := d.Connect(ctx, coin, path); err != nil {
		return nil, err
	}

	version, err := link.Transport().GetVersion(ctx)
	if err != nil {
		return nil, Classify(err)
	}
	publicKey, err := link.Transport().GetPublicKey(ctx, path)
	if err != nil {
		return nil, Classify(err)
	}

	return &Status{
		Coin:           coin,
		Version:        version,
		DerivationPath: path,
		PublicKey:      publicKey,
	}, nil
}
