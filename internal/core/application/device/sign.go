package device

import (
	"context"
)

// SignTransaction connects to the coin app, retrying as configured and
// checking its version, then signs the payload with the key at path. Device
// errors are returned classified and the device is released before
// returning.
func (d *RetryDriver) SignTransaction(
	ctx context.Context, coin, path string, payload []byte,
) (string, error) {
	link := d.validator.link
	defer link.Disconnect()

	if err := d.Connect(ctx, coin, path); err != nil {
		return "", err
	}

	signature, err := link.Transport().SignTransaction(ctx, path, payload)
	if err != nil {
		return "", Classify(err)
	}
	return signature, nil
}
