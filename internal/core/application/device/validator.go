package device

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"
)

var (
	// MinVersions is the minimum app version required on the device per coin.
	MinVersions = map[string]string{
		"ARK": "2.1.0",
		"LSK": "3.0.0",
	}
	// DefaultDerivationPaths is the path read to check the app is reachable.
	DefaultDerivationPaths = map[string]string{
		"ARK": "m/44'/111'/0'/0/0",
		"LSK": "m/44'/134'/0'",
	}
)

// AppAccessValidator checks that the app running on the device is the one of
// the expected coin and that it is recent enough.
type AppAccessValidator struct {
	link        *Link
	minVersions map[string]string
}

// NewAppAccessValidator returns a validator using the given version table,
// MinVersions if nil.
func NewAppAccessValidator(
	link *Link, minVersions map[string]string,
) *AppAccessValidator {
	if minVersions == nil {
		minVersions = MinVersions
	}
	return &AppAccessValidator{link, minVersions}
}

// HasRequiredVersion returns whether the device app satisfies the minimum
// version of the coin. Coins without a minimum are always satisfied.
func (v *AppAccessValidator) HasRequiredVersion(
	ctx context.Context, coin string,
) (bool, error) {
	required, ok := v.minVersions[coin]
	if !ok {
		return true, nil
	}

	minVersion, err := semver.NewVersion(required)
	if err != nil {
		return false, fmt.Errorf("invalid min version for %s: %w", coin, err)
	}

	rawVersion, err := v.link.Transport().GetVersion(ctx)
	if err != nil {
		return false, Classify(err)
	}
	version, err := semver.NewVersion(rawVersion)
	if err != nil {
		return false, fmt.Errorf("invalid device app version %q: %w", rawVersion, err)
	}

	log.WithFields(log.Fields{
		"coin":     coin,
		"version":  version.String(),
		"required": minVersion.String(),
	}).Debug("device app version")

	return !version.LessThan(minVersion), nil
}

// AccessApp connects to the device and makes sure the coin app is reachable
// by reading the public key at the coin default path.
func (v *AppAccessValidator) AccessApp(ctx context.Context, coin string) error {
	path, ok := DefaultDerivationPaths[coin]
	if !ok {
		return ErrUnsupportedCoin
	}

	if err := v.link.Connect(ctx, coin); err != nil {
		return err
	}

	ok, err := v.HasRequiredVersion(ctx, coin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVersion
	}

	if _, err := v.link.Transport().GetPublicKey(ctx, path); err != nil {
		return Classify(err)
	}
	return nil
}
