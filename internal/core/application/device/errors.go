package device

import (
	"errors"
	"strings"
)

var (
	// ErrVersion is returned when the app running on the device is older than
	// the minimum version required for the coin.
	ErrVersion = errors.New("VERSION_ERROR")
	// ErrConnection is returned when the caller aborts while the connection
	// is being retried.
	ErrConnection = errors.New("CONNECTION_ERROR")
	// ErrUnsupportedCoin ...
	ErrUnsupportedCoin = errors.New("coin is not supported by the device")
)

// ErrorKind classifies the untyped errors reported by the device SDK.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindAlreadyOpen is a benign race between two connect calls.
	KindAlreadyOpen
	// KindNoDevice means no device is plugged or unlocked.
	KindNoDevice
	// KindUserRejected means the user refused the request on the device.
	KindUserRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindAlreadyOpen:
		return "already-open"
	case KindNoDevice:
		return "no-device"
	case KindUserRejected:
		return "user-rejected"
	default:
		return "unknown"
	}
}

// DeviceError wraps a raw device error with its classification. Its message
// is the raw one.
type DeviceError struct {
	Kind ErrorKind
	Err  error
}

func (e *DeviceError) Error() string {
	return e.Err.Error()
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

var errorPatterns = []struct {
	pattern string
	kind    ErrorKind
}{
	{"already open", KindAlreadyOpen},
	{"no device found", KindNoDevice},
	{"Condition of use not satisfied", KindUserRejected},
}

// Classify is the only place where device error messages are inspected. Any
// non-nil error is returned as a *DeviceError, nil stays nil.
// Matching depends on the wording of the device SDK.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return err
	}

	kind := KindUnknown
	msg := err.Error()
	for _, p := range errorPatterns {
		if strings.Contains(msg, p.pattern) {
			kind = p.kind
			break
		}
	}
	return &DeviceError{Kind: kind, Err: err}
}

// KindOf returns the classification of err.
func KindOf(err error) ErrorKind {
	var devErr *DeviceError
	if errors.As(Classify(err), &devErr) {
		return devErr.Kind
	}
	return KindUnknown
}

func IsAlreadyOpen(err error) bool {
	return err != nil && KindOf(err) == KindAlreadyOpen
}

func IsNoDevice(err error) bool {
	return err != nil && KindOf(err) == KindNoDevice
}

func IsUserRejection(err error) bool {
	return err != nil && KindOf(err) == KindUserRejected
}
