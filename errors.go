package htmox

import (
	"errors"

	"github.com/pthm/htmox/lib/encoding"
)

// Sentinel errors surfaced through App.OnError.
var (
	ErrInvalidFormat    = errors.New("htmox: invalid state format")
	ErrSignatureInvalid = errors.New("htmox: signature verification failed")
	ErrDecryptFailed    = errors.New("htmox: state decryption failed")
)

// IsDecodeError reports whether err came from decoding an opaque state
// parameter. These map to 400 responses; everything else is a 500.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}

// wrapCodecError translates encoding package errors into htmox sentinels.
func wrapCodecError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return ErrInvalidFormat
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	if errors.Is(err, encoding.ErrDecryptFailed) {
		return ErrDecryptFailed
	}
	return err
}
