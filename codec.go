package hxsplit

import (
	"errors"
	"fmt"

	"github.com/pthm/hxsplit/lib/encoding"
)

// Codec is an alias for encoding.Codec for convenience.
type Codec = encoding.Codec

// NewCodec creates a snapshot codec with the given key.
func NewCodec(key []byte) (*Codec, error) {
	return encoding.NewCodec(key)
}

// wrapEncodingError wraps encoding package errors with ErrSnapshotInvalid.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) ||
		errors.Is(err, encoding.ErrSignatureInvalid) ||
		errors.Is(err, encoding.ErrDecryptFailed) {
		return fmt.Errorf("%w: %w", ErrSnapshotInvalid, err)
	}
	return err
}
