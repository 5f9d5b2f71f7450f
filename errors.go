package hxsplit

import (
	"errors"

	"github.com/pthm/hxsplit/lib/ident"
	"github.com/pthm/hxsplit/lib/manifest"
	"github.com/pthm/hxsplit/lib/rewrite"
)

// Sentinel errors for module operations.
var (
	ErrNotFound        = errors.New("hxsplit: module not found")
	ErrSnapshotInvalid = errors.New("hxsplit: invalid registry snapshot")
	ErrPending         = errors.New("hxsplit: promise not settled")
	ErrLoaderPanic     = errors.New("hxsplit: loader panicked")

	// Re-exported from the packages that produce them so callers can match
	// without importing lib/.
	ErrInvalidID       = ident.ErrInvalidID
	ErrMalformedOutput = rewrite.ErrMalformedOutput
	ErrInvalidManifest = manifest.ErrInvalidManifest
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSnapshotError checks if err came from decoding a registry snapshot.
func IsSnapshotError(err error) bool {
	return errors.Is(err, ErrSnapshotInvalid)
}

// IsBuildError checks if err is a build output or manifest error.
func IsBuildError(err error) bool {
	return errors.Is(err, ErrMalformedOutput) || errors.Is(err, ErrInvalidManifest)
}
