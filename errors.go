package hpxgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hpxgo/blobstore"
	"github.com/hupe1980/hpxgo/buffer"
	"github.com/hupe1980/hpxgo/dispatch"
	"github.com/hupe1980/hpxgo/healpix"
	"github.com/hupe1980/hpxgo/internal/resource"
	"github.com/hupe1980/hpxgo/skymap"
)

var (
	// ErrClosed is returned by every method of a closed Client.
	ErrClosed = errors.New("hpxgo: client closed")
	// ErrInvalidDepth is returned for depths outside [0, healpix.MaxDepth].
	ErrInvalidDepth = healpix.ErrInvalidDepth
	// ErrInvalidHash is returned for a cell index outside its depth layer.
	ErrInvalidHash = healpix.ErrInvalidHash
	// ErrInvalidRegion is returned for malformed region parameters.
	ErrInvalidRegion = healpix.ErrInvalidRegion
	// ErrInvalidCoordinate is returned for a non-finite longitude or a
	// latitude outside [-π/2, π/2].
	ErrInvalidCoordinate = errors.New("hpxgo: invalid coordinate")
	// ErrInvalidOffset is returned for a cell offset outside [0, 1].
	ErrInvalidOffset = errors.New("hpxgo: offset outside [0, 1]")
	// ErrInvalidStep is returned for a non-positive vertex path step.
	ErrInvalidStep = errors.New("hpxgo: step must be positive")
	// ErrLengthMismatch is returned when the buffers of a batch do not have
	// the lengths the batch requires.
	ErrLengthMismatch = errors.New("hpxgo: buffer length mismatch")
	// ErrMemoryLimitExceeded is returned when a transfer would exceed the
	// configured memory limit.
	ErrMemoryLimitExceeded = resource.ErrMemoryLimitExceeded
	// ErrNotFound is returned when a skymap file or blob does not exist.
	ErrNotFound = blobstore.ErrNotFound
	// ErrDoubleRelease is returned when releasing a token twice.
	ErrDoubleRelease = buffer.ErrDoubleRelease
	// ErrUnknownToken is returned when releasing a token never issued.
	ErrUnknownToken = buffer.ErrUnknownToken
	// ErrInvalidLength is returned for a skymap whose length is not 12*4^depth.
	ErrInvalidLength = skymap.ErrInvalidLength
	// ErrNoBlobStore is returned by blob methods of a Client created without
	// WithBlobStore.
	ErrNoBlobStore = errors.New("hpxgo: no blob store configured")
)

// LengthError reports a buffer whose length does not fit the batch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type LengthError struct {
	Op     string
	Buffer string
	Got    int
	Want   int
	cause  error
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("hpxgo: %s: %s has length %d, want %d", e.Op, e.Buffer, e.Got, e.Want)
}

func (e *LengthError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrLengthMismatch}
	}
	return []error{ErrLengthMismatch, e.cause}
}

// IndexError reports the first batch element that violates a precondition.
// No output has been written when it is returned.
type IndexError struct {
	Op    string
	Index int
	cause error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("hpxgo: %s: element %d: %v", e.Op, e.Index, e.cause)
}

func (e *IndexError) Unwrap() error { return e.cause }

// DepthError reports an invalid depth.
type DepthError = healpix.DepthError

func checkLen(op, name string, got, want int) error {
	if got != want {
		return &LengthError{Op: op, Buffer: name, Got: got, Want: want}
	}
	return nil
}

// checkOptLen accepts a nil optional output.
func checkOptLen[T any](op, name string, s []T, want int) error {
	if s == nil {
		return nil
	}
	return checkLen(op, name, len(s), want)
}

func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	var le *dispatch.LengthError
	if errors.As(err, &le) {
		return &LengthError{Op: op, Buffer: le.Name, Got: le.Got, Want: le.Want, cause: err}
	}
	return err
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
