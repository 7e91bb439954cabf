// Package errs defines the error taxonomy shared by the SCALE codecs.
//
// Encoding never fails for well-typed input. Decoding fails with one of the
// sentinel errors below, usually wrapped in a *DecodeError that records the
// operation and the absolute byte offset at which decoding stopped.
//
// Callers test the kind with errors.Is and the position with Offset:
//
//	_, _, err := compact.DecodeUint64(buf)
//	if errors.Is(err, errs.ErrUnexpectedEOF) {
//	    log.Printf("truncated input at byte %d", errs.Offset(err))
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF indicates fewer bytes remain than the current decode step requires.
	ErrUnexpectedEOF = errors.New("scale: unexpected end of input")

	// ErrInvalidVariant indicates a discriminant byte with no entry in the variant table.
	ErrInvalidVariant = errors.New("scale: invalid enum variant")

	// ErrNonCanonical indicates a compact integer that is not in its minimal mode,
	// reported only when strict decoding is enabled.
	ErrNonCanonical = errors.New("scale: non-canonical compact encoding")

	// ErrLengthLimit indicates a sequence length prefix above the caller supplied cap.
	ErrLengthLimit = errors.New("scale: sequence length exceeds limit")

	// ErrOverflow indicates a value that does not fit the target integer width
	// or the compact encoding ceiling.
	ErrOverflow = errors.New("scale: integer overflow")

	// ErrInvalidBool indicates a boolean byte other than 0x00 or 0x01.
	ErrInvalidBool = errors.New("scale: invalid boolean byte")

	// ErrTrailingBytes indicates input left over after a complete value was decoded.
	ErrTrailingBytes = errors.New("scale: trailing bytes after value")
)

// DecodeError records where a decode failed.
//
// Offset is absolute from the start of the buffer passed to the outermost
// decode call. Composed decoders re-base offsets reported by element decoders.
type DecodeError struct {
	Op     string // Op names the decode path, e.g. "compact", "vector element 3: bool".
	Offset int    // Offset is the byte position of the failure.
	Err    error  // Err is one of the sentinel errors in this package.
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// At wraps err in a *DecodeError positioned at offset.
//
// If err already is a *DecodeError, its offset is shifted by offset and op is
// prefixed to its operation, so nested decoders report the path from the
// outermost step to the innermost one at the absolute position, for example
// "vector element 3: enum Seal: bytes". A nil err returns nil.
func At(op string, offset int, err error) error {
	if err == nil {
		return nil
	}

	var de *DecodeError
	if errors.As(err, &de) {
		return &DecodeError{Op: op + ": " + de.Op, Offset: de.Offset + offset, Err: de.Err}
	}

	return &DecodeError{Op: op, Offset: offset, Err: err}
}

// Offset returns the byte offset recorded in err, or -1 if err carries none.
func Offset(err error) int {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Offset
	}

	return -1
}
