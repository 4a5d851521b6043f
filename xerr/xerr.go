// Package xerr defines the sentinel error kinds shared by every cipher
// component, wrapped on the way up with github.com/pkg/errors so callers can
// still recover the sentinel via errors.Cause.
package xerr

import "github.com/pkg/errors"

// Sentinel error kinds, one per failure mode named in the component design.
var (
	// ErrInvalidPermutation: indices are not a bijection on {0..n}.
	ErrInvalidPermutation = errors.New("invalid permutation")
	// ErrInvalidConfig: rows/columns violate a transposer's shape constraints.
	ErrInvalidConfig = errors.New("invalid transposer config")
	// ErrMalformedCiphertext: padding decrypt got a length not divisible by the block size.
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
	// ErrEncodingError: bytes are not valid UTF-8 for the Char/Group domains.
	ErrEncodingError = errors.New("invalid utf-8 encoding")
	// ErrMalformedInput: Group domain input's scalar count is not a multiple of the group size.
	ErrMalformedInput = errors.New("malformed input for domain")
	// ErrTokenMismatch: the size-token vector length does not equal the layer count.
	ErrTokenMismatch = errors.New("token count does not match layer count")
	// ErrMalformedRecipe: unknown tag, bad integer, or invalid embedded permutation in the wire form.
	ErrMalformedRecipe = errors.New("malformed recipe")
	// ErrIO: underlying filesystem failure in the keystore.
	ErrIO = errors.New("keystore io error")
	// ErrMalformedEntry: a keystore line is missing ':' or has an invalid recipe body.
	ErrMalformedEntry = errors.New("malformed keystore entry")
)

// Wrap attaches context to one of the sentinel errors above while keeping it
// recoverable with errors.Cause. A nil err returns nil.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
