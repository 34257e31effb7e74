package cryptipic

import (
	"errors"

	"github.com/sohamsharma21/cryptipic-45-sub001/crypt"
	"github.com/sohamsharma21/cryptipic-45-sub001/transform"
)

// Failure taxonomy. Capacity and length checks run before any pixel
// mutation, so a rejected encode never returns a partially modified
// buffer; nothing is retried internally.
var (
	// ErrCapacityExceeded is returned pre-flight when the framed payloads
	// would not fit in the safety fraction of the image's capacity.
	ErrCapacityExceeded = errors.New("payload capacity exceeded")

	// ErrUnsupportedTransform is returned for an unknown transform name or
	// wire identifier.
	ErrUnsupportedTransform = transform.ErrUnsupportedTransform

	// ErrUnsupportedCipher is returned for an unknown cipher name.
	ErrUnsupportedCipher = crypt.ErrUnsupportedCipher

	// ErrDecryptionFailure is returned when an authenticated cipher
	// rejects the supplied password.
	ErrDecryptionFailure = crypt.ErrDecryptionFailure

	// ErrInvalidLengthField is returned at decode time when the embedded
	// length header is implausible for the image.
	ErrInvalidLengthField = errors.New("invalid length field")

	// ErrPayloadNotFound is returned when no embedded payload matches the
	// supplied password.
	ErrPayloadNotFound = errors.New("no payload found for password")

	// ErrMessageExpired is returned when the matching payload carries an
	// expiry in the past.
	ErrMessageExpired = errors.New("message expired")

	// ErrInvalidBuffer is returned when a pixel buffer is missing, its
	// length does not match its dimensions, or it is too small to hold
	// the global header.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")

	// ErrImageLoad is returned by callers that decode image files into
	// pixel buffers; the core wraps it so the CLI and the library share
	// one taxonomy.
	ErrImageLoad = errors.New("failed to load image")
)
