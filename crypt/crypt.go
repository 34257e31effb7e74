// Package crypt seals payload plaintext under a caller-supplied password
// before it is framed and embedded. Keys are derived with Argon2id from a
// random salt; the random source is always injected by the caller so
// deterministic tests are possible.
package crypt

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Canonical cipher names carried in payload metadata.
const (
	NameAESGCM   = "aes-gcm"
	NameChaCha20 = "chacha20"
	NameAESCTR   = "aes-ctr"

	// DefaultCipher is used when the caller sets a password but no
	// algorithm.
	DefaultCipher = NameAESGCM
)

var (
	// ErrUnsupportedCipher indicates an unknown cipher name.
	ErrUnsupportedCipher = errors.New("unsupported cipher")
	// ErrDecryptionFailure indicates a wrong password or corrupted
	// ciphertext detected by an authenticated cipher, or a sealed blob too
	// short to contain its own parameters.
	ErrDecryptionFailure = errors.New("decryption failure")
)

// Cipher seals and opens payload bodies. Sealed output embeds everything
// Open needs besides the password (salt, nonce, ciphertext).
type Cipher interface {
	// Name returns the canonical cipher name.
	Name() string
	// Seal encrypts plaintext under a key derived from password, drawing
	// salt and nonce material from rand.
	Seal(plaintext []byte, password string, rand io.Reader) ([]byte, error)
	// Open reverses Seal. Authenticated ciphers return
	// ErrDecryptionFailure on a wrong password; the unauthenticated CTR
	// cipher deterministically returns garbage plaintext instead.
	Open(sealed []byte, password string) ([]byte, error)
}

// ByName resolves a cipher by its canonical name. An empty name selects
// the default cipher.
func ByName(name string) (Cipher, error) {
	switch name {
	case NameAESGCM, "":
		return AESGCM{}, nil
	case NameChaCha20:
		return ChaCha20{}, nil
	case NameAESCTR:
		return AESCTR{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCipher, name)
	}
}

const (
	saltSize = 16
	keySize  = 32

	// Argon2id parameters, fixed per frame version.
	argonTime    = 1
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// deriveKey stretches password and salt into a 256-bit key.
func deriveKey(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, keySize)
}

// readRandom fills a fresh buffer of size n from rand.
func readRandom(rand io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}
