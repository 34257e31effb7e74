package crypt

import (
	"crypto/cipher"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20 is the alternate authenticated payload cipher:
// ChaCha20-Poly1305 under an Argon2id derived key. Sealed layout matches
// AESGCM: salt(16) || nonce(12) || ciphertext+tag.
type ChaCha20 struct{}

func (ChaCha20) Name() string { return NameChaCha20 }

func (ChaCha20) Seal(plaintext []byte, password string, rand io.Reader) ([]byte, error) {
	salt, err := readRandom(rand, saltSize)
	if err != nil {
		return nil, err
	}

	aead, err := newChaCha(password, salt)
	if err != nil {
		return nil, err
	}

	nonce, err := readRandom(rand, aead.NonceSize())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

func (ChaCha20) Open(sealed []byte, password string) ([]byte, error) {
	aead, nonce, ct, err := splitSealed(sealed, password, newChaCha)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailure, err)
	}
	return plaintext, nil
}

func newChaCha(password string, salt []byte) (cipher.AEAD, error) {
	aead, err := chacha20poly1305.New(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ChaCha20-Poly1305: %w", err)
	}
	return aead, nil
}
