package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// AESGCM is the default payload cipher: AES-256-GCM under an Argon2id
// derived key. Sealed layout: salt(16) || nonce(12) || ciphertext+tag.
type AESGCM struct{}

func (AESGCM) Name() string { return NameAESGCM }

func (AESGCM) Seal(plaintext []byte, password string, rand io.Reader) ([]byte, error) {
	salt, err := readRandom(rand, saltSize)
	if err != nil {
		return nil, err
	}

	aead, err := newGCM(password, salt)
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

func (AESGCM) Open(sealed []byte, password string) ([]byte, error) {
	aead, nonce, ct, err := splitSealed(sealed, password, newGCM)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailure, err)
	}
	return plaintext, nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AES: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return aead, nil
}

// splitSealed dissects a sealed blob into its AEAD, nonce and ciphertext.
func splitSealed(sealed []byte, password string, build func(string, []byte) (cipher.AEAD, error)) (cipher.AEAD, []byte, []byte, error) {
	if len(sealed) < saltSize {
		return nil, nil, nil, fmt.Errorf("%w: sealed data too short", ErrDecryptionFailure)
	}
	aead, err := build(password, sealed[:saltSize])
	if err != nil {
		return nil, nil, nil, err
	}
	rest := sealed[saltSize:]
	if len(rest) < aead.NonceSize() {
		return nil, nil, nil, fmt.Errorf("%w: sealed data too short", ErrDecryptionFailure)
	}
	return aead, rest[:aead.NonceSize()], rest[aead.NonceSize():], nil
}
