package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// AESCTR is the legacy unauthenticated payload cipher: AES-256-CTR under
// an Argon2id derived key. A wrong password does not fail; it
// deterministically produces garbage plaintext, which surfaces upstream as
// an unparsable or mismatched payload. Sealed layout:
// salt(16) || iv(16) || ciphertext.
type AESCTR struct{}

func (AESCTR) Name() string { return NameAESCTR }

func (AESCTR) Seal(plaintext []byte, password string, rand io.Reader) ([]byte, error) {
	salt, err := readRandom(rand, saltSize)
	if err != nil {
		return nil, err
	}
	iv, err := readRandom(rand, aes.BlockSize)
	if err != nil {
		return nil, err
	}

	stream, err := newCTR(password, salt, iv)
	if err != nil {
		return nil, err
	}

	out := make([]byte, saltSize+aes.BlockSize+len(plaintext))
	copy(out, salt)
	copy(out[saltSize:], iv)
	stream.XORKeyStream(out[saltSize+aes.BlockSize:], plaintext)
	return out, nil
}

func (AESCTR) Open(sealed []byte, password string) ([]byte, error) {
	if len(sealed) < saltSize+aes.BlockSize {
		return nil, fmt.Errorf("%w: sealed data too short", ErrDecryptionFailure)
	}
	salt := sealed[:saltSize]
	iv := sealed[saltSize : saltSize+aes.BlockSize]
	ct := sealed[saltSize+aes.BlockSize:]

	stream, err := newCTR(password, salt, iv)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ct))
	stream.XORKeyStream(plaintext, ct)
	return plaintext, nil
}

func newCTR(password string, salt, iv []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AES: %w", err)
	}
	return cipher.NewCTR(block, iv), nil
}
