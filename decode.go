package cryptipic

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/sohamsharma21/cryptipic-45-sub001/bitstream"
	"github.com/sohamsharma21/cryptipic-45-sub001/crypt"
	"github.com/sohamsharma21/cryptipic-45-sub001/pipeline"
	"github.com/sohamsharma21/cryptipic-45-sub001/transform"
)

// Decode walks the embedded payloads of src and returns the plaintext of
// whichever one the supplied password unlocks: the primary first, then
// each decoy in embedding order. An empty password matches unencrypted
// payloads only.
func (s *Steg) Decode(src *PixelBuffer, password string) (string, error) {
	atomic.AddUint64(&s.readCounter, 1)

	if err := src.check(); err != nil {
		return "", err
	}

	primaryBits, transformID, err := s.readHeader(src)
	if err != nil {
		return "", err
	}

	codec, err := transform.ByID(transformID)
	if err != nil {
		return "", err
	}

	capacity := codec.Capacity(src.Width, src.Height)
	start := messageStart(codec)
	// A zero length field means the image carries no primary payload,
	// only decoys.
	if int(primaryBits) > capacity-start {
		return "", fmt.Errorf("%w: %d bits claimed, %d addressable", ErrInvalidLengthField, primaryBits, capacity-start)
	}

	if primaryBits > 0 {
		bits, err := codec.Extract(src.Pix, src.Width, src.Height, start, int(primaryBits))
		if err != nil {
			return "", fmt.Errorf("failed to extract primary frame: %w", err)
		}
		frame, _ := bitstream.BytesUntilSentinel(bits)
		text, matched, err := s.openFrame(frame, password)
		if err != nil {
			return "", err
		}
		if matched {
			return text, nil
		}
	}

	// Decoy walk: each frame starts a fixed gap after the end of the
	// previous one and announces its own end with the sentinel byte.
	maxFrameBits := s.config.MaxFrameBytes * 8
	pos := start + int(primaryBits) + payloadGap
	for pos+8 <= capacity {
		count := capacity - pos
		if count > maxFrameBits {
			count = maxFrameBits
		}
		bits, err := codec.Extract(src.Pix, src.Width, src.Height, pos, count)
		if err != nil {
			return "", fmt.Errorf("failed to extract decoy frame: %w", err)
		}
		frame, found := bitstream.BytesUntilSentinel(bits)
		if !found {
			break
		}
		text, matched, err := s.openFrame(frame, password)
		if err != nil {
			if errors.Is(err, bitstream.ErrMalformedFrame) {
				// Ran past the last embedded payload into carrier noise.
				break
			}
			return "", err
		}
		if matched {
			return text, nil
		}
		pos += (len(frame)+1)*8 + payloadGap
	}

	log.Debugf("No payload matched the supplied password")
	return "", ErrPayloadNotFound
}

// readHeader recovers the primary frame bit length and the transform
// identifier from the fixed spatial header.
func (s *Steg) readHeader(src *PixelBuffer) (uint32, uint8, error) {
	bits, err := transform.Spatial{}.Extract(src.Pix, src.Width, src.Height, 0, headerBits)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: image too small for header", ErrInvalidBuffer)
	}
	length := bitstream.Uint32(bits[:lengthFieldBits])
	var id uint8
	for _, bit := range bits[lengthFieldBits:headerBits] {
		id = id<<1 | bit
	}
	return length, id, nil
}

// openFrame parses one extracted frame and tries to unlock it with the
// supplied password. A parse failure or a wrong password on an
// authenticated cipher reports matched=false so the caller can keep
// walking; other failures abort the decode.
func (s *Steg) openFrame(frame []byte, password string) (string, bool, error) {
	meta, body, encrypted, err := bitstream.ParseFrame(frame)
	if err != nil {
		return "", false, err
	}

	if encrypted != (password != "") {
		return "", false, nil
	}

	if encrypted {
		cipher, err := crypt.ByName(meta.Cipher)
		if err != nil {
			return "", false, err
		}
		sealed, err := base64.StdEncoding.DecodeString(string(body))
		if err != nil {
			return "", false, fmt.Errorf("%w: body is not base64: %v", crypt.ErrDecryptionFailure, err)
		}
		body, err = cipher.Open(sealed, password)
		if err != nil {
			if errors.Is(err, crypt.ErrDecryptionFailure) {
				log.Debugf("Password rejected for %s payload (priority %d)", meta.Cipher, meta.Priority)
				return "", false, nil
			}
			return "", false, err
		}
	} else if bodyIsBinary(meta) {
		body, err = base64.StdEncoding.DecodeString(string(body))
		if err != nil {
			return "", false, fmt.Errorf("%w: body is not base64: %v", bitstream.ErrMalformedFrame, err)
		}
	}

	body, err = pipeline.Decompress(body, meta.Compression)
	if err != nil {
		if encrypted {
			// An unauthenticated cipher turns a wrong password into
			// garbage; a failed decompression is how that surfaces.
			log.Debugf("Decompression failed after decryption, treating as wrong password")
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to decompress payload: %w", err)
	}

	text, err := pipeline.DecodeText(body, meta.TextEncoding)
	if err != nil {
		return "", false, fmt.Errorf("failed to decode payload text: %w", err)
	}

	if meta.Expiry > 0 && s.config.Now().Unix() > meta.Expiry {
		return "", false, fmt.Errorf("%w: expired at %d", ErrMessageExpired, meta.Expiry)
	}

	return text, true, nil
}
