package cryptipic

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

// zeroReader hands out zero bytes so sealed payloads are reproducible.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestEncodeDoesNotModifySource(t *testing.T) {
	steg := setupTestSteg(t)
	src := testImage(64, 64)
	before := append([]uint8(nil), src.Pix...)

	encoded, err := steg.Encode(src, &Payload{Text: "copy on write"}, nil, Options{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !bytes.Equal(src.Pix, before) {
		t.Error("Encode modified the source buffer")
	}
	if bytes.Equal(encoded.Pix, before) {
		t.Error("Encode returned an unmodified clone")
	}
}

func TestEncodeCapacityExceeded(t *testing.T) {
	steg := setupTestSteg(t)
	src := testImage(64, 64)
	before := append([]uint8(nil), src.Pix...)

	// 64x64 wavelet holds 192 slots; any framed message blows past the
	// safety fraction.
	_, err := steg.Encode(src, &Payload{Text: "too big"}, nil, Options{Transform: "wavelet"})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if !bytes.Equal(src.Pix, before) {
		t.Error("rejected Encode modified the source buffer")
	}
}

func TestEncodeSafetyFraction(t *testing.T) {
	steg := setupTestSteg(t)
	src := testImage(64, 64)

	// 64x64 spatial holds 12288 slots, 9216 after the safety fraction. A
	// message just under the line embeds; padding it past the line fails.
	fits := strings.Repeat("x", 1000)
	if _, err := steg.Encode(src, &Payload{Text: fits}, nil, Options{}); err != nil {
		t.Fatalf("message under the safety fraction rejected: %v", err)
	}

	overflows := strings.Repeat("x", 1200)
	_, err := steg.Encode(src, &Payload{Text: overflows}, nil, Options{})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestEncodeSafetyCountsHeaderAndGaps(t *testing.T) {
	steg := setupTestSteg(t)
	src := testImage(64, 64)

	// Eight 70-char decoys frame to ~8960 bits, under 3/4 of the 12288-slot
	// capacity on their own; the header region and seven 100-slot gaps push
	// the layout past the line, so the encode must be rejected.
	decoys := make([]Payload, 8)
	for i := range decoys {
		decoys[i] = Payload{Text: strings.Repeat("x", 70), Priority: i + 1}
	}

	_, err := steg.Encode(src, nil, decoys, Options{})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestEncodeRejectsUnknownSelectors(t *testing.T) {
	steg := setupTestSteg(t)
	src := testImage(64, 64)

	_, err := steg.Encode(src, &Payload{Text: "x"}, nil, Options{Transform: "fourier"})
	if !errors.Is(err, ErrUnsupportedTransform) {
		t.Errorf("expected ErrUnsupportedTransform, got %v", err)
	}

	_, err = steg.Encode(src, &Payload{Text: "x", Password: "p"}, nil, Options{Cipher: "rot13"})
	if !errors.Is(err, ErrUnsupportedCipher) {
		t.Errorf("expected ErrUnsupportedCipher, got %v", err)
	}
}

func TestEncodeRejectsBadBuffer(t *testing.T) {
	steg := setupTestSteg(t)
	bad := &PixelBuffer{Pix: make([]uint8, 10), Width: 64, Height: 64}

	if _, err := steg.Encode(bad, &Payload{Text: "x"}, nil, Options{}); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("Encode: expected ErrInvalidBuffer, got %v", err)
	}
	if _, err := steg.Decode(bad, ""); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("Decode: expected ErrInvalidBuffer, got %v", err)
	}

	// A well-formed buffer too small to hold the 36-bit header is a buffer
	// problem too, not a length-field problem.
	tiny := NewPixelBuffer(3, 3)
	if _, err := steg.Decode(tiny, ""); !errors.Is(err, ErrInvalidBuffer) {
		t.Errorf("Decode tiny image: expected ErrInvalidBuffer, got %v", err)
	}
}

func TestEncodeDeterministicWithSeededRand(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	encodeOnce := func() []uint8 {
		steg, err := Init(&Config{Logger: logger, Rand: zeroReader{}})
		if err != nil {
			t.Fatalf("Init failed: %v", err)
		}
		encoded, err := steg.Encode(testImage(64, 64),
			&Payload{Text: "same bits every time", Password: "pw"},
			nil, Options{})
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		return encoded.Pix
	}

	if !bytes.Equal(encodeOnce(), encodeOnce()) {
		t.Error("identical inputs and randomness produced different images")
	}
}

func TestHeaderSurvivesHighBitNoise(t *testing.T) {
	steg := setupTestSteg(t)

	encoded, err := steg.Encode(testImage(64, 64), &Payload{Text: "sturdy"}, nil, Options{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// The codecs only ever touch sample LSBs; flipping high bits anywhere,
	// header pixels included, must not disturb the payload.
	for i := 0; i < len(encoded.Pix); i += 17 {
		if i%4 == 3 {
			continue // leave alpha alone
		}
		encoded.Pix[i] ^= 0x80
	}

	text, err := steg.Decode(encoded, "")
	if err != nil {
		t.Fatalf("Decode after high-bit noise failed: %v", err)
	}
	if text != "sturdy" {
		t.Errorf("decoded %q, want %q", text, "sturdy")
	}
}

func TestDecodeForgedLengthField(t *testing.T) {
	steg := setupTestSteg(t)

	encoded, err := steg.Encode(testImage(64, 64), &Payload{Text: "x"}, nil, Options{})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// Force every length bit high: 2^32-1 bits can never fit.
	for i := 0; i < 32; i++ {
		sample := (i/3)*4 + i%3
		encoded.Pix[sample] |= 1
	}

	if _, err := steg.Decode(encoded, ""); !errors.Is(err, ErrInvalidLengthField) {
		t.Errorf("expected ErrInvalidLengthField, got %v", err)
	}
}

func TestDecodeBlankImage(t *testing.T) {
	steg := setupTestSteg(t)

	// An all-even image reads a zero length field and no decoy sentinel.
	_, err := steg.Decode(testImage(64, 64), "")
	if !errors.Is(err, ErrPayloadNotFound) {
		t.Errorf("expected ErrPayloadNotFound, got %v", err)
	}
}

func TestConcurrentEncodeDecode(t *testing.T) {
	steg := setupTestSteg(t)
	src := testImage(64, 64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			encoded, err := steg.Encode(src, &Payload{Text: "parallel"}, nil, Options{})
			if err != nil {
				t.Errorf("Encode failed: %v", err)
				return
			}
			text, err := steg.Decode(encoded, "")
			if err != nil {
				t.Errorf("Decode failed: %v", err)
				return
			}
			if text != "parallel" {
				t.Errorf("decoded %q, want %q", text, "parallel")
			}
		}()
	}
	wg.Wait()

	reads, writes := steg.Counters()
	if reads < 8 || writes < 8 {
		t.Errorf("counters did not record all operations: %d reads, %d writes", reads, writes)
	}
}
