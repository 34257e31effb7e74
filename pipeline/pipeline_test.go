package pipeline

import (
	"bytes"
	"errors"
	"testing"
)

func TestZstdCompressDecompress(t *testing.T) {
	data := bytes.Repeat([]byte("compression test"), 50)

	compressed, err := CompressWithZstd(data)
	if err != nil {
		t.Fatalf("CompressWithZstd failed: %v", err)
	}

	decompressed, err := DecompressWithZstd(compressed)
	if err != nil {
		t.Fatalf("DecompressWithZstd failed: %v", err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatalf("expected decompressed data to match original")
	}
}

func TestLzmaCompressDecompress(t *testing.T) {
	data := bytes.Repeat([]byte("lzma round trip"), 50)

	compressed, err := CompressWithLzma(data)
	if err != nil {
		t.Fatalf("CompressWithLzma failed: %v", err)
	}

	decompressed, err := DecompressWithLzma(compressed)
	if err != nil {
		t.Fatalf("DecompressWithLzma failed: %v", err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatalf("expected decompressed data to match original")
	}
}

func TestDecompressWithInvalidData(t *testing.T) {
	if _, err := DecompressWithZstd([]byte("not zstd")); err == nil {
		t.Fatalf("expected error when decompressing invalid data")
	}
}

func TestCompressBySelector(t *testing.T) {
	data := []byte("selector test payload")

	for _, algo := range []string{"", CompressionZstd, CompressionLzma} {
		compressed, err := Compress(data, algo)
		if err != nil {
			t.Fatalf("Compress(%q) failed: %v", algo, err)
		}
		decompressed, err := Decompress(compressed, algo)
		if err != nil {
			t.Fatalf("Decompress(%q) failed: %v", algo, err)
		}
		if !bytes.Equal(decompressed, data) {
			t.Fatalf("%q: round trip mismatch", algo)
		}
	}

	if _, err := Compress(data, "brotli"); !errors.Is(err, ErrUnsupportedCompression) {
		t.Fatalf("expected ErrUnsupportedCompression, got %v", err)
	}
}

func TestTextEncodingRoundTrip(t *testing.T) {
	texts := []string{"", "plain ascii", "mixed ünïcodé ☺"}

	for _, encoding := range []string{"", EncodingUTF8, EncodingUTF16} {
		for _, text := range texts {
			encoded, err := EncodeText(text, encoding)
			if err != nil {
				t.Fatalf("EncodeText(%q, %q) failed: %v", text, encoding, err)
			}
			decoded, err := DecodeText(encoded, encoding)
			if err != nil {
				t.Fatalf("DecodeText(%q) failed: %v", encoding, err)
			}
			if decoded != text {
				t.Fatalf("%q: expected %q, got %q", encoding, text, decoded)
			}
		}
	}

	if _, err := EncodeText("x", "ebcdic"); !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestUTF16ContainsZeroBytes(t *testing.T) {
	encoded, err := EncodeText("HI", EncodingUTF16)
	if err != nil {
		t.Fatalf("EncodeText failed: %v", err)
	}
	if !bytes.Contains(encoded, []byte{0}) {
		t.Fatal("expected UTF-16 ASCII text to contain zero bytes")
	}
}
