// Package pipeline holds the pure byte transformations applied to payload
// text before it is sealed and framed: optional compression and text
// encoding. Every transformation is recorded in the payload metadata and
// reversed in the opposite order after extraction.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz/lzma"
	"golang.org/x/text/encoding/unicode"
)

// Canonical algorithm names carried in payload metadata.
const (
	CompressionZstd = "zstd"
	CompressionLzma = "lzma"

	EncodingUTF8  = "utf-8"
	EncodingUTF16 = "utf-16"
)

var (
	// ErrUnsupportedCompression indicates an unknown compression name.
	ErrUnsupportedCompression = errors.New("unsupported compression algorithm")
	// ErrUnsupportedEncoding indicates an unknown text encoding name.
	ErrUnsupportedEncoding = errors.New("unsupported text encoding")
)

// Compress compresses data with the named algorithm. An empty name is the
// identity.
func Compress(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "":
		return data, nil
	case CompressionZstd:
		return CompressWithZstd(data)
	case CompressionLzma:
		return CompressWithLzma(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, algorithm)
	}
}

// Decompress reverses Compress.
func Decompress(data []byte, algorithm string) ([]byte, error) {
	switch algorithm {
	case "":
		return data, nil
	case CompressionZstd:
		return DecompressWithZstd(data)
	case CompressionLzma:
		return DecompressWithLzma(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, algorithm)
	}
}

// CompressWithZstd compresses data using the Zstandard algorithm.
func CompressWithZstd(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err = enc.Write(data); err != nil {
		return nil, err
	}
	if err = enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressWithZstd decompresses Zstandard-compressed data.
func DecompressWithZstd(data []byte) ([]byte, error) {
	reader := bytes.NewReader(data)
	dec, err := zstd.NewReader(reader)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, dec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompressWithLzma compresses data using the LZMA algorithm.
func CompressWithLzma(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err = w.Write(data); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressWithLzma decompresses LZMA-compressed data.
func DecompressWithLzma(data []byte) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err = io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeText converts s to bytes in the named encoding. UTF-8 is the
// identity; UTF-16 produces little-endian bytes with a BOM.
func EncodeText(s string, encoding string) ([]byte, error) {
	switch encoding {
	case "", EncodingUTF8:
		return []byte(s), nil
	case EncodingUTF16:
		enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		out, err := enc.Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("failed to encode UTF-16: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}

// DecodeText reverses EncodeText.
func DecodeText(b []byte, encoding string) (string, error) {
	switch encoding {
	case "", EncodingUTF8:
		return string(b), nil
	case EncodingUTF16:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(b)
		if err != nil {
			return "", fmt.Errorf("failed to decode UTF-16: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, encoding)
	}
}
