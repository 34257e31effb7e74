// Package transform implements the carrier transforms that move payload
// bits into and out of RGBA pixel data: plain and multi-bit LSB
// substitution in the spatial domain, and parity encoding of block
// transform coefficients in the frequency and wavelet domains.
//
// All pixel buffers are row-major RGBA, one byte per sample. Embedding
// mutates the buffer it is given; callers that need copy-on-write clone
// first.
package transform

import (
	"errors"
	"fmt"

	"github.com/sohamsharma21/cryptipic-45-sub001/bitstream"
)

// Wire identifiers carried in the 4-bit transform field of the global
// header.
const (
	IDSpatial   uint8 = 0
	IDFrequency uint8 = 1
	IDWavelet   uint8 = 2
	IDMultiBit  uint8 = 3
)

// Canonical transform names used in options and payload metadata.
const (
	NameSpatial   = "spatial"
	NameFrequency = "frequency"
	NameWavelet   = "wavelet"
	NameMultiBit  = "multibit"
)

var (
	// ErrUnsupportedTransform indicates an unknown transform name or id.
	ErrUnsupportedTransform = errors.New("unsupported transform")
	// ErrRangeExceeded indicates a slot range beyond the carrier capacity.
	ErrRangeExceeded = errors.New("carrier slot range exceeds capacity")
)

// Codec is the common contract of the transform family. Embed and Extract
// address carrier slots: one slot carries one bit. What a slot maps to is
// codec-specific (a color sample LSB, a bit plane of a sample, or a block
// coefficient parity).
type Codec interface {
	// Name returns the canonical transform name.
	Name() string
	// ID returns the 4-bit wire identifier.
	ID() uint8
	// Capacity returns the number of carrier slots an image of the given
	// dimensions provides.
	Capacity(width, height int) int
	// Embed writes bits into consecutive carrier slots starting at offset.
	Embed(pix []byte, width, height int, bits bitstream.Bits, offset int) error
	// Extract reads count bits from consecutive carrier slots starting at
	// offset.
	Extract(pix []byte, width, height int, offset, count int) (bitstream.Bits, error)
}

// ByName resolves a transform by its canonical name. An empty name selects
// the spatial transform.
func ByName(name string) (Codec, error) {
	switch name {
	case NameSpatial, "":
		return &Spatial{}, nil
	case NameFrequency:
		return &Frequency{}, nil
	case NameWavelet:
		return &Wavelet{}, nil
	case NameMultiBit:
		return &MultiBit{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTransform, name)
	}
}

// ByID resolves a transform by its 4-bit wire identifier.
func ByID(id uint8) (Codec, error) {
	switch id {
	case IDSpatial:
		return &Spatial{}, nil
	case IDFrequency:
		return &Frequency{}, nil
	case IDWavelet:
		return &Wavelet{}, nil
	case IDMultiBit:
		return &MultiBit{}, nil
	default:
		return nil, fmt.Errorf("%w: id %d", ErrUnsupportedTransform, id)
	}
}

func checkRange(offset, count, capacity int) error {
	if offset < 0 || count < 0 || offset+count > capacity {
		return fmt.Errorf("%w: slots [%d, %d) of %d", ErrRangeExceeded, offset, offset+count, capacity)
	}
	return nil
}

// clampMargin is how far conditionBlock pulls samples off the 0 and 255
// rails before a forward block transform. Nudging one coefficient moves
// any sample of the inverse by at most 3, so a conditioned block can
// never saturate on the way back and the embedded parity survives.
const clampMargin = 4

// conditionBlock clamps block samples into
// [clampMargin, 255-clampMargin].
func conditionBlock(block *[64]int32) {
	for i, v := range block {
		if v < clampMargin {
			block[i] = clampMargin
		} else if v > 255-clampMargin {
			block[i] = 255 - clampMargin
		}
	}
}

func clampSample(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// setParity forces the parity of coefficient c to bit by nudging it one
// step toward zero (or up from a non-positive value) when the parity is
// wrong. The coefficient is already an integer, so no rounding is needed.
func setParity(c int32, bit uint8) int32 {
	if uint8(c&1) == bit {
		return c
	}
	if c > 0 {
		return c - 1
	}
	return c + 1
}

// parityBit reads the bit carried in the parity of c. Two's complement
// makes c&1 correct for negative coefficients as well.
func parityBit(c int32) uint8 {
	return uint8(c & 1)
}
