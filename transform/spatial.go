package transform

import "github.com/sohamsharma21/cryptipic-45-sub001/bitstream"

// Spatial is the plain bit-plane substitution codec. One carrier slot is
// the least significant bit of one color sample; traversal is row-major
// over pixels, channel-major (R, G, B) within a pixel, alpha untouched.
type Spatial struct{}

func (Spatial) Name() string { return NameSpatial }
func (Spatial) ID() uint8    { return IDSpatial }

// Capacity is one bit per color sample.
func (Spatial) Capacity(width, height int) int {
	return width * height * 3
}

// sampleIndex maps a carrier slot to its byte offset in the RGBA buffer.
func sampleIndex(slot int) int {
	pixel := slot / 3
	channel := slot % 3
	return pixel*4 + channel
}

func (s Spatial) Embed(pix []byte, width, height int, bits bitstream.Bits, offset int) error {
	if err := checkRange(offset, len(bits), s.Capacity(width, height)); err != nil {
		return err
	}
	for i, bit := range bits {
		idx := sampleIndex(offset + i)
		pix[idx] = pix[idx]&^1 | bit
	}
	return nil
}

func (s Spatial) Extract(pix []byte, width, height int, offset, count int) (bitstream.Bits, error) {
	if err := checkRange(offset, count, s.Capacity(width, height)); err != nil {
		return nil, err
	}
	bits := make(bitstream.Bits, count)
	for i := range bits {
		bits[i] = pix[sampleIndex(offset+i)] & 1
	}
	return bits, nil
}

// MultiBit is the multi-bit spatial codec: each color sample carries two
// payload bits in its two lowest bit planes, higher plane first. Traversal
// order matches Spatial.
type MultiBit struct{}

func (MultiBit) Name() string { return NameMultiBit }
func (MultiBit) ID() uint8    { return IDMultiBit }

// Capacity is two bits per color sample.
func (MultiBit) Capacity(width, height int) int {
	return width * height * 6
}

func (m MultiBit) Embed(pix []byte, width, height int, bits bitstream.Bits, offset int) error {
	if err := checkRange(offset, len(bits), m.Capacity(width, height)); err != nil {
		return err
	}
	for i, bit := range bits {
		slot := offset + i
		idx := sampleIndex(slot / 2)
		plane := uint(1 - slot%2)
		pix[idx] = pix[idx]&^(1<<plane) | bit<<plane
	}
	return nil
}

func (m MultiBit) Extract(pix []byte, width, height int, offset, count int) (bitstream.Bits, error) {
	if err := checkRange(offset, count, m.Capacity(width, height)); err != nil {
		return nil, err
	}
	bits := make(bitstream.Bits, count)
	for i := range bits {
		slot := offset + i
		plane := uint(1 - slot%2)
		bits[i] = pix[sampleIndex(slot/2)] >> plane & 1
	}
	return bits, nil
}
