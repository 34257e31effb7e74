package transform

import "github.com/sohamsharma21/cryptipic-45-sub001/bitstream"

// midBandCoeff is the fixed coefficient position carrying the payload bit
// in a transformed block. Index 0 is the DC term and is never touched.
const midBandCoeff = 5

// Frequency parity-encodes one bit per 8x8 block per color channel in a
// mid-band coefficient of the block frequency transform. One carrier slot
// is a (block, channel) pair: blocks traverse row-major, channels R, G, B
// within a block. Partial blocks at the right and bottom edges are unused.
type Frequency struct{}

func (Frequency) Name() string { return NameFrequency }
func (Frequency) ID() uint8    { return IDFrequency }

// Capacity is one bit per block per color channel.
func (Frequency) Capacity(width, height int) int {
	return (width / 8) * (height / 8) * 3
}

// conservativeCapacity is the one-bit-per-block ceiling enforced by the
// whole-image contract, deliberately ignoring the per-channel slots.
func (Frequency) conservativeCapacity(width, height int) int {
	return (width / 8) * (height / 8)
}

// loadBlock copies the 64 samples of one channel of an 8x8 block into a
// flat coefficient array.
func loadBlock(pix []byte, width, blockX, blockY, channel int, block *[64]int32) {
	for y := 0; y < 8; y++ {
		row := (blockY*8 + y) * width
		for x := 0; x < 8; x++ {
			block[y*8+x] = int32(pix[(row+blockX*8+x)*4+channel])
		}
	}
}

// storeBlock writes a coefficient array back as one channel of an 8x8
// block, saturating to the sample range. Conditioned blocks stay inside
// the range, so the clamp never alters an embedded bit.
func storeBlock(pix []byte, width, blockX, blockY, channel int, block *[64]int32) {
	for y := 0; y < 8; y++ {
		row := (blockY*8 + y) * width
		for x := 0; x < 8; x++ {
			pix[(row+blockX*8+x)*4+channel] = clampSample(block[y*8+x])
		}
	}
}

func (f Frequency) Embed(pix []byte, width, height int, bits bitstream.Bits, offset int) error {
	if err := checkRange(offset, len(bits), f.Capacity(width, height)); err != nil {
		return err
	}
	blocksX := width / 8

	var block [64]int32
	for i, bit := range bits {
		slot := offset + i
		blockIdx := slot / 3
		channel := slot % 3
		blockX := blockIdx % blocksX
		blockY := blockIdx / blocksX

		loadBlock(pix, width, blockX, blockY, channel, &block)
		conditionBlock(&block)
		fwdBlock8(&block)
		block[midBandCoeff] = setParity(block[midBandCoeff], bit)
		invBlock8(&block)
		storeBlock(pix, width, blockX, blockY, channel, &block)
	}
	return nil
}

func (f Frequency) Extract(pix []byte, width, height int, offset, count int) (bitstream.Bits, error) {
	if err := checkRange(offset, count, f.Capacity(width, height)); err != nil {
		return nil, err
	}
	blocksX := width / 8

	bits := make(bitstream.Bits, count)
	var block [64]int32
	for i := range bits {
		slot := offset + i
		blockIdx := slot / 3
		channel := slot % 3
		blockX := blockIdx % blocksX
		blockY := blockIdx / blocksX

		loadBlock(pix, width, blockX, blockY, channel, &block)
		fwdBlock8(&block)
		bits[i] = parityBit(block[midBandCoeff])
	}
	return bits, nil
}
