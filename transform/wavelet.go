package transform

// Wavelet parity-encodes up to three bits per 8x8 block, one per
// high-frequency sub-band of the block's 2D Haar decomposition. One
// carrier slot is a (block, subband) pair with sub-bands cycling
// HL, LH, HH across slots; each sub-band reads its coefficient from its
// own color plane (HL from red, LH from green, HH from blue) so the three
// perturbations in a block stay independent. Alpha is carried through
// untouched.

import "github.com/sohamsharma21/cryptipic-45-sub001/bitstream"

// waveletSites lists, per sub-band cycle position, the color channel and
// the row-major coefficient index inside the transformed block:
// HL[1][1] -> (4+1, 1), LH[2][1] -> (2, 4+1), HH[1][2] -> (4+1, 4+2).
var waveletSites = [3]struct {
	channel int
	coeff   int
}{
	{0, (4+1)*8 + 1},       // HL on red
	{1, 2*8 + (4 + 1)},     // LH on green
	{2, (4+1)*8 + (4 + 2)}, // HH on blue
}

type Wavelet struct{}

func (Wavelet) Name() string { return NameWavelet }
func (Wavelet) ID() uint8    { return IDWavelet }

// Capacity is three bits per block.
func (Wavelet) Capacity(width, height int) int {
	return (width / 8) * (height / 8) * 3
}

func (w Wavelet) Embed(pix []byte, width, height int, bits bitstream.Bits, offset int) error {
	if err := checkRange(offset, len(bits), w.Capacity(width, height)); err != nil {
		return err
	}
	blocksX := width / 8

	var block [64]int32
	for i, bit := range bits {
		slot := offset + i
		site := waveletSites[slot%3]
		blockIdx := slot / 3
		blockX := blockIdx % blocksX
		blockY := blockIdx / blocksX

		loadBlock(pix, width, blockX, blockY, site.channel, &block)
		conditionBlock(&block)
		fwdHaar2D(&block)
		block[site.coeff] = setParity(block[site.coeff], bit)
		invHaar2D(&block)
		storeBlock(pix, width, blockX, blockY, site.channel, &block)
	}
	return nil
}

func (w Wavelet) Extract(pix []byte, width, height int, offset, count int) (bitstream.Bits, error) {
	if err := checkRange(offset, count, w.Capacity(width, height)); err != nil {
		return nil, err
	}
	blocksX := width / 8

	bits := make(bitstream.Bits, count)
	var block [64]int32
	for i := range bits {
		slot := offset + i
		site := waveletSites[slot%3]
		blockIdx := slot / 3
		blockX := blockIdx % blocksX
		blockY := blockIdx / blocksX

		loadBlock(pix, width, blockX, blockY, site.channel, &block)
		fwdHaar2D(&block)
		bits[i] = parityBit(block[site.coeff])
	}
	return bits, nil
}
