package transform

// Integer Haar (S-transform) kernel for 8x8 blocks. Each 1D step is a
// lifting pair
//
//	d = a - b
//	s = b + (d >> 1)
//
// which is a bijection on integer pairs; its inverse recovers a and b
// exactly for any integer (s, d), including coefficients that were nudged
// after the forward pass. That property is what lets parity embedding
// survive the round trip through 8-bit pixel samples without drift.
//
// One 2D level (rows pass, then columns pass) splits the block into four
// 4x4 sub-bands:
//
//	[ LL | LH ]
//	[ HL | HH ]
//
// with LL in rows/cols 0..3, LH holding horizontal detail, HL vertical
// detail and HH diagonal detail.

// fwdHaarPairs applies the forward S-transform to 8 values with stride,
// writing 4 averages followed by 4 differences back in place.
func fwdHaarPairs(b *[64]int32, base, stride int) {
	var tmp [8]int32
	for i := 0; i < 4; i++ {
		a := b[base+2*i*stride]
		c := b[base+(2*i+1)*stride]
		d := a - c
		s := c + (d >> 1)
		tmp[i] = s
		tmp[4+i] = d
	}
	for i := 0; i < 8; i++ {
		b[base+i*stride] = tmp[i]
	}
}

// invHaarPairs inverts fwdHaarPairs.
func invHaarPairs(b *[64]int32, base, stride int) {
	var tmp [8]int32
	for i := 0; i < 4; i++ {
		s := b[base+i*stride]
		d := b[base+(4+i)*stride]
		c := s - (d >> 1)
		a := c + d
		tmp[2*i] = a
		tmp[2*i+1] = c
	}
	for i := 0; i < 8; i++ {
		b[base+i*stride] = tmp[i]
	}
}

// fwdHaar2D applies one 2D level of the integer Haar transform to an 8x8
// block stored row-major.
func fwdHaar2D(block *[64]int32) {
	for row := 0; row < 8; row++ {
		fwdHaarPairs(block, row*8, 1)
	}
	for col := 0; col < 8; col++ {
		fwdHaarPairs(block, col, 8)
	}
}

// invHaar2D inverts fwdHaar2D.
func invHaar2D(block *[64]int32) {
	for col := 0; col < 8; col++ {
		invHaarPairs(block, col, 8)
	}
	for row := 0; row < 8; row++ {
		invHaarPairs(block, row, 1)
	}
}
