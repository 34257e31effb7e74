package transform

// Integer block frequency kernel for 8x8 blocks. The 1D transform is a
// three-stage cascade of the same lifting pairs used by the Haar kernel:
// stage one splits the 8 samples into 4 averages and 4 details, stage two
// splits the averages again, stage three reduces the remaining pair to a
// single DC term. Output ordering is coarse to fine:
//
//	index 0       DC
//	index 1       level-3 detail
//	index 2..3    level-2 details
//	index 4..7    level-1 details
//
// so index 0 is the DC term and index 5 sits in the mid band. Every stage
// is a lifting step, which makes the whole transform an exact bijection on
// integer vectors; the inverse is the reverse cascade and reproduces the
// input bit for bit even after individual coefficients are adjusted.

// fwdSpectrum8 applies the forward cascade to 8 values with stride.
func fwdSpectrum8(b *[64]int32, base, stride int) {
	var v [8]int32
	for i := 0; i < 8; i++ {
		v[i] = b[base+i*stride]
	}

	var s1, d1 [4]int32
	for i := 0; i < 4; i++ {
		d1[i] = v[2*i] - v[2*i+1]
		s1[i] = v[2*i+1] + (d1[i] >> 1)
	}

	var s2, d2 [2]int32
	for i := 0; i < 2; i++ {
		d2[i] = s1[2*i] - s1[2*i+1]
		s2[i] = s1[2*i+1] + (d2[i] >> 1)
	}

	d3 := s2[0] - s2[1]
	s3 := s2[1] + (d3 >> 1)

	out := [8]int32{s3, d3, d2[0], d2[1], d1[0], d1[1], d1[2], d1[3]}
	for i := 0; i < 8; i++ {
		b[base+i*stride] = out[i]
	}
}

// invSpectrum8 inverts fwdSpectrum8.
func invSpectrum8(b *[64]int32, base, stride int) {
	var in [8]int32
	for i := 0; i < 8; i++ {
		in[i] = b[base+i*stride]
	}

	s3, d3 := in[0], in[1]
	var s2 [2]int32
	s2[1] = s3 - (d3 >> 1)
	s2[0] = s2[1] + d3

	d2 := [2]int32{in[2], in[3]}
	var s1 [4]int32
	for i := 0; i < 2; i++ {
		s1[2*i+1] = s2[i] - (d2[i] >> 1)
		s1[2*i] = s1[2*i+1] + d2[i]
	}

	d1 := [4]int32{in[4], in[5], in[6], in[7]}
	var v [8]int32
	for i := 0; i < 4; i++ {
		v[2*i+1] = s1[i] - (d1[i] >> 1)
		v[2*i] = v[2*i+1] + d1[i]
	}

	for i := 0; i < 8; i++ {
		b[base+i*stride] = v[i]
	}
}

// fwdBlock8 applies the separable 2D frequency transform to an 8x8 block
// stored row-major: rows first, then columns.
func fwdBlock8(block *[64]int32) {
	for row := 0; row < 8; row++ {
		fwdSpectrum8(block, row*8, 1)
	}
	for col := 0; col < 8; col++ {
		fwdSpectrum8(block, col, 8)
	}
}

// invBlock8 inverts fwdBlock8.
func invBlock8(block *[64]int32) {
	for col := 0; col < 8; col++ {
		invSpectrum8(block, col, 8)
	}
	for row := 0; row < 8; row++ {
		invSpectrum8(block, row, 1)
	}
}
