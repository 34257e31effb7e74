// Package bitstream converts payload text to and from the bit sequences
// that carrier transforms embed into pixel data, and builds/parses the
// tagged message frames wrapped around each payload.
package bitstream

// Bits is a logical bit sequence, one 0/1 value per element, MSB-first
// within each source byte.
type Bits []uint8

// FromBytes expands b into its bit sequence, eight bits per byte,
// most significant bit first.
func FromBytes(b []byte) Bits {
	bits := make(Bits, 0, len(b)*8)
	for _, by := range b {
		for shift := 7; shift >= 0; shift-- {
			bits = append(bits, (by>>uint(shift))&1)
		}
	}
	return bits
}

// TextToBits converts s to its bit sequence, one 8-bit code per byte of s
// in order.
func TextToBits(s string) Bits {
	return FromBytes([]byte(s))
}

// ToBytes packs bits back into bytes, eight at a time. A trailing partial
// byte is discarded.
func ToBytes(bits Bits) []byte {
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var by byte
		for j := 0; j < 8; j++ {
			by = by<<1 | bits[i+j]
		}
		out = append(out, by)
	}
	return out
}

// BytesUntilSentinel packs bits into bytes and stops at the first all-zero
// byte, exclusive. The second return reports whether a sentinel byte was
// actually seen before the bits ran out.
func BytesUntilSentinel(bits Bits) ([]byte, bool) {
	var out []byte
	for i := 0; i+8 <= len(bits); i += 8 {
		var by byte
		for j := 0; j < 8; j++ {
			by = by<<1 | bits[i+j]
		}
		if by == 0 {
			return out, true
		}
		out = append(out, by)
	}
	return out, false
}

// BitsToText packs bits into a string, stopping at the first all-zero byte.
func BitsToText(bits Bits) string {
	b, _ := BytesUntilSentinel(bits)
	return string(b)
}

// AppendUint32 appends the 32 bits of v, big-endian, to bits.
func AppendUint32(bits Bits, v uint32) Bits {
	for shift := 31; shift >= 0; shift-- {
		bits = append(bits, uint8((v>>uint(shift))&1))
	}
	return bits
}

// Uint32 reads a 32-bit big-endian value from the first 32 elements of bits.
func Uint32(bits Bits) uint32 {
	var v uint32
	for i := 0; i < 32 && i < len(bits); i++ {
		v = v<<1 | uint32(bits[i])
	}
	return v
}
