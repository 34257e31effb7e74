package bitstream

import (
	"bytes"
	"testing"
)

func TestFromBytesMSBFirst(t *testing.T) {
	bits := FromBytes([]byte{0xA5})
	want := Bits{1, 0, 1, 0, 0, 1, 0, 1}
	if len(bits) != 8 {
		t.Fatalf("expected 8 bits, got %d", len(bits))
	}
	for i := range want {
		if bits[i] != want[i] {
			t.Fatalf("bit %d: expected %d, got %d", i, want[i], bits[i])
		}
	}
}

func TestToBytesRoundTrip(t *testing.T) {
	data := []byte("steganography test payload")
	got := ToBytes(FromBytes(data))
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: %q != %q", got, data)
	}
}

func TestToBytesDiscardsPartialByte(t *testing.T) {
	bits := append(FromBytes([]byte{0xFF}), 1, 0, 1)
	got := ToBytes(bits)
	if !bytes.Equal(got, []byte{0xFF}) {
		t.Fatalf("expected partial byte discarded, got %v", got)
	}
}

func TestBytesUntilSentinel(t *testing.T) {
	bits := FromBytes([]byte{'h', 'i', 0, 'x'})
	got, found := BytesUntilSentinel(bits)
	if !found {
		t.Fatal("expected sentinel to be found")
	}
	if !bytes.Equal(got, []byte("hi")) {
		t.Fatalf("expected %q before sentinel, got %q", "hi", got)
	}
}

func TestBytesUntilSentinelMissing(t *testing.T) {
	bits := FromBytes([]byte("no sentinel here"))
	_, found := BytesUntilSentinel(bits)
	if found {
		t.Fatal("did not expect a sentinel")
	}
}

func TestBitsToTextStopsAtSentinel(t *testing.T) {
	bits := TextToBits("HELLO")
	bits = append(bits, make(Bits, 8)...) // sentinel
	bits = append(bits, TextToBits("trailing")...)
	if got := BitsToText(bits); got != "HELLO" {
		t.Fatalf("expected %q, got %q", "HELLO", got)
	}
}

func TestUint32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 36, 0xDEADBEEF, 1<<32 - 1} {
		bits := AppendUint32(nil, v)
		if len(bits) != 32 {
			t.Fatalf("expected 32 bits, got %d", len(bits))
		}
		if got := Uint32(bits); got != v {
			t.Fatalf("expected %d, got %d", v, got)
		}
	}
}
