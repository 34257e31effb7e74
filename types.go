package cryptipic

import (
	"fmt"
	"time"
)

// PixelBuffer is an owned, contiguous RGBA sample array, row-major, four
// bytes per pixel. Encode never mutates the buffer it is given; it returns
// a modified clone.
type PixelBuffer struct {
	Pix    []byte
	Width  int
	Height int
}

// NewPixelBuffer allocates a zeroed buffer for the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Pix:    make([]byte, width*height*4),
		Width:  width,
		Height: height,
	}
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]byte, len(p.Pix))
	copy(pix, p.Pix)
	return &PixelBuffer{Pix: pix, Width: p.Width, Height: p.Height}
}

// check validates the buffer invariant length == width*height*4.
func (p *PixelBuffer) check() error {
	if p == nil || p.Pix == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if len(p.Pix) != p.Width*p.Height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidBuffer, len(p.Pix), p.Width, p.Height)
	}
	return nil
}

// Payload is one independent text message to hide. The primary payload is
// implicitly priority 0; decoy priorities are an embedding order hint from
// the caller, not a security boundary.
type Payload struct {
	Text     string
	Password string
	Priority int
}

// Options selects how payloads are transformed and protected for one
// encode call. Zero values mean: spatial transform, default cipher when a
// password is set, no compression, UTF-8 text, no expiry.
type Options struct {
	Transform    string
	Cipher       string
	Compression  string
	TextEncoding string
	Expiry       time.Time
}
