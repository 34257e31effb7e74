package transform

import (
	"errors"
	"fmt"

	"github.com/sohamsharma21/cryptipic-45-sub001/bitstream"
)

// ErrInvalidLength indicates a whole-image length header that cannot be
// satisfied by the carrier.
var ErrInvalidLength = errors.New("invalid embedded length field")

// lengthHeaderBits is the size of the bit-count header the whole-image
// contract places in the first carrier slots.
const lengthHeaderBits = 32

// EncodeImage embeds a self-describing message into the image: a 32-bit
// big-endian count of message bits in carrier slots 0..31, then the
// message bits from slot 32 on.
//
// For the frequency codec the capacity check is the deliberately
// conservative one-bit-per-block bound; every other codec is checked
// against its real slot capacity.
func EncodeImage(c Codec, pix []byte, width, height int, bits bitstream.Bits) error {
	bound := c.Capacity(width, height)
	if f, ok := c.(*Frequency); ok {
		bound = f.conservativeCapacity(width, height)
	}
	if len(bits) > bound {
		return fmt.Errorf("%w: %d message bits exceed %d-bit bound", ErrRangeExceeded, len(bits), bound)
	}

	header := bitstream.AppendUint32(nil, uint32(len(bits)))
	if err := c.Embed(pix, width, height, header, 0); err != nil {
		return err
	}
	return c.Embed(pix, width, height, bits, lengthHeaderBits)
}

// DecodeImage recovers a message embedded by EncodeImage. The length
// header and the message are read in two separate passes: the first pass
// consumes exactly 32 bits, the second starts at the first slot the header
// did not use.
func DecodeImage(c Codec, pix []byte, width, height int) (bitstream.Bits, error) {
	header, err := c.Extract(pix, width, height, 0, lengthHeaderBits)
	if err != nil {
		return nil, err
	}
	length := int(bitstream.Uint32(header))
	if length <= 0 || lengthHeaderBits+length > c.Capacity(width, height) {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidLength, length)
	}
	return c.Extract(pix, width, height, lengthHeaderBits, length)
}
