package cryptipic

import (
	"encoding/base64"
	"fmt"
	"sync/atomic"

	"github.com/sohamsharma21/cryptipic-45-sub001/bitstream"
	"github.com/sohamsharma21/cryptipic-45-sub001/crypt"
	"github.com/sohamsharma21/cryptipic-45-sub001/pipeline"
	"github.com/sohamsharma21/cryptipic-45-sub001/transform"
)

const (
	frameVersion = 1

	// Global header layout: a 32-bit big-endian primary frame bit length
	// followed by a 4-bit transform identifier, always embedded one bit
	// per color sample regardless of the selected transform.
	lengthFieldBits    = 32
	transformFieldBits = 4
	headerBits         = lengthFieldBits + transformFieldBits

	// payloadGap separates consecutive payloads in carrier slots.
	payloadGap = 100

	// Encode rejects payloads beyond this fraction of the raw capacity.
	safetyNum, safetyDen = 3, 4
)

// messageStart returns the first carrier slot a payload may use. The
// header owns the LSBs of the first 36 color samples; the multi-bit
// spatial codec packs two slots into each sample, so its payloads start
// one slot range further out. Block codecs skip whole blocks, which keeps
// them clear of the header pixels by construction.
func messageStart(codec transform.Codec) int {
	if codec.ID() == transform.IDMultiBit {
		return headerBits * 2
	}
	return headerBits
}

// Encode frames the primary payload and every non-empty decoy, validates
// capacity, and embeds all frames into a clone of src via the transform
// selected in opts. The source buffer is never modified; every rejection
// happens before the clone is touched.
func (s *Steg) Encode(src *PixelBuffer, primary *Payload, decoys []Payload, opts Options) (*PixelBuffer, error) {
	atomic.AddUint64(&s.writeCounter, 1)

	if err := src.check(); err != nil {
		return nil, err
	}

	codec, err := transform.ByName(opts.Transform)
	if err != nil {
		return nil, err
	}
	if _, err := crypt.ByName(opts.Cipher); err != nil {
		return nil, err
	}

	// Frame every payload before touching pixel data.
	var frames []bitstream.Bits
	primaryFrameBits := 0
	if primary != nil {
		frame, err := s.buildFrame(*primary, false, 0, codec.Name(), opts)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
		primaryFrameBits = len(frame)
	}
	for _, decoy := range decoys {
		if decoy.Text == "" {
			continue
		}
		frame, err := s.buildFrame(decoy, true, decoy.Priority, codec.Name(), opts)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	// Lay out non-overlapping slot offsets. An absent primary occupies a
	// zero-length region; decoys still start one gap after it, which is
	// where the decoder resumes walking.
	offsets := make([]int, len(frames))
	next := messageStart(codec)
	if primary == nil {
		next += payloadGap
	}
	usedSlots := next
	for i, frame := range frames {
		offsets[i] = next
		next += len(frame) + payloadGap
		usedSlots = offsets[i] + len(frame)
	}

	// The safety check covers everything the layout consumes: the header
	// region, the frame bits and the inter-payload gaps.
	capacity := codec.Capacity(src.Width, src.Height)
	if usedSlots*safetyDen > capacity*safetyNum {
		return nil, fmt.Errorf("%w: layout uses %d slots, more than %d/%d of %d-bit capacity",
			ErrCapacityExceeded, usedSlots, safetyNum, safetyDen, capacity)
	}

	dst := src.Clone()

	if err := s.writeHeader(dst, uint32(primaryFrameBits), codec.ID()); err != nil {
		return nil, fmt.Errorf("failed to embed global header: %w", err)
	}
	for i, frame := range frames {
		if err := codec.Embed(dst.Pix, dst.Width, dst.Height, frame, offsets[i]); err != nil {
			return nil, fmt.Errorf("failed to embed payload %d: %w", i, err)
		}
		log.Debugf("Embedded payload %d: %d bits at slot %d via %s", i, len(frame), offsets[i], codec.Name())
	}

	return dst, nil
}

// buildFrame runs one payload through the byte pipeline (text encoding,
// compression, sealing) and frames the result.
func (s *Steg) buildFrame(p Payload, isDecoy bool, priority int, transformName string, opts Options) (bitstream.Bits, error) {
	body, err := pipeline.EncodeText(p.Text, opts.TextEncoding)
	if err != nil {
		return nil, err
	}
	body, err = pipeline.Compress(body, opts.Compression)
	if err != nil {
		return nil, err
	}

	meta := bitstream.Metadata{
		Version:      frameVersion,
		Transform:    transformName,
		Compression:  opts.Compression,
		TextEncoding: opts.TextEncoding,
		IsDecoy:      isDecoy,
		Priority:     priority,
	}
	if !opts.Expiry.IsZero() {
		meta.Expiry = opts.Expiry.Unix()
	}

	encrypted := p.Password != ""
	if encrypted {
		cipher, err := crypt.ByName(opts.Cipher)
		if err != nil {
			return nil, err
		}
		sealed, err := cipher.Seal(body, p.Password, s.config.Rand)
		if err != nil {
			return nil, fmt.Errorf("failed to seal payload: %w", err)
		}
		meta.Cipher = cipher.Name()
		body = []byte(base64.StdEncoding.EncodeToString(sealed))
	} else if bodyIsBinary(meta) {
		// Compressed or UTF-16 bodies contain zero bytes that would trip
		// the sentinel; base64 keeps them out of the frame text.
		body = []byte(base64.StdEncoding.EncodeToString(body))
	}

	return bitstream.BuildFrame(meta, body, encrypted)
}

// bodyIsBinary reports whether the frame body went through a
// transformation that can produce zero bytes, and is therefore base64
// encoded inside the frame. Both sides of the codec derive this from the
// metadata alone.
func bodyIsBinary(meta bitstream.Metadata) bool {
	return meta.Compression != "" || meta.TextEncoding == pipeline.EncodingUTF16
}

// writeHeader embeds the global header into the first 36 sample LSBs,
// channel-major, independent of the selected transform.
func (s *Steg) writeHeader(dst *PixelBuffer, primaryBits uint32, transformID uint8) error {
	bits := bitstream.AppendUint32(nil, primaryBits)
	for shift := transformFieldBits - 1; shift >= 0; shift-- {
		bits = append(bits, transformID>>uint(shift)&1)
	}
	return transform.Spatial{}.Embed(dst.Pix, dst.Width, dst.Height, bits, 0)
}
