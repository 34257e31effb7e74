package bitstream

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// TagRaw prefixes frames whose body is plaintext.
	TagRaw = "RAW:"
	// TagEncrypted prefixes frames whose body is ciphertext.
	TagEncrypted = "ENC:"

	// metaSeparator splits the JSON metadata from the frame body.
	metaSeparator = "::"
)

// ErrMalformedFrame indicates extracted bytes do not parse as a frame.
var ErrMalformedFrame = errors.New("malformed frame")

// Metadata describes one embedded payload. It is serialized as JSON inside
// the frame, between the tag and the body.
type Metadata struct {
	Version      int    `json:"version"`
	Transform    string `json:"transform"`
	Cipher       string `json:"cipher,omitempty"`
	Compression  string `json:"compress,omitempty"`
	TextEncoding string `json:"textEncoding,omitempty"`
	Expiry       int64  `json:"expiry,omitempty"` // unix seconds, 0 = never
	IsDecoy      bool   `json:"isDecoy"`
	Priority     int    `json:"priority"`
}

// BuildFrame assembles the embeddable frame for one payload and returns it
// as a bit sequence terminated by an all-zero sentinel byte.
//
// Frame layout: ("ENC:"|"RAW:") + JSON(metadata) + "::" + body + 0x00.
// A body that itself contains a zero byte will truncate extraction at that
// byte; callers keep binary bodies out of frames by base64-encoding them.
func BuildFrame(meta Metadata, body []byte, encrypted bool) (Bits, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frame metadata: %w", err)
	}

	tag := TagRaw
	if encrypted {
		tag = TagEncrypted
	}

	frame := make([]byte, 0, len(tag)+len(metaJSON)+len(metaSeparator)+len(body)+1)
	frame = append(frame, tag...)
	frame = append(frame, metaJSON...)
	frame = append(frame, metaSeparator...)
	frame = append(frame, body...)
	frame = append(frame, 0)

	return FromBytes(frame), nil
}

// ParseFrame splits raw frame bytes (sentinel already stripped) into
// metadata and body, reporting whether the body is ciphertext.
func ParseFrame(raw []byte) (Metadata, []byte, bool, error) {
	var meta Metadata

	if len(raw) < len(TagRaw) {
		return meta, nil, false, fmt.Errorf("%w: too short (%d bytes)", ErrMalformedFrame, len(raw))
	}

	var encrypted bool
	switch string(raw[:4]) {
	case TagRaw:
		encrypted = false
	case TagEncrypted:
		encrypted = true
	default:
		return meta, nil, false, fmt.Errorf("%w: unknown tag %q", ErrMalformedFrame, raw[:4])
	}

	rest := raw[4:]
	sep := bytes.Index(rest, []byte(metaSeparator))
	if sep < 0 {
		return meta, nil, false, fmt.Errorf("%w: missing metadata separator", ErrMalformedFrame)
	}

	if err := json.Unmarshal(rest[:sep], &meta); err != nil {
		return meta, nil, false, fmt.Errorf("%w: bad metadata: %v", ErrMalformedFrame, err)
	}

	body := rest[sep+len(metaSeparator):]
	return meta, body, encrypted, nil
}
