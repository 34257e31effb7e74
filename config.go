package cryptipic

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultMaxFrameBytes bounds how far the decoder scans for a sentinel
// when walking decoy frames whose length is not recorded anywhere.
const DefaultMaxFrameBytes = 64 * 1024

// Config carries the injectable collaborators of the orchestrator. The
// zero value is usable: crypto/rand for randomness, time.Now for the
// clock, a fresh logrus logger and the default frame scan bound.
type Config struct {
	// Logger receives debug and error output.
	Logger *logrus.Logger
	// Rand supplies salt and nonce material to payload ciphers. Explicit
	// injection keeps the ciphers testable with deterministic seeds.
	Rand io.Reader
	// Now supplies the clock used for payload expiry checks.
	Now func() time.Time
	// MaxFrameBytes caps the bytes extracted per frame during decoy
	// scanning. 0 selects DefaultMaxFrameBytes.
	MaxFrameBytes int
}

// checkConfig fills defaults and rejects unusable values.
func (c *Config) checkConfig() error {
	if c.Rand == nil {
		c.Rand = rand.Reader
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.MaxFrameBytes == 0 {
		c.MaxFrameBytes = DefaultMaxFrameBytes
	}
	if c.MaxFrameBytes < 16 {
		return fmt.Errorf("MaxFrameBytes %d is too small to hold a frame", c.MaxFrameBytes)
	}
	return nil
}
