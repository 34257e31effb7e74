// Package cryptipic hides independent text payloads inside the pixel
// samples of an RGBA image. Each payload is framed with tagged JSON
// metadata, optionally sealed under its own password, converted to a bit
// sequence and embedded through a selectable carrier transform (spatial
// bit planes, block frequency coefficients or wavelet sub-bands). A
// primary payload and any number of decoys share one image at fixed,
// non-overlapping bit offsets; each is recoverable only with its own
// password.
package cryptipic

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sohamsharma21/cryptipic-45-sub001/transform"
)

var log *logrus.Logger

// Steg is the orchestrator handle. All operations are pure transformations
// over explicitly passed buffers; the handle only carries configuration
// and operation counters, so one instance is safe for concurrent use.
type Steg struct {
	config       Config
	readCounter  uint64
	writeCounter uint64
}

// Init validates the configuration and returns an orchestrator handle.
func Init(config *Config) (*Steg, error) {
	if config == nil {
		config = &Config{}
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	log = config.Logger

	if err := config.checkConfig(); err != nil {
		return nil, fmt.Errorf("error checking config for Steg: %w", err)
	}

	return &Steg{config: *config}, nil
}

// Capacity reports the maximum number of carrier bits an image of the
// given dimensions provides under the named transform, before the safety
// fraction is applied.
func (s *Steg) Capacity(width, height int, transformName string) (int, error) {
	codec, err := transform.ByName(transformName)
	if err != nil {
		return 0, err
	}
	return codec.Capacity(width, height), nil
}
