package cryptipic

import (
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Counters returns the number of decode and encode calls served so far.
func (s *Steg) Counters() (reads, writes uint64) {
	return atomic.LoadUint64(&s.readCounter), atomic.LoadUint64(&s.writeCounter)
}

// StartOperationCounter logs encode/decode operations per second until
// stop is closed.
func (s *Steg) StartOperationCounter(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				readOps := atomic.SwapUint64(&s.readCounter, 0)
				writeOps := atomic.SwapUint64(&s.writeCounter, 0)
				s.config.Logger.WithFields(logrus.Fields{
					"decode_ops": readOps,
					"encode_ops": writeOps,
				}).Info("Codec operations per second")
			}
		}
	}()
}
