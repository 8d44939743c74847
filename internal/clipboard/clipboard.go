// Package clipboard hands generated scripts to the system clipboard.
package clipboard

import (
	"errors"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
)

var (
	ErrNothingToCopy = errors.New("clipboard: nothing to copy")
	ErrUnsupported   = errors.New("clipboard: no clipboard utility available")
)

// Sink receives text for the clipboard.
type Sink interface {
	Write(text string) error
}

// SystemSink writes to the OS clipboard. Writes are serialized so that
// overlapping copy requests never interleave.
type SystemSink struct {
	mu     sync.Mutex
	write  func(string) error
	logger zerolog.Logger
}

// NewSystemSink returns a sink backed by github.com/atotto/clipboard.
func NewSystemSink(logger zerolog.Logger) *SystemSink {
	write := clipboard.WriteAll
	if clipboard.Unsupported {
		write = func(string) error { return ErrUnsupported }
	}
	return newSink(write, logger)
}

func newSink(write func(string) error, logger zerolog.Logger) *SystemSink {
	return &SystemSink{write: write, logger: logger}
}

// Write copies text, blocking while another write is in progress.
func (s *SystemSink) Write(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(text); err != nil {
		s.logger.Error().Err(err).Msg("clipboard write failed")
		return err
	}
	s.logger.Debug().Int("bytes", len(text)).Msg("copied to clipboard")
	return nil
}

// CopyAsync writes text from a background goroutine. The returned channel
// receives exactly one result and is then closed.
func CopyAsync(s Sink, text string) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		done <- s.Write(text)
	}()
	return done
}
