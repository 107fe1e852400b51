package config

import (
	"sync"
	"sync/atomic"

	"git.home.luguber.info/inful/bookhooks/internal/logging"
)

// Store holds the configuration of one build session. The first Load resolves
// and freezes it; every later Load returns the frozen value, whatever its input.
type Store struct {
	once   sync.Once
	sink   logging.Sink
	cfg    ResolvedConfig
	loaded atomic.Bool
}

// NewStore creates an empty store that reports coercions to sink.
func NewStore(sink logging.Sink) *Store {
	return &Store{sink: logging.Safe(sink)}
}

// Load resolves raw on the first call for this session and returns the frozen config.
func (s *Store) Load(raw RawConfig) ResolvedConfig {
	s.once.Do(func() {
		s.cfg = Resolve(raw, s.sink)
		s.loaded.Store(true)
	})
	return s.cfg
}

// Config returns the frozen configuration and whether Load has run. Before the
// first Load it returns the defaults.
func (s *Store) Config() (ResolvedConfig, bool) {
	if !s.loaded.Load() {
		return Defaults(), false
	}
	return s.cfg, true
}
