package hooks

import (
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
	"git.home.luguber.info/inful/bookhooks/internal/logging"
	"git.home.luguber.info/inful/bookhooks/internal/metrics"
)

// Session is the state of one build. The host creates it before dispatching
// init and passes it to every handler; nothing outlives it.
type Session struct {
	id          string
	namespaces  []string
	store       *config.Store
	logger      *slog.Logger
	recorder    metrics.Recorder
	initialized atomic.Bool
}

// NewSession starts a session with a fresh build ID. namespaces lists the
// plugin configuration sections in the order they are merged.
func NewSession(namespaces []string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	logger = logger.With(logfields.BuildID(id))
	return &Session{
		id:         id,
		namespaces: append([]string(nil), namespaces...),
		store:      config.NewStore(logging.NewSlogSink(logger, logfields.KeyPlugin, "config")),
		logger:     logger,
		recorder:   metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder and returns the session.
func (s *Session) WithRecorder(r metrics.Recorder) *Session {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	s.recorder = r
	return s
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) Logger() *slog.Logger       { return s.logger }
func (s *Session) Recorder() metrics.Recorder { return s.recorder }

// Namespaces returns the configuration namespaces in merge order.
func (s *Session) Namespaces() []string {
	return append([]string(nil), s.namespaces...)
}

// Store is the session's configuration store.
func (s *Session) Store() *config.Store { return s.store }

// Config returns the session configuration. Before init it returns the defaults.
func (s *Session) Config() config.ResolvedConfig {
	cfg, _ := s.store.Config()
	return cfg
}

// Initialized reports whether init has been dispatched successfully.
func (s *Session) Initialized() bool {
	return s.initialized.Load()
}

// Diagnostics returns the printLog sink for a plugin.
func (s *Session) Diagnostics(owner string) logging.Sink {
	return logging.Safe(logging.NewSlogSink(s.logger, logfields.KeyPlugin, owner))
}

func (s *Session) markInitialized() {
	s.initialized.Store(true)
}

// LoadConfig resolves the session configuration from an init payload. Only
// the first call in a session resolves; later calls return the frozen value.
func (s *Session) LoadConfig(p InitPayload) config.ResolvedConfig {
	if p.Manifest != nil {
		for _, w := range p.Manifest.Warnings {
			s.logger.Warn("Ignoring manifest entry", logfields.Path(p.Manifest.Path), slog.String("reason", w))
		}
	}
	return s.store.Load(config.Collect(p.Manifest, s.namespaces, p.Env))
}
