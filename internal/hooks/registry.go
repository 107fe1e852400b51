// Package hooks dispatches host lifecycle events to plugin handlers.
package hooks

import (
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
	"git.home.luguber.info/inful/bookhooks/internal/logfields"
	"git.home.luguber.info/inful/bookhooks/internal/metrics"
)

// Handler receives an event payload. For pipeline events the returned payload
// feeds the next handler; for notifications it is ignored.
type Handler func(s *Session, in Payload) (Payload, error)

type registration struct {
	owner   string
	handler Handler
}

// Registry maps events to handlers in registration order. Handlers are
// registered while plugins are installed; Seal freezes the registry before the
// first build.
type Registry struct {
	handlers map[Event][]registration
	sealed   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Event][]registration)}
}

// Register appends h to the handlers of ev.
func (r *Registry) Register(ev Event, owner string, h Handler) error {
	if r.sealed {
		return fmt.Errorf("register %s handler for %s: %w", ev, owner, ErrSealed)
	}
	if !ev.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev)
	}
	if h == nil {
		return fmt.Errorf("cannot register nil %s handler for %s", ev, owner)
	}
	if owner == "" {
		return fmt.Errorf("%s handler owner is required", ev)
	}
	r.handlers[ev] = append(r.handlers[ev], registration{owner: owner, handler: h})
	return nil
}

// OnInit registers an init handler.
func (r *Registry) OnInit(owner string, fn func(*Session, InitPayload) error) error {
	return r.Register(EventInit, owner, func(s *Session, in Payload) (Payload, error) {
		p, ok := in.(InitPayload)
		if !ok {
			return nil, ErrPayloadMismatch
		}
		return in, fn(s, p)
	})
}

// OnPage registers a page transformation.
func (r *Registry) OnPage(owner string, fn func(*Session, Page) (Page, error)) error {
	return r.Register(EventPage, owner, func(s *Session, in Payload) (Payload, error) {
		p, ok := in.(PagePayload)
		if !ok {
			return nil, ErrPayloadMismatch
		}
		out, err := fn(s, p.Page)
		if err != nil {
			return nil, err
		}
		return PagePayload{Page: out}, nil
	})
}

// OnStart registers a start handler.
func (r *Registry) OnStart(owner string, fn func(*Session, StartPayload) error) error {
	return r.Register(EventStart, owner, func(s *Session, in Payload) (Payload, error) {
		p, ok := in.(StartPayload)
		if !ok {
			return nil, ErrPayloadMismatch
		}
		return in, fn(s, p)
	})
}

// OnNavigationChange registers a navigation-change handler.
func (r *Registry) OnNavigationChange(owner string, fn func(*Session, NavigationPayload) error) error {
	return r.Register(EventNavigationChange, owner, func(s *Session, in Payload) (Payload, error) {
		p, ok := in.(NavigationPayload)
		if !ok {
			return nil, ErrPayloadMismatch
		}
		return in, fn(s, p)
	})
}

// Seal prevents further registration.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.sealed }

// Owners lists the owners of ev's handlers in dispatch order.
func (r *Registry) Owners(ev Event) []string {
	regs := r.handlers[ev]
	out := make([]string, len(regs))
	for i, reg := range regs {
		out[i] = reg.owner
	}
	return out
}

// Count returns the number of handlers registered for ev.
func (r *Registry) Count(ev Event) int {
	return len(r.handlers[ev])
}

// Dispatch runs the handlers of the payload's event in registration order.
// The first failure stops the dispatch and is returned as a hook-category
// error wrapping a *HookError; there is no retry. Every event except init is
// rejected until init has been dispatched successfully.
func (r *Registry) Dispatch(s *Session, p Payload) (Payload, error) {
	if p == nil {
		return nil, fmt.Errorf("dispatch: %w: nil payload", ErrPayloadMismatch)
	}
	ev := p.Event()
	if ev != EventInit && !s.Initialized() {
		return nil, fmt.Errorf("dispatch %s: %w", ev, ErrNotInitialized)
	}

	current := p
	for _, reg := range r.handlers[ev] {
		start := time.Now()
		out, err := invoke(reg.handler, s, current)
		s.Recorder().ObserveHookDuration(string(ev), reg.owner, time.Since(start))

		if err == nil && ev.IsPipeline() && (out == nil || out.Event() != ev) {
			err = ErrPayloadMismatch
		}
		if err != nil {
			s.Recorder().IncHookResult(string(ev), metrics.ResultFailure)
			hookErr := &HookError{Owner: reg.owner, Event: ev, Err: err}
			s.Logger().Debug("Hook handler failed", logfields.Event(string(ev)), logfields.Plugin(reg.owner), logfields.Error(err))
			return nil, errors.WrapError(hookErr, errors.CategoryHook, "hook handler failed").
				WithContext("event", string(ev)).
				WithContext("plugin", reg.owner).
				Build()
		}
		if ev.IsPipeline() {
			current = out
		}
	}
	s.Recorder().IncHookResult(string(ev), metrics.ResultSuccess)

	if ev == EventInit {
		s.markInitialized()
		s.Logger().Debug("Session initialized", slog.Any("config", s.Config()))
	}
	return current, nil
}

// DispatchPage runs the page pipeline and returns the resulting page.
func (r *Registry) DispatchPage(s *Session, page Page) (Page, error) {
	out, err := r.Dispatch(s, PagePayload{Page: page})
	if err != nil {
		return Page{}, err
	}
	return out.(PagePayload).Page, nil
}

func invoke(h Handler, s *Session, in Payload) (out Payload, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()
	return h(s, in)
}
