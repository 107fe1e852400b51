package hooks

import (
	"errors"
	"fmt"
)

var (
	// ErrSealed is returned when registering after the registry was sealed.
	ErrSealed = errors.New("hook registry is sealed")
	// ErrNotInitialized is returned when an event is dispatched before init.
	ErrNotInitialized = errors.New("session not initialized: init must be dispatched first")
	// ErrPayloadMismatch is returned when a payload does not belong to the event.
	ErrPayloadMismatch = errors.New("payload does not match event")
	// ErrUnknownEvent is returned for event names the host does not emit.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrHandlerPanic marks a handler that panicked instead of returning an error.
	ErrHandlerPanic = errors.New("handler panicked")
)

// HookError reports a handler that failed during dispatch.
type HookError struct {
	// Owner is the plugin that registered the handler.
	Owner string
	Event Event
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("plugin %s failed during %s: %v", e.Owner, e.Event, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}
