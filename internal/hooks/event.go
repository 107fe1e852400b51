package hooks

import (
	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/nav"
)

// Event names a host lifecycle event.
type Event string

const (
	// EventInit fires once, before anything else in a session.
	EventInit Event = "init"
	// EventPage fires once per content page; its handlers form a pipeline.
	EventPage Event = "page"
	// EventStart fires when the navigation panel is first rendered.
	EventStart Event = "start"
	// EventNavigationChange fires each time the panel is shown for another page.
	EventNavigationChange Event = "navigation-change"
)

// Events lists every event in lifecycle order.
var Events = []Event{EventInit, EventStart, EventPage, EventNavigationChange}

// IsValid returns true if the event is recognised.
func (e Event) IsValid() bool {
	switch e {
	case EventInit, EventPage, EventStart, EventNavigationChange:
		return true
	default:
		return false
	}
}

// IsPipeline reports whether each handler receives the previous handler's output.
func (e Event) IsPipeline() bool {
	return e == EventPage
}

func (e Event) String() string { return string(e) }

// Page is one rendered content page. The page handler owns it for the duration
// of the call and hands back the page to use from then on.
type Page struct {
	// Path is the source path relative to the book root, e.g. "setup/linux.md".
	Path string
	// Title is the chapter title.
	Title string
	// Content is the rendered HTML body.
	Content []byte
}

// Payload is the argument of one event. The set of implementations is closed:
// one struct per event.
type Payload interface {
	Event() Event
	payload()
}

// InitPayload carries the configuration sources of the session.
type InitPayload struct {
	Manifest *config.Manifest
	// Env holds configuration overrides taken from the environment.
	Env config.RawConfig
}

// PagePayload carries the page being rendered.
type PagePayload struct {
	Page Page
}

// StartPayload carries the book's global configuration and the panel.
type StartPayload struct {
	Global map[string]any
	Panel  *nav.Panel
}

// NavigationPayload carries the panel shown next to PagePath.
type NavigationPayload struct {
	Panel    *nav.Panel
	PagePath string
}

func (InitPayload) Event() Event       { return EventInit }
func (PagePayload) Event() Event       { return EventPage }
func (StartPayload) Event() Event      { return EventStart }
func (NavigationPayload) Event() Event { return EventNavigationChange }

func (InitPayload) payload()       {}
func (PagePayload) payload()       {}
func (StartPayload) payload()      {}
func (NavigationPayload) payload() {}
