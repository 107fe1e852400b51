package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyEvent      = "event"
	KeyPlugin     = "plugin"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyPages      = "pages"
	KeyDurationMS = "duration_ms"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Event(name string) slog.Attr     { return slog.String(KeyEvent, name) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Page(path string) slog.Attr      { return slog.String(KeyPage, path) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
