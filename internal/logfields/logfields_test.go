package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"BuildID", KeyBuildID, "b-1", BuildID("b-1")},
		{"Event", KeyEvent, "page", Event("page")},
		{"Plugin", KeyPlugin, "sidebar-style", Plugin("sidebar-style")},
		{"Page", KeyPage, "intro.md", Page("intro.md")},
		{"Path", KeyPath, "/tmp/book", Path("/tmp/book")},
		{"Output", KeyOutput, "_book", Output("_book")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Errorf("%s value = %q, want %q", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := Pages(4); a.Key != KeyPages || a.Value.Int64() != 4 {
		t.Errorf("unexpected pages attr %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Errorf("unexpected duration attr %v", a)
	}
}

func TestError(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Errorf("nil error should log empty string, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Errorf("unexpected error attr %v", a)
	}
}
