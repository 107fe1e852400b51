package config

import (
	"fmt"
	"math"
	"strings"

	"git.home.luguber.info/inful/bookhooks/internal/logging"
)

// DefaultAuthorLabel prefixes the author credit written into the navigation panel.
const DefaultAuthorLabel = "作者："

const (
	defaultMaxLevel = 3
	minLevel        = 1
	maxLevel        = 6
)

// ResolvedConfig is the flattened, defaulted plugin configuration for one build
// session. It is a value type: copies handed to handlers cannot change what
// other handlers observe.
type ResolvedConfig struct {
	// Title is the sidebar header text. Empty means unset.
	Title string `yaml:"title"`
	// Author is credited in the last navigation entry. Empty means unset.
	Author string `yaml:"author"`
	// PrintLog enables diagnostic traces. It never changes injected content.
	PrintLog bool `yaml:"printLog"`

	Anchors     bool   `yaml:"anchors"`
	MaxLevel    int    `yaml:"maxLevel"`
	ShowLevel   bool   `yaml:"showLevel"`
	ShowGoTop   bool   `yaml:"showGoTop"`
	AuthorLabel string `yaml:"authorLabel"`
}

// Defaults returns the configuration used when nothing is configured.
func Defaults() ResolvedConfig {
	return ResolvedConfig{
		MaxLevel:    defaultMaxLevel,
		ShowGoTop:   true,
		AuthorLabel: DefaultAuthorLabel,
	}
}

// HasTitle reports whether a sidebar title is configured.
func (c ResolvedConfig) HasTitle() bool { return c.Title != "" }

// HasAuthor reports whether an author credit is configured.
func (c ResolvedConfig) HasAuthor() bool { return c.Author != "" }

// AuthorCredit is the text written into the last navigation entry.
func (c ResolvedConfig) AuthorCredit() string { return c.AuthorLabel + c.Author }

// Resolve flattens raw into a ResolvedConfig. It never fails: missing keys take
// their defaults, unknown keys are ignored and malformed values are coerced to
// the default. When the resolved PrintLog is true every coercion is reported to
// sink.
func Resolve(raw RawConfig, sink logging.Sink) ResolvedConfig {
	cfg, warnings := ResolveWithWarnings(raw)
	if cfg.PrintLog {
		sink = logging.Safe(sink)
		for _, w := range warnings {
			sink.Log(w)
		}
	}
	return cfg
}

// ResolveWithWarnings is Resolve without the logging side channel. Warnings are
// returned in a fixed key order so identical input yields identical output.
func ResolveWithWarnings(raw RawConfig) (ResolvedConfig, []string) {
	cfg := Defaults()
	var warnings []string
	warn := func(key string, value any, want string, fallback any) {
		warnings = append(warnings, fmt.Sprintf("config: %q expects %s, got %T(%v); using %v", key, want, value, value, fallback))
	}

	// printLog first: a malformed printLog silently stays false.
	if b, ok := boolValue(raw, KeyPrintLog); ok {
		cfg.PrintLog = b
	}

	stringField := func(key string, dst *string) {
		v, present := raw[key]
		if !present || v == nil {
			return
		}
		s, ok := v.(string)
		if !ok {
			warn(key, v, "a string", fmt.Sprintf("%q", *dst))
			return
		}
		*dst = strings.TrimSpace(s)
	}
	boolField := func(key string, dst *bool) {
		v, present := raw[key]
		if !present || v == nil {
			return
		}
		b, ok := v.(bool)
		if !ok {
			warn(key, v, "a boolean", *dst)
			return
		}
		*dst = b
	}

	stringField(KeyTitle, &cfg.Title)
	stringField(KeyAuthor, &cfg.Author)
	boolField(KeyAnchors, &cfg.Anchors)
	boolField(KeyShowLevel, &cfg.ShowLevel)
	boolField(KeyShowGoTop, &cfg.ShowGoTop)

	if v, present := raw[KeyMaxLevel]; present && v != nil {
		n, ok := intValue(v)
		if !ok || n < minLevel || n > maxLevel {
			warn(KeyMaxLevel, v, fmt.Sprintf("an integer between %d and %d", minLevel, maxLevel), cfg.MaxLevel)
		} else {
			cfg.MaxLevel = n
		}
	}

	label := cfg.AuthorLabel
	stringField(KeyAuthorLabel, &label)
	if label != "" {
		cfg.AuthorLabel = label
	}

	return cfg, warnings
}

func boolValue(raw RawConfig, key string) (bool, bool) {
	b, ok := raw[key].(bool)
	return b, ok
}

// intValue accepts the integer shapes the YAML, JSON and TOML decoders produce.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
