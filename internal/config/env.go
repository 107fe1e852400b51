package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "BOOKHOOKS_"

type envBinding struct {
	suffix string
	key    string
	kind   string // "string", "bool" or "int"
}

var envBindings = []envBinding{
	{"TITLE", KeyTitle, "string"},
	{"AUTHOR", KeyAuthor, "string"},
	{"PRINT_LOG", KeyPrintLog, "bool"},
	{"ANCHORS", KeyAnchors, "bool"},
	{"MAX_LEVEL", KeyMaxLevel, "int"},
	{"SHOW_LEVEL", KeyShowLevel, "bool"},
	{"SHOW_GO_TOP", KeyShowGoTop, "bool"},
	{"AUTHOR_LABEL", KeyAuthorLabel, "string"},
}

// LoadDotEnv loads dir/.env into the process environment if the file exists.
// Variables already set in the environment are left alone.
func LoadDotEnv(dir string) (bool, error) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, err
	}
	return true, nil
}

// EnvOverrides reads BOOKHOOKS_* variables through lookup. Values that do not
// parse as their key's type are passed through as strings so Resolve coerces
// them to the default like any other malformed value.
func EnvOverrides(lookup func(string) (string, bool)) RawConfig {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out := RawConfig{}
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.suffix)
		if !ok {
			continue
		}
		switch b.kind {
		case "bool":
			if parsed, err := strconv.ParseBool(v); err == nil {
				out[b.key] = parsed
				continue
			}
		case "int":
			if parsed, err := strconv.Atoi(v); err == nil {
				out[b.key] = parsed
				continue
			}
		}
		out[b.key] = v
	}
	return out
}

// Collect assembles the raw configuration of a session: the manifest sections
// of each namespace in order, then the environment overrides.
func Collect(m *Manifest, namespaces []string, env RawConfig) RawConfig {
	sources := make([]RawConfig, 0, len(namespaces)+1)
	for _, ns := range namespaces {
		sources = append(sources, m.Section(ns))
	}
	sources = append(sources, env)
	return Merge(sources...)
}
