package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/bookhooks/internal/foundation/errors"
)

// ManifestFileNames lists the manifest files LoadManifest looks for, in order.
var ManifestFileNames = []string{"book.json", "book.yaml", "book.yml", "book.toml"}

// Format is the encoding of a manifest file.
type Format string

const (
	FormatYAML Format = "yaml" // also used for JSON, which YAML decodes as a subset
	FormatTOML Format = "toml"
)

// Manifest is the book-level configuration file.
type Manifest struct {
	// Path is the file the manifest was read from; empty when no manifest exists.
	Path string

	Title       string
	Description string
	Language    string
	Plugins     []string

	// PluginsConfig maps a plugin namespace to its raw settings.
	PluginsConfig map[string]RawConfig

	// Extra holds every other top-level key, forwarded to plugins as global config.
	Extra map[string]any

	// Warnings lists manifest entries that were ignored because of their shape.
	Warnings []string
}

// LoadManifest reads the first manifest found in dir. A book without a manifest
// is valid and yields an empty Manifest.
func LoadManifest(dir string) (*Manifest, error) {
	for _, name := range ManifestFileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(filepath.Clean(path))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read book manifest").
				WithContext("path", path).Build()
		}
		format := FormatYAML
		if filepath.Ext(name) == ".toml" {
			format = FormatTOML
		}
		m, err := ParseManifest(data, format)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "book manifest is not valid").
				Fatal().WithContext("path", path).Build()
		}
		m.Path = path
		return m, nil
	}
	return &Manifest{PluginsConfig: map[string]RawConfig{}, Extra: map[string]any{}}, nil
}

// ParseManifest decodes manifest bytes in the given format.
func ParseManifest(data []byte, format Format) (*Manifest, error) {
	doc := map[string]any{}
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
	return manifestFromMap(doc), nil
}

func manifestFromMap(doc map[string]any) *Manifest {
	m := &Manifest{PluginsConfig: map[string]RawConfig{}, Extra: map[string]any{}}
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := doc[k]
		switch k {
		case "title":
			m.Title = m.stringOrWarn(k, v)
		case "description":
			m.Description = m.stringOrWarn(k, v)
		case "language":
			m.Language = m.stringOrWarn(k, v)
		case "plugins":
			m.Plugins = m.stringList(k, v)
		case "pluginsConfig":
			sections, ok := v.(map[string]any)
			if !ok {
				m.Warnings = append(m.Warnings, fmt.Sprintf("manifest: %q must be a table of plugin settings, got %T", k, v))
				continue
			}
			for ns, section := range sections {
				switch s := section.(type) {
				case map[string]any:
					m.PluginsConfig[ns] = RawConfig(s)
				case nil:
					// "ns:" with no body configures nothing.
				default:
					m.Warnings = append(m.Warnings, fmt.Sprintf("manifest: settings for plugin %q must be a table, got %T", ns, section))
				}
			}
		default:
			m.Extra[k] = v
		}
	}
	sort.Strings(m.Warnings)
	return m
}

func (m *Manifest) stringOrWarn(key string, v any) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		m.Warnings = append(m.Warnings, fmt.Sprintf("manifest: %q must be a string, got %T", key, v))
	}
	return s
}

func (m *Manifest) stringList(key string, v any) []string {
	items, ok := v.([]any)
	if !ok {
		if v != nil {
			m.Warnings = append(m.Warnings, fmt.Sprintf("manifest: %q must be a list, got %T", key, v))
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Section returns the raw settings of one plugin namespace, or nil.
func (m *Manifest) Section(namespace string) RawConfig {
	if m == nil {
		return nil
	}
	return m.PluginsConfig[namespace]
}

// Global is the book configuration handed to plugins with the start event.
// Plugin sections are exposed under their namespace, next to the book fields.
func (m *Manifest) Global() map[string]any {
	out := make(map[string]any, len(m.Extra)+len(m.PluginsConfig)+3)
	for k, v := range m.Extra {
		out[k] = v
	}
	for ns, section := range m.PluginsConfig {
		out[ns] = map[string]any(Merge(section))
	}
	out["title"] = m.Title
	out["description"] = m.Description
	out["language"] = m.Language
	return out
}
