package config

import "maps"

// Recognised keys inside a plugin namespace of the book manifest.
const (
	KeyTitle       = "title"
	KeyAuthor      = "author"
	KeyPrintLog    = "printLog"
	KeyAnchors     = "anchors"
	KeyMaxLevel    = "maxLevel"
	KeyShowLevel   = "showLevel"
	KeyShowGoTop   = "showGoTop"
	KeyAuthorLabel = "authorLabel"
)

// RawConfig is the unvalidated settings map of a plugin namespace, exactly as
// decoded from the manifest or assembled from the environment. A nil RawConfig
// is valid and means "nothing configured".
type RawConfig map[string]any

// Merge overlays sources from left to right. Later sources win key by key and
// nil sources are skipped. The result never aliases any of the inputs.
func Merge(sources ...RawConfig) RawConfig {
	out := make(RawConfig)
	for _, src := range sources {
		maps.Copy(out, src)
	}
	return out
}
