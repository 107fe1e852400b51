// Package sidebar implements the sidebar-style panel plugin: a title header at
// the top of the navigation panel and an author credit in its last entry.
package sidebar

import (
	"git.home.luguber.info/inful/bookhooks/internal/config"
	"git.home.luguber.info/inful/bookhooks/internal/nav"
)

// Annotate inserts the sidebar header into panel unless it is already there,
// and reports whether the panel changed. The header state is read from the
// panel on every call, so repeated calls insert at most one header.
//
// Inserting the header also rewrites the last entry of the summary list: it
// becomes the author credit, or is emptied when no author is configured. The
// entry's previous content is lost. Nothing happens without a title.
func Annotate(cfg config.ResolvedConfig, panel *nav.Panel) bool {
	if !panel.Valid() || !cfg.HasTitle() {
		return false
	}
	if panel.HeaderState() == nav.HeaderPresent {
		return false
	}

	panel.PrependHeader(cfg.Title)
	if cfg.HasAuthor() {
		panel.ReplaceLastEntry(cfg.AuthorCredit())
	} else {
		panel.ClearLastEntry()
	}
	return true
}
