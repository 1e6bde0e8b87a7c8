// Package content defines the read-only projection of CMS documents that
// the rendering engine consumes.
//
// Items are supplied whole by an external content-fetching layer (or loaded
// from a JSON export for CLI use); the engine never queries storage itself
// and never mutates an item.
package content

import (
	"strings"
	"time"
)

// Type tags for the supported CMS document types.
const (
	TypePost           = "post"
	TypeConcertReport  = "concertReport"
	TypeAftershowStory = "aftershowStory"
)

// Item is a read-only projection of a CMS document.
type Item struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	Categories []string   `json:"categories,omitempty"` // category titles
	Author     string     `json:"author,omitempty"`
	Published  *time.Time `json:"published,omitempty"`
	Locale     string     `json:"locale,omitempty"` // BCP 47 tag, e.g. "de-DE"
}

// BadgeLabel resolves the category badge text by priority: document type
// first, then the first category title, then a generic fallback. The result
// is already uppercased.
func (it *Item) BadgeLabel() string {
	if it == nil {
		return "NEWS"
	}
	switch it.Type {
	case TypeConcertReport:
		return "KONZERTBERICHT"
	case TypeAftershowStory:
		return "AFTERSHOW"
	}
	if len(it.Categories) > 0 && it.Categories[0] != "" {
		return strings.ToUpper(it.Categories[0])
	}
	return "NEWS"
}
