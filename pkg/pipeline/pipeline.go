// Package pipeline wires validation, content loading, composition, and PNG
// encoding into one cached execution path shared by the CLI and the HTTP
// service.
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/soundpress/gigcard/pkg/compose"
	"github.com/soundpress/gigcard/pkg/content"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/style"
)

// Options contains all configuration for one graphic export.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Content is the record to render. When nil and ContentPath is set,
	// the record is loaded from disk.
	Content     *content.Item `json:"content,omitempty"`
	ContentPath string        `json:"content_path,omitempty"`

	Format string `json:"format,omitempty"` // feed | story, default feed
	Style  string `json:"style,omitempty"`  // default industrial

	Overrides compose.Overrides `json:"overrides,omitempty"`
	Logo      compose.Logo      `json:"logo,omitempty"`
	Advanced  compose.Advanced  `json:"advanced,omitempty"`

	// Refresh bypasses the render cache and overwrites the stored entry.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults fills unset fields and rejects unknown style or
// format keys before any work happens.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Style == "" {
		o.Style = style.StyleIndustrial
	}
	if o.Format == "" {
		o.Format = string(style.FormatFeed)
	}
	if _, err := style.Get(o.Style); err != nil {
		return err
	}
	if _, err := style.GetFormat(style.Key(o.Format)); err != nil {
		return err
	}
	if o.Content == nil && o.ContentPath == "" && o.Overrides.Title == "" {
		// Allowed (placeholder render), but worth validating explicitly so
		// API callers get a clear message when they posted an empty body.
		o.Logger.Debug("rendering without content, placeholders will be used")
	}
	if o.Advanced.TextScale == 0 {
		o.Advanced.TextScale = 100
	}
	if o.Advanced.TextScale < 25 || o.Advanced.TextScale > 400 {
		return errors.New(errors.ErrCodeInvalidInput, "text scale %.0f out of range [25,400]", o.Advanced.TextScale)
	}
	o.validated = true
	return nil
}

// request builds the compositor request for these options.
func (o *Options) request(item *content.Item) compose.Request {
	req := compose.NewRequest(item, style.Key(o.Format), o.Style)
	req.Overrides = o.Overrides
	req.Logo = o.Logo
	req.Advanced = o.Advanced
	return req
}

// cachePayload is the canonical serialization hashed into the render cache
// key. Runtime-only fields are excluded so identical requests from the CLI
// and the API share entries.
func (o *Options) cachePayload(item *content.Item) ([]byte, error) {
	payload := struct {
		Content   *content.Item     `json:"content"`
		Format    string            `json:"format"`
		Style     string            `json:"style"`
		Overrides compose.Overrides `json:"overrides"`
		Logo      compose.Logo      `json:"logo"`
		Advanced  compose.Advanced  `json:"advanced"`
	}{item, o.Format, o.Style, o.Overrides, o.Logo, o.Advanced}
	return json.Marshal(payload)
}

// Result contains the outputs of one pipeline run.
type Result struct {
	// PNG is the encoded graphic.
	PNG []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LoadTime   time.Duration
	RenderTime time.Duration
	Bytes      int
	CacheHit   bool
}
