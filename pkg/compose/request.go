package compose

import (
	"image/color"

	"github.com/soundpress/gigcard/pkg/content"
	"github.com/soundpress/gigcard/pkg/style"
)

// LogoCorner selects which canvas corner a logo is anchored to.
type LogoCorner string

// Logo corners.
const (
	CornerTopLeft     LogoCorner = "topLeft"
	CornerTopRight    LogoCorner = "topRight"
	CornerBottomLeft  LogoCorner = "bottomLeft"
	CornerBottomRight LogoCorner = "bottomRight"
)

// Logo describes an optional user-supplied logo overlay.
type Logo struct {
	Ref     string     // http(s) URL or data: URL; empty means no logo
	Corner  LogoCorner // placement corner
	Size    float64    // requested width in pixels; never upscales
	Opacity float64    // in [0,1]
}

// Border describes the optional advanced border.
type Border struct {
	Enabled bool
	Width   float64
	Color   color.RGBA
}

// Advanced is the bundle of user-tunable overrides.
type Advanced struct {
	TextScale  float64 // percentage, 100 = neutral
	Anchor     Anchor  // vertical anchor of the text stack
	Align      Align   // horizontal alignment of the text stack
	BlurRadius float64 // background image box blur, 0 = off

	Border Border

	Watermark     bool
	WatermarkText string

	QRPlaceholder bool
	ShowExcerpt   bool
}

// Overrides carries per-render text and accent overrides. Empty strings
// fall back to the content item's own fields.
type Overrides struct {
	Title    string
	Subtitle string
	Excerpt  string // the only source of excerpt text; content is never used

	AccentColor *color.RGBA // nil keeps the style's accent
}

// Request is the compositor's sole input unit. It is constructed fresh for
// every render call and fully disposable afterwards; no engine state
// persists across calls except the process-wide font registration.
type Request struct {
	Content   *content.Item // nil renders placeholder text
	Format    style.Key
	StyleKey  string
	Overrides Overrides
	Logo      Logo
	Advanced  Advanced
}

// NewRequest returns a request with neutral advanced settings.
func NewRequest(item *content.Item, format style.Key, styleKey string) Request {
	return Request{
		Content:  item,
		Format:   format,
		StyleKey: styleKey,
		Advanced: Advanced{
			TextScale: 100,
			Anchor:    AnchorTop,
			Align:     AlignLeft,
		},
	}
}

// scale returns the text-scale factor, treating unset as neutral.
func (r *Request) scale() float64 {
	if r.Advanced.TextScale <= 0 {
		return 1
	}
	return r.Advanced.TextScale / 100
}

// accent returns the effective accent color.
func (r *Request) accent(s style.Style) color.RGBA {
	if r.Overrides.AccentColor != nil {
		return *r.Overrides.AccentColor
	}
	return s.Accent.Color
}

// align returns the effective horizontal alignment, defaulting to left.
func (r *Request) align() Align {
	switch r.Advanced.Align {
	case AlignCenter, AlignRight:
		return r.Advanced.Align
	}
	return AlignLeft
}

// anchor returns the effective vertical anchor, defaulting to top.
func (r *Request) anchor() Anchor {
	switch r.Advanced.Anchor {
	case AnchorCenter, AnchorBottom:
		return r.Advanced.Anchor
	}
	return AnchorTop
}
