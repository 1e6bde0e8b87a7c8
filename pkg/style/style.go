// Package style defines the closed catalogs of visual styles and output
// formats for social graphics.
//
// Both catalogs are fixed at compile time. Styles bundle background,
// typography, accent, and effect parameters; formats map the two supported
// layouts (feed, story) to exact pixel dimensions. The compositor performs
// no defaulting on style data, so every registry entry must populate all
// four groups completely.
package style

import (
	"image/color"
	"strconv"
	"strings"
)

// GradientKind selects the background gradient geometry.
type GradientKind string

// Gradient kinds.
const (
	GradientNone   GradientKind = "none"
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
)

// BadgeMode selects how the category badge box is drawn.
type BadgeMode string

// Badge modes.
const (
	BadgeFilled  BadgeMode = "filled"  // solid accent fill
	BadgeOutline BadgeMode = "outline" // 2px accent stroke
	BadgeGlow    BadgeMode = "glow"    // solid fill with shadow blur
	BadgePlain   BadgeMode = "plain"   // label only, no box
)

// Weight is a typographic weight resolved to a concrete font face by the
// fonts package.
type Weight string

// Font weights.
const (
	WeightRegular Weight = "regular"
	WeightBold    Weight = "bold"
)

// Background describes the canvas base fill and optional gradient overlay.
type Background struct {
	Base           color.RGBA   // flat base fill
	Gradient       GradientKind // none, linear, or radial
	GradientStops  []color.RGBA // ordered stops, at least 2 when Gradient != none
	OverlayOpacity float64      // hero image opacity reduction, in [0,1]
}

// TextSizes holds per-element font sizes in pixels for one format.
type TextSizes struct {
	Title    float64
	Subtitle float64
	Excerpt  float64
	Date     float64
}

// Typography describes font sizes, weights, and text colors.
type Typography struct {
	Feed  TextSizes // sizes for the feed format
	Story TextSizes // sizes for the story format

	TitleWeight    Weight
	SubtitleWeight Weight

	TitleColor    color.RGBA
	SubtitleColor color.RGBA
	ExcerptColor  color.RGBA
	DateColor     color.RGBA

	TitleShadow bool
}

// SizesFor returns the text sizes for the given format key.
func (t Typography) SizesFor(format Key) TextSizes {
	if format == FormatStory {
		return t.Story
	}
	return t.Feed
}

// Accent describes the accent color and accent-driven decorations.
type Accent struct {
	Color         color.RGBA
	BadgeMode     BadgeMode
	CornerAccents bool
}

// Effects describes optional whole-canvas effects.
type Effects struct {
	Glow          bool
	GlowColor     color.RGBA
	GlowIntensity float64 // in [0,1]
	Scanlines     bool
}

// Style is an immutable bundle of visual parameters identified by a stable
// key. All fields are fully populated for every registered style.
type Style struct {
	Key   string
	Label string

	Background Background
	Typography Typography
	Accent     Accent
	Effects    Effects
}

// hex parses a #RRGGBB or #RRGGBBAA string into a color.RGBA.
// Registry entries are authored as hex literals; a malformed literal is a
// programming error and yields opaque white.
func hex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{255, 255, 255, 255}
	}
	r, _ := strconv.ParseUint(s[0:2], 16, 8)
	g, _ := strconv.ParseUint(s[2:4], 16, 8)
	b, _ := strconv.ParseUint(s[4:6], 16, 8)
	a := uint64(255)
	if len(s) == 8 {
		a, _ = strconv.ParseUint(s[6:8], 16, 8)
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
}
