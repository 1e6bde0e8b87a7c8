// Package compose implements the style-driven compositor that paints a
// complete social graphic for one render request.
//
// The paint sequence and all layout math live here, once, behind a
// backend-agnostic Canvas contract. Render targets differ only in how they
// acquire a surface and what they do with the finished pixels: the batch
// path encodes PNG bytes, the interactive path hands the surface to a
// preview, and the Recorder captures the instruction stream for tests and
// layout inspection. Any divergence in layout between two targets is a
// correctness bug, not a cosmetic one.
package compose

import (
	"image"
	"image/color"

	"github.com/soundpress/gigcard/pkg/style"
)

// Align is the horizontal text alignment of a drawn string relative to its
// anchor x coordinate.
type Align string

// Horizontal alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Anchor is the vertical anchor of the text stack.
type Anchor string

// Vertical anchors.
const (
	AnchorTop    Anchor = "top"
	AnchorCenter Anchor = "center"
	AnchorBottom Anchor = "bottom"
)

// Shadow describes a drop shadow attached to a fill or text instruction.
type Shadow struct {
	Color   color.Color
	Blur    float64
	OffsetY float64
}

// Stop is one gradient color stop at a position in [0,1].
type Stop struct {
	Pos   float64
	Color color.Color
}

// Text bundles the styling of one DrawText instruction. The y coordinate
// passed to DrawText is the text baseline.
type Text struct {
	Weight style.Weight
	Size   float64
	Color  color.Color
	Align  Align
	Shadow *Shadow
}

// Canvas is the drawing-instruction contract implemented by every render
// backend. Implementations paint instructions in call order; the engine is
// the only component that decides ordering and geometry.
//
// Text measurement must be identical across implementations. Both shipped
// backends delegate to the fonts package for faces and metrics, which is
// what guarantees cross-target parity of line breaks.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (w, h float64)

	// FillRect fills an axis-aligned rectangle, optionally rounded and
	// optionally shadowed.
	FillRect(x, y, w, h, radius float64, c color.Color, shadow *Shadow)

	// StrokeRect strokes a rectangle outline with the given line width.
	StrokeRect(x, y, w, h, lineWidth float64, c color.Color)

	// StrokeLines strokes an open polyline through pts, optionally shadowed.
	StrokeLines(pts [][2]float64, lineWidth float64, c color.Color, shadow *Shadow)

	// FillLinearGradient fills the whole surface with a linear gradient
	// from (x0,y0) to (x1,y1).
	FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop)

	// FillRadialGradient fills the whole surface with a radial gradient
	// centered at (cx,cy) with the given radius.
	FillRadialGradient(cx, cy, r float64, stops []Stop)

	// DrawImage draws img with its top-left corner at (x,y) at the given
	// opacity in [0,1]. The image is drawn at its natural size; the engine
	// pre-scales.
	DrawImage(img image.Image, x, y, opacity float64)

	// DrawText draws s with its baseline at y and its anchor x per t.Align.
	DrawText(s string, x, y float64, t Text)

	// MeasureText returns the advance width of s in pixels.
	MeasureText(s string, weight style.Weight, size float64) float64
}
