package compose

import (
	"encoding/json"
	"image"
	"image/color"

	"github.com/soundpress/gigcard/pkg/fonts"
	"github.com/soundpress/gigcard/pkg/style"
)

// Op is one recorded drawing instruction. Only the fields relevant to the
// instruction kind are populated.
type Op struct {
	Kind string `json:"kind"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	Radius    float64      `json:"radius,omitempty"`
	LineWidth float64      `json:"lineWidth,omitempty"`
	Points    [][2]float64 `json:"points,omitempty"`
	Stops     []Stop       `json:"-"`

	Color   color.Color `json:"-"`
	Shadow  *Shadow     `json:"-"`
	Opacity float64     `json:"opacity,omitempty"`

	Text  string       `json:"text,omitempty"`
	Size  float64      `json:"size,omitempty"`
	Wt    style.Weight `json:"weight,omitempty"`
	Align Align        `json:"align,omitempty"`

	ImageW int `json:"imageW,omitempty"`
	ImageH int `json:"imageH,omitempty"`
}

// Recorder is a Canvas that captures the instruction stream instead of
// rasterizing it. It measures text through the fonts package, exactly like
// the raster backends, so recorded line breaks and offsets match what a
// real render would paint. Used by layout tests and the debug layout dump.
type Recorder struct {
	W, H float64
	Ops  []Op
}

// NewRecorder returns a recording canvas with the given surface size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) FillRect(x, y, w, h, radius float64, c color.Color, shadow *Shadow) {
	r.Ops = append(r.Ops, Op{Kind: "fillRect", X: x, Y: y, W: w, H: h, Radius: radius, Color: c, Shadow: shadow})
}

func (r *Recorder) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "strokeRect", X: x, Y: y, W: w, H: h, LineWidth: lineWidth, Color: c})
}

func (r *Recorder) StrokeLines(pts [][2]float64, lineWidth float64, c color.Color, shadow *Shadow) {
	r.Ops = append(r.Ops, Op{Kind: "strokeLines", Points: pts, LineWidth: lineWidth, Color: c, Shadow: shadow})
}

func (r *Recorder) FillLinearGradient(x0, y0, x1, y1 float64, stops []Stop) {
	r.Ops = append(r.Ops, Op{Kind: "linearGradient", X: x0, Y: y0, W: x1, H: y1, Stops: stops})
}

func (r *Recorder) FillRadialGradient(cx, cy, radius float64, stops []Stop) {
	r.Ops = append(r.Ops, Op{Kind: "radialGradient", X: cx, Y: cy, Radius: radius, Stops: stops})
}

func (r *Recorder) DrawImage(img image.Image, x, y, opacity float64) {
	r.Ops = append(r.Ops, Op{
		Kind: "image", X: x, Y: y, Opacity: opacity,
		ImageW: img.Bounds().Dx(), ImageH: img.Bounds().Dy(),
	})
}

func (r *Recorder) DrawText(s string, x, y float64, t Text) {
	r.Ops = append(r.Ops, Op{
		Kind: "text", Text: s, X: x, Y: y,
		Size: t.Size, Wt: t.Weight, Align: t.Align, Color: t.Color, Shadow: t.Shadow,
	})
}

func (r *Recorder) MeasureText(s string, weight style.Weight, size float64) float64 {
	return fonts.Measure(weight, size, s)
}

// Texts returns the drawn strings in paint order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// MarshalJSON renders the instruction stream as a JSON array, one object
// per op.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	type dump struct {
		W   float64 `json:"width"`
		H   float64 `json:"height"`
		Ops []Op    `json:"ops"`
	}
	return json.MarshalIndent(dump{W: r.W, H: r.H, Ops: r.Ops}, "", "  ")
}
