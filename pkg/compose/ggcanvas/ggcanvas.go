// Package ggcanvas adapts the compose.Canvas contract onto a fogleman/gg
// raster context.
//
// The same Surface backs both render targets: the batch path encodes the
// finished pixels to PNG, the interactive path hands Image() to the
// preview. All layout math stays in compose; this package only rasterizes
// instructions, and it measures text through the fonts package so its
// metrics are identical to every other Canvas implementation.
package ggcanvas

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/soundpress/gigcard/pkg/compose"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/fonts"
	"github.com/soundpress/gigcard/pkg/style"
)

// Surface is a raster compose.Canvas. A surface serves exactly one render
// on one goroutine; its drawing faces are private to it, which keeps
// concurrent renders from sharing mutable freetype state.
type Surface struct {
	dc    *gg.Context
	w, h  int
	faces map[faceKey]font.Face
}

type faceKey struct {
	weight style.Weight
	size   float64
}

// New allocates a surface sized for the given format.
func New(format style.Key) (*Surface, error) {
	f, err := style.GetFormat(format)
	if err != nil {
		return nil, err
	}
	return NewSize(f.Width, f.Height), nil
}

// NewSize allocates a surface with explicit pixel dimensions.
func NewSize(w, h int) *Surface {
	return &Surface{
		dc:    gg.NewContext(w, h),
		w:     w,
		h:     h,
		faces: map[faceKey]font.Face{},
	}
}

// Image returns the backing raster. The interactive target hands this to
// the preview after each render.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the finished pixels as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.dc.Image()); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "encode png")
	}
	return nil
}

// PNG returns the finished pixels as PNG bytes.
func (s *Surface) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.w), float64(s.h)
}

func (s *Surface) FillRect(x, y, w, h, radius float64, c color.Color, shadow *compose.Shadow) {
	s.paint(shadow, c, func(dc *gg.Context, col color.Color) {
		dc.SetColor(col)
		if radius > 0 {
			dc.DrawRoundedRectangle(x, y, w, h, radius)
		} else {
			dc.DrawRectangle(x, y, w, h)
		}
		dc.Fill()
	})
}

func (s *Surface) StrokeRect(x, y, w, h, lineWidth float64, c color.Color) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(lineWidth)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Stroke()
}

func (s *Surface) StrokeLines(pts [][2]float64, lineWidth float64, c color.Color, shadow *compose.Shadow) {
	if len(pts) < 2 {
		return
	}
	s.paint(shadow, c, func(dc *gg.Context, col color.Color) {
		dc.SetColor(col)
		dc.SetLineWidth(lineWidth)
		dc.MoveTo(pts[0][0], pts[0][1])
		for _, pt := range pts[1:] {
			dc.LineTo(pt[0], pt[1])
		}
		dc.Stroke()
	})
}

func (s *Surface) FillLinearGradient(x0, y0, x1, y1 float64, stops []compose.Stop) {
	grad := gg.NewLinearGradient(x0, y0, x1, y1)
	for _, st := range stops {
		grad.AddColorStop(st.Pos, st.Color)
	}
	s.dc.SetFillStyle(grad)
	s.dc.DrawRectangle(0, 0, float64(s.w), float64(s.h))
	s.dc.Fill()
}

func (s *Surface) FillRadialGradient(cx, cy, r float64, stops []compose.Stop) {
	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	for _, st := range stops {
		grad.AddColorStop(st.Pos, st.Color)
	}
	s.dc.SetFillStyle(grad)
	s.dc.DrawRectangle(0, 0, float64(s.w), float64(s.h))
	s.dc.Fill()
}

func (s *Surface) DrawImage(img image.Image, x, y, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity >= 1 {
		s.dc.DrawImage(img, int(x), int(y))
		return
	}
	target, ok := s.dc.Image().(draw.Image)
	if !ok {
		s.dc.DrawImage(img, int(x), int(y))
		return
	}
	b := img.Bounds()
	rect := image.Rect(int(x), int(y), int(x)+b.Dx(), int(y)+b.Dy())
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(target, rect, img, b.Min, mask, image.Point{}, draw.Over)
}

func (s *Surface) DrawText(str string, x, y float64, t compose.Text) {
	switch t.Align {
	case compose.AlignCenter:
		x -= fonts.Measure(t.Weight, t.Size, str) / 2
	case compose.AlignRight:
		x -= fonts.Measure(t.Weight, t.Size, str)
	}
	face := s.face(t.Weight, t.Size)
	s.paint(t.Shadow, t.Color, func(dc *gg.Context, col color.Color) {
		dc.SetFontFace(face)
		dc.SetColor(col)
		dc.DrawString(str, x, y)
	})
}

// face returns this surface's private face for the weight and size.
func (s *Surface) face(w style.Weight, size float64) font.Face {
	key := faceKey{weight: w, size: size}
	if f, ok := s.faces[key]; ok {
		return f
	}
	f := fonts.Face(w, size)
	s.faces[key] = f
	return f
}

func (s *Surface) MeasureText(str string, weight style.Weight, size float64) float64 {
	return fonts.Measure(weight, size, str)
}

// paint draws a shape, optionally preceded by its shadow. The shadow is
// rasterized on an offscreen context, gaussian-blurred, and composited
// with the vertical offset before the shape itself is drawn. Blur values
// are treated as a diameter, so the gaussian sigma is blur/3.
func (s *Surface) paint(shadow *compose.Shadow, c color.Color, fn func(dc *gg.Context, col color.Color)) {
	if shadow != nil && shadow.Blur > 0 {
		off := gg.NewContext(s.w, s.h)
		fn(off, shadow.Color)
		blurred := imaging.Blur(off.Image(), shadow.Blur/3)
		s.dc.DrawImage(blurred, 0, int(shadow.OffsetY))
	}
	fn(s.dc, c)
}
