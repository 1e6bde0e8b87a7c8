package compose

import (
	"context"
	"image"
	"image/color"
	"io"

	"github.com/charmbracelet/log"

	"github.com/soundpress/gigcard/pkg/assets"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/style"
)

// Loader supplies decoded raster assets for a render. assets.Loader is the
// production implementation; tests substitute fakes.
type Loader interface {
	// HeroImage fetches and decodes the content's main image.
	HeroImage(ctx context.Context, url string) (image.Image, error)

	// Logo fetches and decodes a logo from an http(s) or data: reference.
	Logo(ctx context.Context, ref string) (image.Image, error)
}

// Engine paints complete social graphics onto any Canvas. It holds no
// per-render state: every Render call resolves its style and format fresh
// and owns nothing beyond the surface it is handed.
type Engine struct {
	loader Loader
	logger *log.Logger
}

// NewEngine returns an engine drawing assets through loader. A nil loader
// renders without hero image and logo; a nil logger discards log output.
func NewEngine(loader Loader, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{loader: loader, logger: logger}
}

// Render paints the full graphic for req onto canvas.
//
// The paint order is fixed: base fill, hero image, gradient overlay,
// scanlines, border, text stack, CTA pill, watermark, corner accents, QR
// placeholder, logo. Steps skip themselves when their inputs are absent but
// are never reordered; later paints always land over earlier ones.
//
// Unknown style or format keys fail loud before anything is painted.
// Degradable asset failures (hero image, logo) are contained at the
// element boundary: the element is skipped with a warning and every
// subsequent step still runs. Loader errors that are not degradable abort
// the render.
func (e *Engine) Render(ctx context.Context, canvas Canvas, req Request) error {
	if canvas == nil {
		return errors.New(errors.ErrCodeRender, "render: nil canvas")
	}
	st, err := style.Get(req.StyleKey)
	if err != nil {
		return err
	}
	if _, err := style.GetFormat(req.Format); err != nil {
		return err
	}

	w, h := canvas.Size()
	p := &painter{
		c:      canvas,
		w:      w,
		h:      h,
		st:     st,
		req:    &req,
		scale:  req.scale(),
		story:  req.Format == style.FormatStory,
		logger: e.logger,
	}

	p.base()
	if err := e.hero(ctx, p); err != nil {
		return err
	}
	p.gradientOverlay()
	p.scanlines()
	p.border()
	p.textStack()
	p.ctaPill()
	p.watermark()
	p.cornerAccents()
	p.qrPlaceholder()
	return e.logo(ctx, p)
}

// hero fetches, fits, and draws the content's main image. Degradable
// failures leave the flat base fill in place; anything else aborts the
// render.
func (e *Engine) hero(ctx context.Context, p *painter) error {
	if e.loader == nil || p.req.Content == nil || p.req.Content.ImageURL == "" {
		return nil
	}
	img, err := e.loader.HeroImage(ctx, p.req.Content.ImageURL)
	if err != nil {
		if !errors.Degradable(err) {
			return err
		}
		e.logger.Warn("hero image unavailable, keeping flat background",
			"url", p.req.Content.ImageURL, "err", err)
		return nil
	}
	fitted := assets.CoverFit(img, int(p.w), int(p.h))
	if r := p.req.Advanced.BlurRadius; r > 0 {
		fitted = assets.BoxBlur(fitted, r)
	}
	p.c.DrawImage(fitted, 0, 0, 1-p.st.Background.OverlayOpacity)
	return nil
}

// logo draws the optional user logo into its corner, never upscaled beyond
// natural size. Degradable load failures skip the element.
func (e *Engine) logo(ctx context.Context, p *painter) error {
	if e.loader == nil || p.req.Logo.Ref == "" {
		return nil
	}
	img, err := e.loader.Logo(ctx, p.req.Logo.Ref)
	if err != nil {
		if !errors.Degradable(err) {
			return err
		}
		e.logger.Warn("logo unavailable, skipping", "err", err)
		return nil
	}
	scaled := assets.ScaleLogo(img, p.req.Logo.Size)
	lw := float64(scaled.Bounds().Dx())
	lh := float64(scaled.Bounds().Dy())

	const margin = 50.0
	x, y := margin, margin
	switch p.req.Logo.Corner {
	case CornerTopRight:
		x = p.w - margin - lw
	case CornerBottomLeft:
		y = p.h - margin - lh
	case CornerBottomRight:
		x, y = p.w-margin-lw, p.h-margin-lh
	}

	opacity := p.req.Logo.Opacity
	if opacity <= 0 || opacity > 1 {
		opacity = 1
	}
	p.c.DrawImage(scaled, x, y, opacity)
	return nil
}

// painter carries the per-render geometry shared by all paint steps.
type painter struct {
	c      Canvas
	w, h   float64
	st     style.Style
	req    *Request
	scale  float64
	story  bool
	logger *log.Logger
}

func (p *painter) base() {
	p.c.FillRect(0, 0, p.w, p.h, 0, p.st.Background.Base, nil)
}

// gradientOverlay paints the style's gradient over the hero image. Stops
// are spaced evenly by index; linear runs corner to corner, radial is
// centered with radius height/1.2.
func (p *painter) gradientOverlay() {
	raw := p.st.Background.GradientStops
	if p.st.Background.Gradient == style.GradientNone || len(raw) < 2 {
		return
	}
	stops := make([]Stop, len(raw))
	for i, c := range raw {
		stops[i] = Stop{Pos: float64(i) / float64(len(raw)-1), Color: c}
	}
	switch p.st.Background.Gradient {
	case style.GradientLinear:
		p.c.FillLinearGradient(0, 0, p.w, p.h, stops)
	case style.GradientRadial:
		p.c.FillRadialGradient(p.w/2, p.h/2, p.h/1.2, stops)
	}
}

// scanlines tiles 2px semi-transparent black bars every 4px.
func (p *painter) scanlines() {
	if !p.st.Effects.Scanlines {
		return
	}
	bar := color.RGBA{0, 0, 0, 46}
	for y := 0.0; y < p.h; y += 4 {
		p.c.FillRect(0, y, p.w, 2, 0, bar, nil)
	}
}

func (p *painter) border() {
	b := p.req.Advanced.Border
	if !b.Enabled || b.Width <= 0 {
		return
	}
	inset := b.Width / 2
	p.c.StrokeRect(inset, inset, p.w-b.Width, p.h-b.Width, b.Width, b.Color)
}

// ctaPill draws the call-to-action near the bottom: accent pill, white bold
// centered label. Vertical position is fixed per format; all dimensions
// scale with the text-scale setting.
func (p *painter) ctaPill() {
	label := "JETZT LESEN"
	size := 34 * p.scale
	padH := 60 * p.scale
	pillH := 90 * p.scale

	y := p.h - 260
	if p.story {
		y = p.h - 320
	}
	pillW := p.c.MeasureText(label, style.WeightBold, size) + 2*padH
	x := p.w/2 - pillW/2

	p.c.FillRect(x, y, pillW, pillH, pillH/2, p.req.accent(p.st), nil)
	p.c.DrawText(label, p.w/2, y+pillH/2+size*0.35, Text{
		Weight: style.WeightBold,
		Size:   size,
		Color:  color.RGBA{255, 255, 255, 255},
		Align:  AlignCenter,
	})
}

func (p *painter) watermark() {
	if !p.req.Advanced.Watermark {
		return
	}
	text := p.req.Advanced.WatermarkText
	if text == "" {
		text = "SOUNDPRESS.DE"
	}
	size := 24 * p.scale
	p.c.DrawText(text, p.w/2, p.h-60, Text{
		Weight: style.WeightRegular,
		Size:   size,
		Color:  color.RGBA{255, 255, 255, 110},
		Align:  AlignCenter,
	})
}

// cornerAccents strokes four L-shaped marks, one per canvas corner, in the
// accent color. Glow styles get a glow-colored shadow behind the strokes.
func (p *painter) cornerAccents() {
	if !p.st.Accent.CornerAccents {
		return
	}
	const (
		inset  = 40.0
		length = 60.0
		lw     = 6.0
	)
	var shadow *Shadow
	if p.st.Effects.Glow {
		shadow = &Shadow{
			Color: p.st.Effects.GlowColor,
			Blur:  25 * p.st.Effects.GlowIntensity,
		}
	}
	accent := p.req.accent(p.st)
	w, h := p.w, p.h
	marks := [][][2]float64{
		{{inset, inset + length}, {inset, inset}, {inset + length, inset}},
		{{w - inset - length, inset}, {w - inset, inset}, {w - inset, inset + length}},
		{{inset, h - inset - length}, {inset, h - inset}, {inset + length, h - inset}},
		{{w - inset - length, h - inset}, {w - inset, h - inset}, {w - inset, h - inset - length}},
	}
	for _, pts := range marks {
		p.c.StrokeLines(pts, lw, accent, shadow)
	}
}

// qrPlaceholder paints a labeled white box where a real QR code would sit.
func (p *painter) qrPlaceholder() {
	if !p.req.Advanced.QRPlaceholder {
		return
	}
	const box = 150.0
	x := p.w - 70 - box
	y := p.h - 70 - box
	p.c.FillRect(x, y, box, box, 8, color.RGBA{255, 255, 255, 255}, nil)

	label := Text{
		Weight: style.WeightBold,
		Size:   20,
		Color:  color.RGBA{20, 20, 20, 255},
		Align:  AlignCenter,
	}
	cx := x + box/2
	p.c.DrawText("QR-CODE", cx, y+box/2-8, label)
	p.c.DrawText("FOLGT", cx, y+box/2+20, label)
}
