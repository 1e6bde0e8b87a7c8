package compose

import (
	"image/color"
	"strings"

	"github.com/soundpress/gigcard/pkg/content"
	"github.com/soundpress/gigcard/pkg/style"
)

// placeholderTitle is rendered when neither an override nor the content
// supplies a title.
const placeholderTitle = "Titel hier"

// textStack paints the badge, date, author, title, subtitle, and excerpt
// top to bottom, advancing a running vertical cursor. Each element is
// optional per content and settings; spacing between elements scales with
// the text-scale setting.
func (p *painter) textStack() {
	pad := 120.0
	if p.story {
		pad = 140
	}

	var cursor float64
	switch p.req.anchor() {
	case AnchorBottom:
		cursor = p.h - pad - 450
	case AnchorCenter:
		cursor = p.h/2 - 200
	default:
		cursor = pad
	}

	x := 70.0
	switch p.req.align() {
	case AlignRight:
		x = p.w - 70
	case AlignCenter:
		x = p.w / 2
	}

	sizes := p.st.Typography.SizesFor(p.req.Format)
	maxWidth := p.w - 140

	cursor = p.badge(cursor, x, sizes)
	cursor = p.dateLine(cursor, x, sizes)
	cursor = p.authorLine(cursor, x, sizes)
	cursor = p.title(cursor, x, sizes, maxWidth)
	cursor = p.subtitle(cursor, x, sizes, maxWidth)
	p.excerpt(cursor, x, sizes, maxWidth)
}

// badge draws the category label in a box sized from the measured text.
// Box treatment follows the style's badge mode; filled and glow modes get
// white text, outline and plain keep the accent color.
func (p *painter) badge(cursor, x float64, sizes style.TextSizes) float64 {
	label := p.req.Content.BadgeLabel()
	size := sizes.Date * p.scale

	padH := 40.0
	boxH := 60.0
	if p.story {
		padH, boxH = 50, 70
	}
	boxH *= p.scale

	boxW := p.c.MeasureText(label, style.WeightBold, size) + 2*padH
	boxX := x
	switch p.req.align() {
	case AlignCenter:
		boxX = x - boxW/2
	case AlignRight:
		boxX = x - boxW
	}

	accent := p.req.accent(p.st)
	textColor := accent
	switch p.st.Accent.BadgeMode {
	case style.BadgeFilled:
		p.c.FillRect(boxX, cursor, boxW, boxH, 8, accent, nil)
		textColor = color.RGBA{255, 255, 255, 255}
	case style.BadgeGlow:
		p.c.FillRect(boxX, cursor, boxW, boxH, 8, accent, &Shadow{
			Color: p.st.Effects.GlowColor,
			Blur:  20,
		})
		textColor = color.RGBA{255, 255, 255, 255}
	case style.BadgeOutline:
		p.c.StrokeRect(boxX, cursor, boxW, boxH, 2, accent)
	}

	p.c.DrawText(label, boxX+boxW/2, cursor+boxH/2+size*0.35, Text{
		Weight: style.WeightBold,
		Size:   size,
		Color:  textColor,
		Align:  AlignCenter,
	})
	return cursor + boxH + 40*p.scale
}

// dateLine renders the publish date as an uppercased long locale date.
func (p *painter) dateLine(cursor, x float64, sizes style.TextSizes) float64 {
	it := p.req.Content
	if it == nil || it.Published == nil {
		return cursor
	}
	size := sizes.Date * p.scale
	line := strings.ToUpper(content.FormatLongDate(*it.Published, it.Locale))
	p.c.DrawText(line, x, cursor+size, Text{
		Weight: style.WeightRegular,
		Size:   size,
		Color:  p.st.Typography.DateColor,
		Align:  p.req.align(),
	})
	return cursor + size*1.6
}

// authorLine renders "von {name}" in the accent color at 90% date size.
func (p *painter) authorLine(cursor, x float64, sizes style.TextSizes) float64 {
	it := p.req.Content
	if it == nil || it.Author == "" {
		return cursor
	}
	size := sizes.Date * 0.9 * p.scale
	p.c.DrawText("von "+it.Author, x, cursor+size, Text{
		Weight: style.WeightRegular,
		Size:   size,
		Color:  p.req.accent(p.st),
		Align:  p.req.align(),
	})
	return cursor + size*1.6
}

// title wraps and draws the uppercased title. More than 4 wrapped lines
// shrinks the font to 80% and re-wraps exactly once; there is no further
// iteration. Glow styles take a colored shadow and suppress the plain
// title shadow entirely.
func (p *painter) title(cursor, x float64, sizes style.TextSizes, maxWidth float64) float64 {
	text := strings.ToUpper(p.req.titleText())
	weight := p.st.Typography.TitleWeight
	size := sizes.Title * p.scale

	measure := func(s string) float64 { return p.c.MeasureText(s, weight, size) }
	lines := Wrap(measure, text, maxWidth)
	if len(lines) > 4 {
		size *= 0.8
		lines = Wrap(measure, text, maxWidth)
	}

	var shadow *Shadow
	switch {
	case p.st.Effects.Glow:
		shadow = &Shadow{Color: p.st.Effects.GlowColor, Blur: 25 * p.st.Effects.GlowIntensity}
	case p.st.Typography.TitleShadow:
		shadow = &Shadow{Color: color.RGBA{0, 0, 0, 217}, Blur: 18, OffsetY: 4}
	}

	cursor += 20 * p.scale
	lineHeight := size * 1.15
	t := Text{
		Weight: weight,
		Size:   size,
		Color:  p.st.Typography.TitleColor,
		Align:  p.req.align(),
		Shadow: shadow,
	}
	for _, line := range lines {
		p.c.DrawText(line, x, cursor+size, t)
		cursor += lineHeight
	}
	return cursor + 24*p.scale
}

// subtitle renders a single line, trimmed to the wrap width instead of
// wrapped.
func (p *painter) subtitle(cursor, x float64, sizes style.TextSizes, maxWidth float64) float64 {
	text := p.req.subtitleText()
	if text == "" {
		return cursor
	}
	weight := p.st.Typography.SubtitleWeight
	size := sizes.Subtitle * p.scale
	measure := func(s string) float64 { return p.c.MeasureText(s, weight, size) }
	p.c.DrawText(TruncateToWidth(measure, text, maxWidth), x, cursor+size, Text{
		Weight: weight,
		Size:   size,
		Color:  p.st.Typography.SubtitleColor,
		Align:  p.req.align(),
	})
	return cursor + size*1.5
}

// excerpt renders the override excerpt, wrapped narrower than the title
// and capped at three lines with a trailing ellipsis.
func (p *painter) excerpt(cursor, x float64, sizes style.TextSizes, maxWidth float64) {
	if !p.req.Advanced.ShowExcerpt || p.req.Overrides.Excerpt == "" {
		return
	}
	size := sizes.Excerpt * p.scale
	measure := func(s string) float64 { return p.c.MeasureText(s, style.WeightRegular, size) }
	lines := ellipsize(Wrap(measure, p.req.Overrides.Excerpt, maxWidth-40), 3)

	cursor += 16 * p.scale
	t := Text{
		Weight: style.WeightRegular,
		Size:   size,
		Color:  p.st.Typography.ExcerptColor,
		Align:  p.req.align(),
	}
	for _, line := range lines {
		p.c.DrawText(line, x, cursor+size, t)
		cursor += size * 1.45
	}
}

// titleText resolves the title: override, then content, then placeholder.
func (r *Request) titleText() string {
	if r.Overrides.Title != "" {
		return r.Overrides.Title
	}
	if r.Content != nil && r.Content.Title != "" {
		return r.Content.Title
	}
	return placeholderTitle
}

// subtitleText resolves the subtitle: override, then content, else empty.
func (r *Request) subtitleText() string {
	if r.Overrides.Subtitle != "" {
		return r.Overrides.Subtitle
	}
	if r.Content != nil {
		return r.Content.Subtitle
	}
	return ""
}
