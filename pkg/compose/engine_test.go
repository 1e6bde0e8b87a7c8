package compose

import (
	"context"
	"image"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/soundpress/gigcard/pkg/content"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/style"
)

// fakeLoader serves fixed images or a fixed error for both asset kinds.
type fakeLoader struct {
	hero image.Image
	logo image.Image
	err  error
}

func (f *fakeLoader) HeroImage(ctx context.Context, url string) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hero, nil
}

func (f *fakeLoader) Logo(ctx context.Context, ref string) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.logo, nil
}

func testItem() *content.Item {
	published := time.Date(2026, time.August, 9, 20, 0, 0, 0, time.UTC)
	return &content.Item{
		ID:        "rec-1",
		Type:      content.TypeConcertReport,
		Title:     "Die Nacht in der Grossen Freiheit",
		Subtitle:  "Ausverkauftes Konzert in Hamburg",
		ImageURL:  "https://cdn.example.com/hero.jpg",
		Author:    "Lena Berg",
		Published: &published,
		Locale:    "de",
	}
}

func renderOnto(t *testing.T, rec *Recorder, req Request, loader Loader) {
	t.Helper()
	if err := NewEngine(loader, nil).Render(context.Background(), rec, req); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestRenderUnknownKeys(t *testing.T) {
	rec := NewRecorder(1080, 1440)
	eng := NewEngine(nil, nil)

	err := eng.Render(context.Background(), rec, NewRequest(nil, style.FormatFeed, "vaporwave"))
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("unknown style: got %v, want INVALID_STYLE", err)
	}

	err = eng.Render(context.Background(), rec, NewRequest(nil, "square", style.StyleMinimal))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format: got %v, want INVALID_FORMAT", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("failed renders painted %d ops, want 0", len(rec.Ops))
	}
}

func TestRenderNilContentPlaceholders(t *testing.T) {
	rec := NewRecorder(1080, 1440)
	renderOnto(t, rec, NewRequest(nil, style.FormatFeed, style.StyleIndustrial), nil)

	texts := rec.Texts()
	wantTexts := []string{"NEWS", "TITEL HIER", "JETZT LESEN"}
	for _, want := range wantTexts {
		found := false
		for _, s := range texts {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("placeholder render missing text %q (got %v)", want, texts)
		}
	}
}

func TestRenderPaintOrder(t *testing.T) {
	// Base fill must come first and cover the whole surface; all text must
	// come after any gradient or scanline overlay.
	rec := NewRecorder(1080, 1920)
	renderOnto(t, rec, NewRequest(testItem(), style.FormatStory, style.StyleNeon), nil)

	first := rec.Ops[0]
	if first.Kind != "fillRect" || first.W != 1080 || first.H != 1920 {
		t.Fatalf("first op = %+v, want full-surface fillRect", first)
	}

	lastOverlay, firstText := -1, -1
	for i, op := range rec.Ops {
		switch op.Kind {
		case "radialGradient", "linearGradient":
			lastOverlay = i
		case "text":
			if firstText == -1 {
				firstText = i
			}
		}
	}
	if lastOverlay == -1 {
		t.Fatal("neon render painted no gradient overlay")
	}
	if firstText != -1 && firstText < lastOverlay {
		t.Errorf("text painted at op %d before overlay at op %d", firstText, lastOverlay)
	}
}

func TestRenderScanlines(t *testing.T) {
	rec := NewRecorder(1080, 1440)
	renderOnto(t, rec, NewRequest(nil, style.FormatFeed, style.StyleIndustrial), nil)

	bars := 0
	for _, op := range rec.Ops {
		if op.Kind == "fillRect" && op.H == 2 && op.W == 1080 {
			bars++
		}
	}
	if want := 1440 / 4; bars != want {
		t.Errorf("scanline bars = %d, want %d", bars, want)
	}
}

func TestRenderHeroImage(t *testing.T) {
	st, err := style.Get(style.StyleIndustrial)
	if err != nil {
		t.Fatal(err)
	}
	loader := &fakeLoader{hero: image.NewRGBA(image.Rect(0, 0, 2000, 900))}

	rec := NewRecorder(1080, 1440)
	renderOnto(t, rec, NewRequest(testItem(), style.FormatFeed, style.StyleIndustrial), loader)

	var heroOp *Op
	for i := range rec.Ops {
		if rec.Ops[i].Kind == "image" {
			heroOp = &rec.Ops[i]
			break
		}
	}
	if heroOp == nil {
		t.Fatal("no image op recorded for hero")
	}
	if heroOp.ImageW != 1080 || heroOp.ImageH != 1440 {
		t.Errorf("hero cover-fit = %dx%d, want 1080x1440", heroOp.ImageW, heroOp.ImageH)
	}
	if want := 1 - st.Background.OverlayOpacity; heroOp.Opacity != want {
		t.Errorf("hero opacity = %v, want %v", heroOp.Opacity, want)
	}
}

func TestRenderAssetFailureDegrades(t *testing.T) {
	loader := &fakeLoader{err: errors.New(errors.ErrCodeAssetLoad, "fetch failed")}

	req := NewRequest(testItem(), style.FormatStory, style.StyleIndustrial)
	req.Logo = Logo{Ref: "https://cdn.example.com/logo.png", Corner: CornerTopRight, Size: 200}

	rec := NewRecorder(1080, 1920)
	renderOnto(t, rec, req, loader)

	for _, op := range rec.Ops {
		if op.Kind == "image" {
			t.Errorf("failed assets still produced image op %+v", op)
		}
	}
	texts := strings.Join(rec.Texts(), "|")
	for _, want := range []string{"KONZERTBERICHT", "JETZT LESEN", "von Lena Berg"} {
		if !strings.Contains(texts, want) {
			t.Errorf("degraded render missing %q in %q", want, texts)
		}
	}
}

func TestRenderBadgeModes(t *testing.T) {
	tests := []struct {
		styleKey string
		wantKind string // box op kind expected right before the badge text
	}{
		{style.StyleIndustrial, "fillRect"}, // filled
		{style.StyleMinimal, "strokeRect"},  // outline
		{style.StyleNeon, "fillRect"},       // glow
	}
	for _, tt := range tests {
		t.Run(tt.styleKey, func(t *testing.T) {
			rec := NewRecorder(1080, 1440)
			renderOnto(t, rec, NewRequest(testItem(), style.FormatFeed, tt.styleKey), nil)

			for i, op := range rec.Ops {
				if op.Kind == "text" && op.Text == "KONZERTBERICHT" {
					if prev := rec.Ops[i-1]; prev.Kind != tt.wantKind {
						t.Errorf("badge box op = %q, want %q", prev.Kind, tt.wantKind)
					}
					return
				}
			}
			t.Fatal("badge text not painted")
		})
	}
}

func TestRenderTitleLineSpacing(t *testing.T) {
	item := testItem()
	item.Title = "Eine sehr lange Schlagzeile die auf jeden Fall ueber mehrere Zeilen im Feed Format laufen wird"

	rec := NewRecorder(1080, 1440)
	renderOnto(t, rec, NewRequest(item, style.FormatFeed, style.StyleBold), nil)

	var titleOps []Op
	for _, op := range rec.Ops {
		if op.Kind == "text" && strings.Contains(strings.ToUpper(item.Title), op.Text) && op.Text != "" {
			titleOps = append(titleOps, op)
		}
	}
	if len(titleOps) < 2 {
		t.Skipf("title wrapped to %d lines, need >=2 for spacing check", len(titleOps))
	}
	size := titleOps[0].Size
	for i, op := range titleOps {
		if op.Size != size {
			t.Fatalf("title line %d size = %v, want uniform %v", i, op.Size, size)
		}
		if i > 0 {
			gap := op.Y - titleOps[i-1].Y
			if want := size * 1.15; gap < want-0.01 || gap > want+0.01 {
				t.Errorf("line %d baseline gap = %v, want %v", i, gap, want)
			}
		}
	}
}

func TestRenderTitleShrink(t *testing.T) {
	// A title wrapping past 4 lines drops the font to 80% and re-wraps
	// once; the shrunken wrap is accepted as-is even when it still exceeds
	// 4 lines.
	st, err := style.Get(style.StyleBold)
	if err != nil {
		t.Fatal(err)
	}
	base := st.Typography.SizesFor(style.FormatFeed).Title

	item := testItem()
	item.Title = strings.TrimSpace(strings.Repeat("Die lange Nacht der Gitarrenwaende in der Grossen Freiheit ", 12))

	rec := NewRecorder(1080, 1440)
	renderOnto(t, rec, NewRequest(item, style.FormatFeed, style.StyleBold), nil)

	shrunk := 0
	for _, op := range rec.Ops {
		if op.Kind != "text" {
			continue
		}
		if op.Size == base {
			t.Fatalf("title line %q painted at full size %v", op.Text, base)
		}
		if op.Size == base*0.8 {
			shrunk++
		}
	}
	if shrunk <= 4 {
		t.Errorf("shrunken title lines = %d, want > 4 (no second shrink)", shrunk)
	}
}

func TestRenderUnexpectedLoaderErrorFails(t *testing.T) {
	// Only degradable loader failures are absorbed at the element
	// boundary; anything else aborts the render.
	loader := &fakeLoader{err: errors.New(errors.ErrCodeInternal, "loader broke")}
	rec := NewRecorder(1080, 1440)
	err := NewEngine(loader, nil).Render(context.Background(), rec, NewRequest(testItem(), style.FormatFeed, style.StyleIndustrial))
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("Render() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestRenderExcerptRules(t *testing.T) {
	excerptText := "Der Abend begann"

	req := NewRequest(testItem(), style.FormatFeed, style.StyleMinimal)
	req.Overrides.Excerpt = excerptText
	rec := NewRecorder(1080, 1440)
	renderOnto(t, rec, req, nil)
	for _, s := range rec.Texts() {
		if strings.Contains(s, "Der Abend") {
			t.Errorf("excerpt painted with toggle off: %q", s)
		}
	}

	req.Advanced.ShowExcerpt = true
	req.Overrides.Excerpt = ""
	rec = NewRecorder(1080, 1440)
	renderOnto(t, rec, req, nil)
	for _, s := range rec.Texts() {
		if strings.Contains(s, "Der Abend") {
			t.Errorf("excerpt painted with empty override: %q", s)
		}
	}

	req.Overrides.Excerpt = excerptText
	rec = NewRecorder(1080, 1440)
	renderOnto(t, rec, req, nil)
	found := false
	for _, s := range rec.Texts() {
		if strings.Contains(s, "Der Abend") {
			found = true
		}
	}
	if !found {
		t.Error("excerpt missing with toggle on and override set")
	}
}

func TestRenderDeterministic(t *testing.T) {
	// Two renders of the same request must record identical instruction
	// streams; this is the layout half of cross-target parity.
	req := NewRequest(testItem(), style.FormatStory, style.StyleGradient)
	req.Advanced.Watermark = true
	req.Advanced.QRPlaceholder = true
	req.Advanced.Anchor = AnchorBottom
	req.Advanced.Align = AlignCenter

	a := NewRecorder(1080, 1920)
	b := NewRecorder(1080, 1920)
	renderOnto(t, a, req, nil)
	renderOnto(t, b, req, nil)

	if !reflect.DeepEqual(a.Ops, b.Ops) {
		t.Error("identical requests recorded different instruction streams")
	}
}

func TestRenderAnchors(t *testing.T) {
	// The badge is the first text-stack element; its box y reveals the
	// effective anchor.
	badgeY := func(anchor Anchor) float64 {
		req := NewRequest(testItem(), style.FormatStory, style.StyleIndustrial)
		req.Advanced.Anchor = anchor
		rec := NewRecorder(1080, 1920)
		renderOnto(t, rec, req, nil)
		for i, op := range rec.Ops {
			if op.Kind == "text" && op.Text == "KONZERTBERICHT" {
				return rec.Ops[i-1].Y // badge box
			}
		}
		t.Fatal("badge not painted")
		return 0
	}

	if got := badgeY(AnchorTop); got != 140 {
		t.Errorf("top anchor badge y = %v, want 140", got)
	}
	if got := badgeY(AnchorCenter); got != 1920/2-200 {
		t.Errorf("center anchor badge y = %v, want %v", got, 1920/2-200)
	}
	if got := badgeY(AnchorBottom); got != 1920-140-450 {
		t.Errorf("bottom anchor badge y = %v, want %v", got, 1920-140-450)
	}
}

func TestRenderCTAPosition(t *testing.T) {
	ctaY := func(format style.Key, w, h float64) float64 {
		rec := NewRecorder(w, h)
		renderOnto(t, rec, NewRequest(nil, format, style.StyleMinimal), nil)
		for i, op := range rec.Ops {
			if op.Kind == "text" && op.Text == "JETZT LESEN" {
				return rec.Ops[i-1].Y // pill rect
			}
		}
		t.Fatal("CTA not painted")
		return 0
	}

	if got := ctaY(style.FormatFeed, 1080, 1440); got != 1440-260 {
		t.Errorf("feed CTA y = %v, want %v", got, 1440-260)
	}
	if got := ctaY(style.FormatStory, 1080, 1920); got != 1920-320 {
		t.Errorf("story CTA y = %v, want %v", got, 1920-320)
	}
}
