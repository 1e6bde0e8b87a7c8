// Package fonts provides process-wide font registration and measurement for
// the rendering engine.
//
// Registration is lazy, idempotent, and shared by every render target: the
// first call locates a sans-serif TrueType font on the local system (or uses
// an explicitly configured file) and parses it once. Subsequent calls are
// no-ops. Rendering never blocks on fonts: when no usable TrueType font can
// be found, a built-in bitmap face is used instead and renders degrade
// rather than fail.
//
// Both the interactive and the batch render paths measure text through this
// package, which is what keeps their line-breaking math identical.
package fonts

import (
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/style"
)

const fontDPI = 72

// Candidate system fonts, tried in order. All are metrically reasonable
// sans-serif faces commonly present on Linux, macOS, and Windows.
var (
	regularCandidates = []string{
		"DejaVuSans.ttf",
		"LiberationSans-Regular.ttf",
		"Arial.ttf",
		"Helvetica.ttf",
		"NotoSans-Regular.ttf",
	}
	boldCandidates = []string{
		"DejaVuSans-Bold.ttf",
		"LiberationSans-Bold.ttf",
		"Arial Bold.ttf",
		"Arialbd.ttf",
		"NotoSans-Bold.ttf",
	}
)

var (
	registerOnce sync.Once
	registerErr  error

	regular *truetype.Font
	bold    *truetype.Font

	// Freetype faces mutate an internal glyph buffer on every operation,
	// so the measuring faces are confined behind one mutex. The parsed
	// fonts themselves are read-only and shared freely.
	measureMu    sync.Mutex
	measureFaces = map[faceKey]font.Face{}
)

type faceKey struct {
	weight style.Weight
	size   float64
}

// Register parses the rendering fonts. The first caller wins; later calls
// (from any render target) return the first call's result without redoing
// any work.
//
// If path is non-empty it is used for both weights. Otherwise the system
// font directories are searched. A FONT_LOAD error means rendering will
// proceed on the built-in fallback face; callers log it, they do not abort.
func Register(path string) error {
	registerOnce.Do(func() {
		if path != "" {
			f, err := parseFile(path)
			if err != nil {
				registerErr = errors.Wrap(errors.ErrCodeFontLoad, err, "parse font %s", path)
				return
			}
			regular, bold = f, f
			return
		}

		regular = findFirst(regularCandidates)
		bold = findFirst(boldCandidates)
		if bold == nil {
			bold = regular
		}
		if regular == nil {
			registerErr = errors.New(errors.ErrCodeFontLoad, "no usable system font found, falling back to built-in face")
		}
	})
	return registerErr
}

// Registered reports whether a TrueType font is available (as opposed to
// the bitmap fallback).
func Registered() bool {
	return regular != nil
}

// Face returns a new font face for the given weight and pixel size. The
// face belongs to the caller and is not safe for concurrent use; each
// render target builds its own faces from the shared parsed font.
//
// If Register has not been called, or found no font, the built-in bitmap
// face is returned so drawing always has a face to work with.
func Face(w style.Weight, size float64) font.Face {
	f := fontFor(w)
	if f == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}

// Measure returns the advance width of s in pixels at the given weight and
// size. This is the single measurement used for word wrapping in every
// render target. Measurement holds a package mutex across the glyph
// lookup, so any goroutine may measure at any time.
func Measure(w style.Weight, size float64, s string) float64 {
	measureMu.Lock()
	defer measureMu.Unlock()

	key := faceKey{weight: w, size: size}
	face, ok := measureFaces[key]
	if !ok {
		face = Face(w, size)
		measureFaces[key] = face
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64.0
}

func fontFor(w style.Weight) *truetype.Font {
	if w == style.WeightBold && bold != nil {
		return bold
	}
	return regular
}

func findFirst(candidates []string) *truetype.Font {
	for _, name := range candidates {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		f, err := parseFile(path)
		if err != nil {
			continue
		}
		return f
	}
	return nil
}

func parseFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}
