package style

import (
	"image/color"
	"sort"

	"github.com/soundpress/gigcard/pkg/errors"
)

// Style keys.
const (
	StyleIndustrial = "industrial"
	StyleMinimal    = "minimal"
	StyleGradient   = "gradient"
	StyleBold       = "bold"
	StyleNeon       = "neon"
)

// registry is the fixed style catalog. Every entry populates all four
// parameter groups; the compositor relies on that.
var registry = map[string]Style{
	StyleIndustrial: {
		Key:   StyleIndustrial,
		Label: "Industrial",
		Background: Background{
			Base:           hex("#1a1a1a"),
			Gradient:       GradientNone,
			GradientStops:  nil,
			OverlayOpacity: 0.55,
		},
		Typography: Typography{
			Feed:           TextSizes{Title: 96, Subtitle: 44, Excerpt: 34, Date: 30},
			Story:          TextSizes{Title: 108, Subtitle: 48, Excerpt: 36, Date: 32},
			TitleWeight:    WeightBold,
			SubtitleWeight: WeightRegular,
			TitleColor:     hex("#f2f2f2"),
			SubtitleColor:  hex("#c8c8c8"),
			ExcerptColor:   hex("#a8a8a8"),
			DateColor:      hex("#8a8a8a"),
			TitleShadow:    true,
		},
		Accent: Accent{
			Color:         hex("#ff6a00"),
			BadgeMode:     BadgeFilled,
			CornerAccents: true,
		},
		Effects: Effects{
			Glow:          false,
			GlowColor:     hex("#ff6a00"),
			GlowIntensity: 0,
			Scanlines:     true,
		},
	},
	StyleMinimal: {
		Key:   StyleMinimal,
		Label: "Minimal",
		Background: Background{
			Base:           hex("#fafafa"),
			Gradient:       GradientNone,
			GradientStops:  nil,
			OverlayOpacity: 0.25,
		},
		Typography: Typography{
			Feed:           TextSizes{Title: 84, Subtitle: 40, Excerpt: 32, Date: 28},
			Story:          TextSizes{Title: 92, Subtitle: 44, Excerpt: 34, Date: 30},
			TitleWeight:    WeightBold,
			SubtitleWeight: WeightRegular,
			TitleColor:     hex("#121212"),
			SubtitleColor:  hex("#3c3c3c"),
			ExcerptColor:   hex("#565656"),
			DateColor:      hex("#787878"),
			TitleShadow:    false,
		},
		Accent: Accent{
			Color:         hex("#121212"),
			BadgeMode:     BadgeOutline,
			CornerAccents: false,
		},
		Effects: Effects{
			Glow:          false,
			GlowColor:     hex("#121212"),
			GlowIntensity: 0,
			Scanlines:     false,
		},
	},
	StyleGradient: {
		Key:   StyleGradient,
		Label: "Gradient",
		Background: Background{
			Base:           hex("#2d1b4e"),
			Gradient:       GradientLinear,
			GradientStops:  []color.RGBA{hex("#2d1b4ee0"), hex("#b83280b4"), hex("#ff8c4296")},
			OverlayOpacity: 0.5,
		},
		Typography: Typography{
			Feed:           TextSizes{Title: 92, Subtitle: 42, Excerpt: 34, Date: 30},
			Story:          TextSizes{Title: 104, Subtitle: 46, Excerpt: 36, Date: 32},
			TitleWeight:    WeightBold,
			SubtitleWeight: WeightRegular,
			TitleColor:     hex("#ffffff"),
			SubtitleColor:  hex("#f0e6ff"),
			ExcerptColor:   hex("#dcd0f0"),
			DateColor:      hex("#c4b5e0"),
			TitleShadow:    true,
		},
		Accent: Accent{
			Color:         hex("#ff8c42"),
			BadgeMode:     BadgeFilled,
			CornerAccents: false,
		},
		Effects: Effects{
			Glow:          false,
			GlowColor:     hex("#ff8c42"),
			GlowIntensity: 0,
			Scanlines:     false,
		},
	},
	StyleBold: {
		Key:   StyleBold,
		Label: "Bold",
		Background: Background{
			Base:           hex("#101010"),
			Gradient:       GradientNone,
			GradientStops:  nil,
			OverlayOpacity: 0.6,
		},
		Typography: Typography{
			Feed:           TextSizes{Title: 112, Subtitle: 48, Excerpt: 36, Date: 32},
			Story:          TextSizes{Title: 128, Subtitle: 52, Excerpt: 38, Date: 34},
			TitleWeight:    WeightBold,
			SubtitleWeight: WeightBold,
			TitleColor:     hex("#ffffff"),
			SubtitleColor:  hex("#e63946"),
			ExcerptColor:   hex("#d0d0d0"),
			DateColor:      hex("#9a9a9a"),
			TitleShadow:    true,
		},
		Accent: Accent{
			Color:         hex("#e63946"),
			BadgeMode:     BadgeFilled,
			CornerAccents: false,
		},
		Effects: Effects{
			Glow:          false,
			GlowColor:     hex("#e63946"),
			GlowIntensity: 0,
			Scanlines:     false,
		},
	},
	StyleNeon: {
		Key:   StyleNeon,
		Label: "Neon",
		Background: Background{
			Base:           hex("#0a0a18"),
			Gradient:       GradientRadial,
			GradientStops:  []color.RGBA{hex("#1b0a33b4"), hex("#0a0a1896")},
			OverlayOpacity: 0.65,
		},
		Typography: Typography{
			Feed:           TextSizes{Title: 92, Subtitle: 42, Excerpt: 34, Date: 30},
			Story:          TextSizes{Title: 102, Subtitle: 46, Excerpt: 36, Date: 32},
			TitleWeight:    WeightBold,
			SubtitleWeight: WeightRegular,
			TitleColor:     hex("#eafcff"),
			SubtitleColor:  hex("#9be8f5"),
			ExcerptColor:   hex("#7fc9d8"),
			DateColor:      hex("#5fa8b8"),
			TitleShadow:    false,
		},
		Accent: Accent{
			Color:         hex("#00f0ff"),
			BadgeMode:     BadgeGlow,
			CornerAccents: true,
		},
		Effects: Effects{
			Glow:          true,
			GlowColor:     hex("#00f0ff"),
			GlowIntensity: 0.8,
			Scanlines:     true,
		},
	},
}

// Get returns the style for key.
// Unknown keys are a caller programming error and fail loud; callers are
// expected to offer only registered keys through a closed selector.
func Get(key string) (Style, error) {
	s, ok := registry[key]
	if !ok {
		return Style{}, errors.New(errors.ErrCodeInvalidStyle, "unknown style: %q", key)
	}
	return s, nil
}

// Keys returns the registered style keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns all registered styles keyed by style key.
// The returned map is a copy; callers may not mutate the registry.
func All() map[string]Style {
	out := make(map[string]Style, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}
