package cli

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soundpress/gigcard/pkg/compose"
	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/pipeline"
	"github.com/soundpress/gigcard/pkg/style"
)

// renderFlags collects every flag of the render command.
type renderFlags struct {
	output   string
	format   string
	styleKey string

	title    string
	subtitle string
	excerpt  string
	accent   string

	scale     float64
	anchor    string
	align     string
	blur      float64
	watermark bool
	wmText    string
	qr        bool

	logoRef     string
	logoCorner  string
	logoSize    float64
	logoOpacity float64

	borderWidth float64
	borderColor string

	refresh bool
	noCache bool
}

// renderCommand creates the "render" command: one content record in, one
// PNG out.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [content.json]",
		Short: "Export a content record as a PNG graphic",
		Long: `Render exports one content record as a branded social graphic.

The content file is a JSON projection of a CMS document (id, type, title,
subtitle, image, categories, author, published, locale). Without a file
the graphic renders with placeholder text, which is useful for style
checks.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			if cfg, err := c.Config(); err == nil {
				if cfg.Style != "" && !cmd.Flags().Changed("style") {
					f.styleKey = cfg.Style
				}
				if cfg.Format != "" && !cmd.Flags().Changed("format") {
					f.format = cfg.Format
				}
				if cfg.Output != "" && !cmd.Flags().Changed("output") {
					f.output = cfg.Output
				}
			}

			opts, err := f.options(args)
			if err != nil {
				return err
			}
			opts.Logger = c.Logger

			runner, err := c.newRunner(f.noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			prog := newProgress(c.Logger)
			spin := newSpinnerWithContext(ctx, "rendering graphic")
			spin.Start()
			result, err := runner.Execute(ctx, opts)
			spin.Stop()
			if err != nil {
				printError("Render failed: %s", errors.UserMessage(err))
				return err
			}

			if err := os.WriteFile(f.output, result.PNG, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", f.output, err)
			}
			prog.done(fmt.Sprintf("Exported %s graphic", opts.Format))

			printSuccess("Rendered %s / %s", opts.Style, opts.Format)
			printFile(f.output)
			printStats(result.Stats.Bytes, result.Stats.CacheHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "gigcard.png", "output PNG path")
	cmd.Flags().StringVar(&f.format, "format", "feed", "graphic format (feed, story)")
	cmd.Flags().StringVar(&f.styleKey, "style", style.StyleIndustrial, "style key ("+strings.Join(style.Keys(), ", ")+")")

	cmd.Flags().StringVar(&f.title, "title", "", "override title text")
	cmd.Flags().StringVar(&f.subtitle, "subtitle", "", "override subtitle text")
	cmd.Flags().StringVar(&f.excerpt, "excerpt", "", "excerpt text (enables the excerpt block)")
	cmd.Flags().StringVar(&f.accent, "accent", "", "override accent color (#rrggbb)")

	cmd.Flags().Float64Var(&f.scale, "scale", 100, "text scale percentage")
	cmd.Flags().StringVar(&f.anchor, "anchor", "top", "text block anchor (top, center, bottom)")
	cmd.Flags().StringVar(&f.align, "align", "left", "text alignment (left, center, right)")
	cmd.Flags().Float64Var(&f.blur, "blur", 0, "background image blur radius")
	cmd.Flags().BoolVar(&f.watermark, "watermark", false, "draw the watermark line")
	cmd.Flags().StringVar(&f.wmText, "watermark-text", "", "watermark text")
	cmd.Flags().BoolVar(&f.qr, "qr", false, "draw the QR code placeholder")

	cmd.Flags().StringVar(&f.logoRef, "logo", "", "logo image (URL or data: URI)")
	cmd.Flags().StringVar(&f.logoCorner, "logo-corner", "topRight", "logo corner (topLeft, topRight, bottomLeft, bottomRight)")
	cmd.Flags().Float64Var(&f.logoSize, "logo-size", 160, "logo width in pixels (never upscaled)")
	cmd.Flags().Float64Var(&f.logoOpacity, "logo-opacity", 1, "logo opacity [0,1]")

	cmd.Flags().Float64Var(&f.borderWidth, "border", 0, "border width in pixels (0 disables)")
	cmd.Flags().StringVar(&f.borderColor, "border-color", "#ffffff", "border color (#rrggbb)")

	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass and overwrite the render cache")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

// options maps the flag values onto pipeline options.
func (f *renderFlags) options(args []string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Format:  f.format,
		Style:   f.styleKey,
		Refresh: f.refresh,
		Overrides: compose.Overrides{
			Title:    f.title,
			Subtitle: f.subtitle,
			Excerpt:  f.excerpt,
		},
		Advanced: compose.Advanced{
			TextScale:     f.scale,
			Anchor:        compose.Anchor(f.anchor),
			Align:         compose.Align(f.align),
			BlurRadius:    f.blur,
			Watermark:     f.watermark,
			WatermarkText: f.wmText,
			QRPlaceholder: f.qr,
			ShowExcerpt:   f.excerpt != "",
		},
	}
	if len(args) == 1 {
		opts.ContentPath = args[0]
	}

	if f.accent != "" {
		c, err := parseHexColor(f.accent)
		if err != nil {
			return opts, err
		}
		opts.Overrides.AccentColor = &c
	}

	if f.logoRef != "" {
		opts.Logo = compose.Logo{
			Ref:     f.logoRef,
			Corner:  compose.LogoCorner(f.logoCorner),
			Size:    f.logoSize,
			Opacity: f.logoOpacity,
		}
	}

	if f.borderWidth > 0 {
		c, err := parseHexColor(f.borderColor)
		if err != nil {
			return opts, err
		}
		opts.Advanced.Border = compose.Border{Enabled: true, Width: f.borderWidth, Color: c}
	}

	return opts, nil
}

// parseHexColor parses #rrggbb or #rrggbbaa.
func parseHexColor(s string) (color.RGBA, error) {
	hexPart := strings.TrimPrefix(s, "#")
	if len(hexPart) != 6 && len(hexPart) != 8 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q, want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hexPart, 16, 64)
	if err != nil {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q, want #rrggbb", s)
	}
	if len(hexPart) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
