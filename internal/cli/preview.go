package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/soundpress/gigcard/pkg/compose"
	"github.com/soundpress/gigcard/pkg/pipeline"
	"github.com/soundpress/gigcard/pkg/preview"
	"github.com/soundpress/gigcard/pkg/style"
)

// previewCommand creates the "preview" command: an interactive terminal UI
// that re-renders the graphic on every settings change, debounced so rapid
// key presses collapse into one render.
func (c *CLI) previewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "preview [content.json]",
		Short: "Interactive preview with live style switching",
		Long: `Preview renders the graphic to a file and re-renders it live while you
cycle styles, formats, alignment, and anchor from the keyboard. Point an
image viewer with auto-reload at the output file to watch changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			opts := pipeline.Options{Logger: c.Logger}
			if len(args) == 1 {
				opts.ContentPath = args[0]
			}

			ctx, cancel := context.WithCancel(withLogger(cmd.Context(), c.Logger))
			defer cancel()

			var prog *tea.Program
			render := func(ctx context.Context, opts pipeline.Options) {
				start := time.Now()
				result, err := runner.Execute(ctx, opts)
				if err == nil {
					err = os.WriteFile(output, result.PNG, 0o644)
				}
				loggerFromContext(ctx).Debug("preview render finished",
					"style", opts.Style, "format", opts.Format, "err", err)
				if prog != nil {
					prog.Send(renderDoneMsg{err: err, duration: time.Since(start)})
				}
			}

			driver := preview.New(preview.DebounceDelay, render)
			go driver.Run(ctx)

			model := newPreviewModel(driver, opts, output)
			prog = tea.NewProgram(model)
			_, err = prog.Run()
			cancel()
			driver.Wait()
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "preview.png", "output PNG path, rewritten on every change")
	return cmd
}

// renderDoneMsg reports a finished background render to the TUI.
type renderDoneMsg struct {
	err      error
	duration time.Duration
}

var (
	previewAnchors = []compose.Anchor{compose.AnchorTop, compose.AnchorCenter, compose.AnchorBottom}
	previewAligns  = []compose.Align{compose.AlignLeft, compose.AlignCenter, compose.AlignRight}
	previewBlurs   = []float64{0, 10, 25}
)

// previewModel is the bubbletea model for the interactive preview.
type previewModel struct {
	driver *preview.Driver
	opts   pipeline.Options
	output string

	styleIdx  int
	formatIdx int
	alignIdx  int
	anchorIdx int
	blurIdx   int

	renders  int
	lastErr  error
	lastTime time.Duration
	pending  bool
}

func newPreviewModel(driver *preview.Driver, opts pipeline.Options, output string) previewModel {
	return previewModel{driver: driver, opts: opts, output: output}
}

func (m previewModel) Init() tea.Cmd {
	m.push()
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderDoneMsg:
		m.renders++
		m.lastErr = msg.err
		m.lastTime = msg.duration
		m.pending = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "s":
			m.styleIdx = (m.styleIdx + 1) % len(style.Keys())
		case "S":
			m.styleIdx = (m.styleIdx + len(style.Keys()) - 1) % len(style.Keys())
		case "f":
			m.formatIdx = (m.formatIdx + 1) % len(style.FormatKeys())
		case "a":
			m.alignIdx = (m.alignIdx + 1) % len(previewAligns)
		case "p":
			m.anchorIdx = (m.anchorIdx + 1) % len(previewAnchors)
		case "b":
			m.blurIdx = (m.blurIdx + 1) % len(previewBlurs)
		case "w":
			m.opts.Advanced.Watermark = !m.opts.Advanced.Watermark
		case "x":
			m.opts.Advanced.QRPlaceholder = !m.opts.Advanced.QRPlaceholder
		case "+":
			if m.opts.Advanced.TextScale == 0 {
				m.opts.Advanced.TextScale = 100
			}
			m.opts.Advanced.TextScale += 10
		case "-":
			if m.opts.Advanced.TextScale == 0 {
				m.opts.Advanced.TextScale = 100
			}
			if m.opts.Advanced.TextScale > 35 {
				m.opts.Advanced.TextScale -= 10
			}
		default:
			return m, nil
		}
		m.pending = true
		m.push()
		return m, nil
	}
	return m, nil
}

// push feeds the current settings into the debounced driver.
func (m previewModel) push() {
	opts := m.opts
	opts.Style = style.Keys()[m.styleIdx]
	opts.Format = string(style.FormatKeys()[m.formatIdx])
	opts.Advanced.Align = previewAligns[m.alignIdx]
	opts.Advanced.Anchor = previewAnchors[m.anchorIdx]
	opts.Advanced.BlurRadius = previewBlurs[m.blurIdx]
	m.driver.Update(opts)
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Gigcard Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("s style  f format  a align  p position  b blur  w watermark  x qr  +/- scale  q quit"))
	b.WriteString("\n\n")

	scale := m.opts.Advanced.TextScale
	if scale == 0 {
		scale = 100
	}
	rows := [][2]string{
		{"style", style.Keys()[m.styleIdx]},
		{"format", string(style.FormatKeys()[m.formatIdx])},
		{"align", string(previewAligns[m.alignIdx])},
		{"position", string(previewAnchors[m.anchorIdx])},
		{"blur", fmt.Sprintf("%.0f", previewBlurs[m.blurIdx])},
		{"scale", fmt.Sprintf("%.0f%%", scale)},
		{"watermark", onOff(m.opts.Advanced.Watermark)},
		{"qr", onOff(m.opts.Advanced.QRPlaceholder)},
		{"output", m.output},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleDim.Width(10).Render(row[0]),
			StyleValue.Render(row[1])))
	}

	b.WriteString("\n")
	switch {
	case m.pending:
		b.WriteString(StyleDim.Render("  rendering..."))
	case m.lastErr != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.lastErr.Error())
	case m.renders > 0:
		b.WriteString(styleIconSuccess.Render(iconSuccess) +
			StyleDim.Render(fmt.Sprintf(" render %d in %s", m.renders, m.lastTime.Round(time.Millisecond))))
	}
	b.WriteString("\n")
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
