package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/soundpress/gigcard/pkg/style"
)

// stylesCommand creates the "styles" command listing both registries.
func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List registered styles and formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := style.All()

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("KEY", "LABEL", "BADGE", "GRADIENT", "EFFECTS")
			for _, key := range style.Keys() {
				st := all[key]
				var fx []byte
				if st.Effects.Glow {
					fx = append(fx, 'g')
				}
				if st.Effects.Scanlines {
					fx = append(fx, 's')
				}
				if st.Accent.CornerAccents {
					fx = append(fx, 'c')
				}
				effects := string(fx)
				if effects == "" {
					effects = "-"
				}
				t.Row(key, st.Label, string(st.Accent.BadgeMode), string(st.Background.Gradient), effects)
			}
			fmt.Println(StyleTitle.Render("Styles"))
			fmt.Println(t)
			printDetail("effects: g glow · s scanlines · c corner accents")

			formats := style.Formats()
			ft := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(StyleDim).
				Headers("KEY", "LABEL", "SIZE")
			for _, key := range style.FormatKeys() {
				f := formats[key]
				ft.Row(string(f.Key), f.Label, fmt.Sprintf("%dx%d", f.Width, f.Height))
			}
			fmt.Println(StyleTitle.Render("Formats"))
			fmt.Println(ft)
			return nil
		},
	}
}
