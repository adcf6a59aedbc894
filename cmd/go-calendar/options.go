package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/page"
)

func (c *cli) optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdOptions,
		Short: config.CmdOptionsShort,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			themes, err := c.themes()
			if err != nil {
				return err
			}

			sizes := make([]string, len(page.Sizes))
			for i, s := range page.Sizes {
				sizes[i] = string(s)
			}
			positions := make([]string, len(document.Positions))
			for i, p := range document.Positions {
				positions[i] = string(p)
			}
			alignments := make([]string, len(document.Alignments))
			for i, a := range document.Alignments {
				alignments[i] = string(a)
			}

			rows := []struct {
				label  string
				values []string
			}{
				{config.OptLabelThemes, themes.Names()},
				{config.OptLabelLayouts, layout.Names()},
				{config.OptLabelPageSizes, sizes},
				{config.OptLabelFormats, []string{config.FormatPDF, config.FormatHTML}},
				{config.OptLabelLogoPositions, positions},
				{config.OptLabelLogoAligns, alignments},
			}
			for _, r := range rows {
				fmt.Fprintf(c.out, config.OutOptionRow, r.label, strings.Join(r.values, config.ListSeparator))
			}
			return nil
		},
	}
}
