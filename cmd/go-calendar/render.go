package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/pdf"
)

// renderArgs are the positional arguments of the render command.
type renderArgs struct {
	Month    int // 0-11
	Year     int
	Theme    string
	Layout   layout.Kind
	PageSize string
}

// parseRenderArgs reads [month] [year] [theme] [layout] [pageSize]. Missing
// arguments default to the current month and year and the stock options.
func parseRenderArgs(args []string, now time.Time) (renderArgs, error) {
	ra := renderArgs{
		Month:    int(now.Month()) - 1,
		Year:     now.Year(),
		Theme:    config.DefaultTheme,
		Layout:   layout.Fortnight,
		PageSize: config.DefaultPageSize,
	}

	if len(args) > 0 {
		m, err := strconv.Atoi(args[0])
		if err != nil {
			return ra, fmt.Errorf("%s: %q", config.ErrMonthRange, args[0])
		}
		if err := config.ValidateMonth(m); err != nil {
			return ra, err
		}
		ra.Month = m - 1
	}
	if len(args) > 1 {
		y, err := strconv.Atoi(args[1])
		if err != nil {
			return ra, fmt.Errorf("%s: %q", config.ErrInvalidYear, args[1])
		}
		if err := config.ValidateYear(y); err != nil {
			return ra, err
		}
		ra.Year = y
	}
	if len(args) > 2 {
		ra.Theme = args[2]
	}
	if len(args) > 3 {
		v, err := layout.Lookup(args[3])
		if err != nil {
			return ra, err
		}
		ra.Layout = v.Kind()
	}
	if len(args) > 4 {
		ra.PageSize = args[4]
	}
	return ra, nil
}

type renderFlags struct {
	events    string
	vcard     string
	image     string
	logo      string
	logoPos   string
	logoAlign string
	output    string
	format    string
}

func (c *cli) renderCmd() *cobra.Command {
	var rf renderFlags

	cmd := &cobra.Command{
		Use:     config.CmdRender,
		Short:   config.CmdRenderShort,
		Example: config.CmdRenderExample,
		Args:    cobra.MaximumNArgs(config.RenderMaxArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, rf)
		},
	}

	f := cmd.Flags()
	f.StringVar(&rf.events, config.FlagEvents, "", config.FlagDescEvents)
	f.StringVar(&rf.vcard, config.FlagVCard, "", config.FlagDescVCard)
	f.StringVar(&rf.image, config.FlagImage, "", config.FlagDescImage)
	f.StringVar(&rf.logo, config.FlagLogo, "", config.FlagDescLogo)
	f.StringVar(&rf.logoPos, config.FlagLogoPos, string(document.PositionAuto), config.FlagDescLogoPos)
	f.StringVar(&rf.logoAlign, config.FlagLogoAlign, string(document.AlignRight), config.FlagDescLogoAlign)
	f.StringVarP(&rf.output, config.FlagOutput, "o", "", config.FlagDescOutput)
	f.StringVar(&rf.format, config.FlagFormat, config.FormatPDF, config.FlagDescFormat)
	cmd.MarkFlagsMutuallyExclusive(config.FlagEvents, config.FlagVCard)
	return cmd
}

func (c *cli) runRender(cmd *cobra.Command, args []string, rf renderFlags) error {
	ra, err := parseRenderArgs(args, c.clock.Now())
	if err != nil {
		return err
	}
	pos, err := document.ParsePosition(rf.logoPos)
	if err != nil {
		return err
	}
	align, err := document.ParseAlignment(rf.logoAlign)
	if err != nil {
		return err
	}

	store, err := c.renderStore(cmd, rf)
	if err != nil {
		return err
	}
	themes, err := c.themes()
	if err != nil {
		return err
	}

	job := engine.Job{
		Month: ra.Month,
		Year:  ra.Year,
		Options: document.Options{
			Theme:        ra.Theme,
			Layout:       ra.Layout,
			PageSize:     ra.PageSize,
			Image:        engine.ReadAsset(rf.image, document.ImageAsset),
			Logo:         engine.ReadAsset(rf.logo, document.LogoAsset),
			LogoPosition: pos,
			LogoAlign:    align,
		},
		Format: rf.format,
	}

	gen := &engine.Generator{Clock: c.clock, Themes: themes}
	if job.Format == config.FormatPDF {
		gen.Rasterizer = pdf.NewChromeRasterizer(c.settings.ChromePath)
	}

	res, err := gen.Generate(cmd.Context(), store, job)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		slog.Warn(config.MsgRenderWarning, config.LogKeyComponent, config.CompMain, config.LogKeyWarning, w.String())
		fmt.Fprintf(cmd.ErrOrStderr(), config.OutWarning, w.String())
	}

	out := rf.output
	if out == "" {
		out = engine.OutputName(job)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, config.PermUserRWX); err != nil {
			return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
		}
	}

	data := res.HTML
	if job.Format == config.FormatPDF {
		data = res.PDF
	}
	if err := os.WriteFile(out, data, config.PermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}

	fmt.Fprintf(c.out, config.OutRendered, res.Document.Title, out)
	return nil
}

// renderStore loads the events named by --events or --vcard, falling back
// to the configured events file. No source renders a calendar without events.
func (c *cli) renderStore(cmd *cobra.Command, rf renderFlags) (*events.Store, error) {
	store := events.NewStore()

	src := engine.Source{Mode: config.SourceModeLocal}
	switch {
	case rf.vcard != "":
		src.Path, src.Format = rf.vcard, config.FormatVCard
	case rf.events != "":
		src.Path, src.Format = rf.events, config.FormatJSON
	case c.settings.EventsPath != "":
		src.Path = c.settings.EventsPath
	default:
		return store, nil
	}

	if err := engine.NewLoader(nil).Load(cmd.Context(), store, src); err != nil {
		return nil, err
	}
	return store, nil
}
