package main

import (
	"log/slog"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/pdf"
	"github.com/tartampluch/go-calendar/internal/ui"
)

func (c *cli) guiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdGUI,
		Short: config.CmdGUIShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			themes, err := c.themes()
			if err != nil {
				return err
			}

			a := app.NewWithID(config.AppID)
			a.Preferences().SetString(config.PrefLastRun, config.Version)

			gen := &engine.Generator{
				Clock:      c.clock,
				Themes:     themes,
				Rasterizer: pdf.NewChromeRasterizer(c.settings.ChromePath),
			}
			loader := engine.NewLoader(engine.NewHTTPFetcher())
			gui := ui.NewCalendarApp(a, ctx, events.NewStore(), loader, gen)

			// Quit the UI loop when the process is interrupted.
			go func() {
				<-ctx.Done()
				slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
				a.Quit()
			}()

			gui.Run()
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	return cmd
}
