package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/eventdb"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/pdf"
	"github.com/tartampluch/go-calendar/internal/server"
	"golang.org/x/sync/errgroup"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdServe,
		Short: config.CmdServeShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runServe(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.String(config.FlagHost, config.LocalhostBindAddr, config.FlagDescHost)
	f.StringP(config.FlagPort, "p", config.DefaultPort, config.FlagDescPort)
	f.String(config.FlagDB, "", config.FlagDescDB)
	f.String(config.FlagEvents, "", config.FlagDescEvents)
	f.Bool(config.FlagWatch, false, config.FlagDescWatch)
	c.bind(f, config.KeyHost, config.FlagHost)
	c.bind(f, config.KeyPort, config.FlagPort)
	c.bind(f, config.KeyDB, config.FlagDB)
	c.bind(f, config.KeyEvents, config.FlagEvents)
	c.bind(f, config.KeyWatch, config.FlagWatch)
	return cmd
}

// runServe starts the API and, when asked, the events file watcher. Both
// stop when ctx is cancelled.
func (c *cli) runServe(ctx context.Context) error {
	s := c.settings
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}
	themes, err := c.themes()
	if err != nil {
		return err
	}

	store := events.NewStore()

	var db *eventdb.DB
	if s.DBPath != "" {
		db, err = eventdb.Open(s.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		if err := db.LoadInto(ctx, store); err != nil {
			return err
		}
	}

	if s.EventsPath != "" && store.Len() == 0 {
		if err := c.seedStore(ctx, store, db); err != nil {
			return err
		}
	}

	srv := server.NewCalendarServer(s.Port, store)
	srv.Host = s.Host
	srv.Themes = themes
	srv.Rasterizer = pdf.NewChromeRasterizer(s.ChromePath)
	srv.Clock = c.clock
	srv.DB = db

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(ctx) })

	if s.Watch && s.EventsPath != "" {
		w := engine.NewWatcher(s.EventsPath, store)
		if db != nil {
			w.OnReload = func(err error) {
				if err != nil {
					return
				}
				if err := db.SaveAll(ctx, store.Snapshot()); err != nil {
					slog.Error(config.MsgDBSaveFailed, config.LogKeyComponent, config.CompMain, config.LogKeyError, err)
				}
			}
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	return g.Wait()
}

// seedStore loads the events file into store and, with a database, stores
// the result so later runs start from it.
func (c *cli) seedStore(ctx context.Context, store *events.Store, db *eventdb.DB) error {
	src := engine.Source{Mode: config.SourceModeLocal, Path: c.settings.EventsPath}
	if err := engine.NewLoader(nil).Load(ctx, store, src); err != nil {
		return fmt.Errorf("%s: %w", config.ErrSeedEvents, err)
	}
	if db == nil {
		return nil
	}
	return db.SaveAll(ctx, store.Snapshot())
}
