package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/eventdb"
	"github.com/tartampluch/go-calendar/internal/events"
)

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   config.CmdEvents,
		Short: config.CmdEventsShort,
	}
	cmd.AddCommand(c.eventsImportCmd(), c.eventsExportICSCmd(), c.eventsListCmd())
	return cmd
}

// eventsImportCmd converts an address book into an events JSON document.
func (c *cli) eventsImportCmd() *cobra.Command {
	var output, dbPath string

	cmd := &cobra.Command{
		Use:   config.CmdEventsImport,
		Short: config.CmdEventsImportShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrSourceOpen, err)
			}
			defer func() { _ = f.Close() }()

			imported, err := engine.ImportVCards(cmd.Context(), f)
			if err != nil {
				return err
			}
			store := events.NewStore()
			if err := store.Replace(imported.Records); err != nil {
				return err
			}

			if dbPath != "" {
				db, err := eventdb.Open(dbPath)
				if err != nil {
					return err
				}
				defer func() { _ = db.Close() }()
				if err := db.SaveAll(cmd.Context(), store.Snapshot()); err != nil {
					return err
				}
			}

			if err := c.writeTo(output, store.Save); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), config.OutImported,
				imported.Stats.Dates, imported.Stats.Cards, imported.Stats.Duplicates, imported.Stats.Skipped)
			for _, contact := range imported.Contacts {
				printContact(cmd.ErrOrStderr(), contact)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutputStdout)
	cmd.Flags().StringVar(&dbPath, config.FlagDB, "", config.FlagDescDB)
	return cmd
}

// printContact writes one imported date as key, category, name, origin year
// and UID.
func printContact(w io.Writer, contact engine.Contact) {
	year := config.OutNoYear
	if contact.OriginYear != 0 {
		year = strconv.Itoa(contact.OriginYear)
	}
	fmt.Fprintf(w, config.OutContactRow, contact.Key, contact.Category, contact.Name, year, contact.UID)
}

// eventsExportICSCmd publishes an events file as an iCalendar feed.
func (c *cli) eventsExportICSCmd() *cobra.Command {
	var output string
	var year int

	cmd := &cobra.Command{
		Use:   config.CmdEventsExportICS,
		Short: config.CmdEventsExportICSShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = c.clock.Now().Year()
			}
			if err := config.ValidateYear(year); err != nil {
				return err
			}
			store, err := c.loadFile(cmd, args[0])
			if err != nil {
				return err
			}

			exporter := &engine.ICSExporter{Clock: c.clock}
			var count int
			err = c.writeTo(output, func(w io.Writer) error {
				count, err = exporter.Export(store, year, w)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), config.OutExported, count, year)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", "", config.FlagDescOutputStdout)
	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	return cmd
}

// eventsListCmd prints every annotation as it renders in a year.
func (c *cli) eventsListCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   config.CmdEventsList,
		Short: config.CmdEventsListShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if year == 0 {
				year = c.clock.Now().Year()
			}
			store, err := c.loadFile(cmd, args[0])
			if err != nil {
				return err
			}
			for _, key := range store.Keys() {
				ann, ok := store.Render(key, year)
				if !ok {
					continue
				}
				fmt.Fprintf(c.out, config.OutEventRow, key, ann.Category, ann.Title())
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	return cmd
}

// loadFile reads a JSON or vCard file, chosen by extension, into a new store.
func (c *cli) loadFile(cmd *cobra.Command, path string) (*events.Store, error) {
	store := events.NewStore()
	src := engine.Source{Mode: config.SourceModeLocal, Path: path}
	if err := engine.NewLoader(nil).Load(cmd.Context(), store, src); err != nil {
		return nil, err
	}
	return store, nil
}

// writeTo runs write against path, or against the command output when path
// is empty.
func (c *cli) writeTo(path string, write func(io.Writer) error) error {
	if path == "" {
		return write(c.out)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.PermUserRW)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
