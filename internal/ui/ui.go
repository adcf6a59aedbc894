// Package ui is the desktop front-end: a generator window collecting the
// render options, an events browser and a settings dialog.
package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// CalendarApp encapsulates the UI state, preferences, and background logic.
type CalendarApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Loader    *engine.Loader
	Generator *engine.Generator
	Events    *events.Store
	Clock     calendar.Clock // Injected clock for testability

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayGenerateItem *fyne.MenuItem
	TrayReloadItem   *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	generatorWindow fyne.Window
	settingsWindow  fyne.Window
	eventsWindow    fyne.Window
}

// NewCalendarApp constructs the application and wires dependencies.
func NewCalendarApp(a fyne.App, ctx context.Context, store *events.Store, loader *engine.Loader, gen *engine.Generator) *CalendarApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &CalendarApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Loader:             loader,
		Generator:          gen,
		Events:             store,
		Clock:              calendar.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Run opens the generator window and blocks in the fyne event loop.
func (app *CalendarApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.ShowGeneratorWindow()
	app.App.Run()
}

// watchPreferences wakes the background worker when settings change.
func (app *CalendarApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *CalendarApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowEventsWindow()
	})

	app.TrayGenerateItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuGenerate), func() {
		app.ShowGeneratorWindow()
	})

	app.TrayReloadItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuReload), func() {
		go app.performReload(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayGenerateItem,
		app.TrayReloadItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *CalendarApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayGenerateItem.Label = app.GetMsg(config.TKeyMenuGenerate)
	app.TrayReloadItem.Label = app.GetMsg(config.TKeyMenuReload)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker reloads the events source on the configured schedule.
// An interval of zero disables periodic reloads.
func (app *CalendarApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performReload(false)

	getInterval := func() time.Duration {
		return time.Duration(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(config.IdleTick)
	defer ticker.Stop()
	if currentDuration > 0 {
		ticker.Reset(currentDuration)
	}

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := getInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				if currentDuration > 0 {
					ticker.Reset(currentDuration)
				} else {
					ticker.Reset(config.IdleTick)
				}
			}

		case <-ticker.C:
			if currentDuration > 0 {
				app.performReload(false)
			}
		}
	}
}

// performReload loads the configured events source into the store. A
// failed load keeps the previous events.
func (app *CalendarApp) performReload(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	src := app.loadSource()
	if src.Path == "" && src.URL == "" {
		slog.Debug(config.MsgNoSource, config.LogKeyComponent, config.CompUI)
		app.updateTrayStatus(app.Events.Len())
		return
	}

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	if err := app.Loader.Load(app.Ctx, app.Events, src); err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	app.updateTrayStatus(app.Events.Len())

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// updateTrayStatus shows how many events are loaded; a negative count
// reports a failed load.
func (app *CalendarApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	switch {
	case count < 0:
		label = config.FallbackTrayError
	case count == 0:
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	default:
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadSource assembles the events source from preferences and the keyring.
func (app *CalendarApp) loadSource() engine.Source {
	src := engine.Source{
		Mode: app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal),
		Path: app.Preferences.String(config.PrefLocalPath),
		URL:  app.Preferences.String(config.PrefCardDAVURL),
		User: app.Preferences.String(config.PrefUsername),
	}
	if src.Mode == config.SourceModeLocal {
		src.URL = ""
	} else {
		src.Path = ""
	}

	if src.Mode == config.SourceModeWeb && src.User != "" {
		if p, err := keyring.Get(config.KeyringService, src.User); err == nil {
			src.Pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, src.User,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return src
}
