package ui

import (
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets keeps the inputs read back on save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
}

// ShowSettingsWindow opens the source and refresh settings.
func (app *CalendarApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWin, config.LogKeyComponent, config.CompUISet, config.LogKeyWindow, config.WindowSettings)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.buildSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}
	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemInterval))

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footer := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))

	refreshLayout = func() {
		content.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	}

	w.SetContent(content)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	refreshLayout()
	w.Show()
}

// buildSettingsWidgets creates the inputs filled from preferences and the keyring.
func (app *CalendarApp) buildSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeWeb),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))
	return sw
}

// buildSourceCard switches between the web and local file forms.
func (app *CalendarApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter(config.SourceExtensions))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyMode := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}
	sw.modeSelect.OnChanged = func(mode string) {
		applyMode(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeLocal) == config.SourceModeWeb {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeWeb))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	}
	applyMode(sw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the inputs and reloads the events with them.
func (app *CalendarApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSavePrefs, config.LogKeyComponent, config.CompUISet)

	mode := config.SourceModeWeb
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		mode = config.SourceModeLocal
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, mode)
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	interval := config.DisabledInterval
	if i, err := strconv.Atoi(sw.entryInterval.Text); err == nil && i > 0 {
		interval = i
	}
	app.Preferences.SetInt(config.PrefInterval, interval)

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	go app.performReload(true)
}
