package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/tartampluch/go-calendar/internal/page"
	caltheme "github.com/tartampluch/go-calendar/internal/theme"
)

// Selection is what the generator window collects. It is kept free of
// widgets so it can be built and checked without a display.
type Selection struct {
	Month        int // 0-11
	Year         string
	Theme        string
	Layout       string
	PageSize     string
	Format       string
	LogoPosition string
	LogoAlign    string
	ImagePath    string
	LogoPath     string
	OutputDir    string
}

// Job validates the selection and reads the assets it names.
func (s Selection) Job() (engine.Job, error) {
	year, err := strconv.Atoi(s.Year)
	if err != nil || year < config.MinYear || year > config.MaxYear {
		return engine.Job{}, fmt.Errorf("%s: %q", config.ErrInvalidYear, s.Year)
	}
	if s.Month < 0 || s.Month >= config.MonthsPerYear {
		return engine.Job{}, document.ErrInvalidMonth
	}
	variant, err := layout.Lookup(s.Layout)
	if err != nil {
		return engine.Job{}, err
	}
	pos, err := document.ParsePosition(s.LogoPosition)
	if err != nil {
		return engine.Job{}, err
	}
	align, err := document.ParseAlignment(s.LogoAlign)
	if err != nil {
		return engine.Job{}, err
	}

	opts := document.DefaultOptions()
	opts.Theme = s.Theme
	opts.Layout = variant.Kind()
	opts.PageSize = s.PageSize
	opts.LogoPosition = pos
	opts.LogoAlign = align
	opts.Image = engine.ReadAsset(s.ImagePath, document.ImageAsset)
	opts.Logo = engine.ReadAsset(s.LogoPath, document.LogoAsset)

	format := s.Format
	if format == "" {
		format = config.FormatPDF
	}
	return engine.Job{Month: s.Month, Year: year, Options: opts, Format: format}, nil
}

// generate renders sel and writes the result into sel.OutputDir.
func (app *CalendarApp) generate(sel Selection) (string, []document.Warning, error) {
	job, err := sel.Job()
	if err != nil {
		return "", nil, err
	}
	if app.Generator == nil {
		return "", nil, errors.New(config.ErrGeneratorMissing)
	}

	res, err := app.Generator.Generate(app.Ctx, app.Events, job)
	if err != nil {
		return "", nil, err
	}

	data := res.HTML
	if job.Format == config.FormatPDF {
		data = res.PDF
	}
	out := filepath.Join(sel.OutputDir, engine.OutputName(job))
	if err := os.WriteFile(out, data, config.PermUserRW); err != nil {
		return "", nil, fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}

	slog.Info(config.MsgOutputWritten,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyFile, out,
		config.LogKeyWarnings, len(res.Warnings))
	return out, res.Warnings, nil
}

// rememberSelection stores the choices the next session starts from.
func (app *CalendarApp) rememberSelection(sel Selection) {
	app.Preferences.SetString(config.PrefLastTheme, sel.Theme)
	app.Preferences.SetString(config.PrefLastLayout, sel.Layout)
	app.Preferences.SetString(config.PrefLastPageSize, sel.PageSize)
	app.Preferences.SetString(config.PrefLastFormat, sel.Format)
	app.Preferences.SetString(config.PrefOutputDir, sel.OutputDir)
}

// generatorWidgets holds the inputs of the generator window.
type generatorWidgets struct {
	monthSelect  *widget.Select
	yearEntry    *NumericalEntry
	themeSelect  *widget.Select
	layoutSelect *widget.Select
	sizeSelect   *widget.Select
	formatSelect *widget.Select
	posSelect    *widget.Select
	alignSelect  *widget.Select
	imageEntry   *widget.Entry
	logoEntry    *widget.Entry
	outputEntry  *widget.Entry
	status       *widget.Label
}

func (gw *generatorWidgets) selection() Selection {
	return Selection{
		Month:        gw.monthSelect.SelectedIndex(),
		Year:         gw.yearEntry.Text,
		Theme:        gw.themeSelect.Selected,
		Layout:       gw.layoutSelect.Selected,
		PageSize:     gw.sizeSelect.Selected,
		Format:       gw.formatSelect.Selected,
		LogoPosition: gw.posSelect.Selected,
		LogoAlign:    gw.alignSelect.Selected,
		ImagePath:    gw.imageEntry.Text,
		LogoPath:     gw.logoEntry.Text,
		OutputDir:    gw.outputEntry.Text,
	}
}

// ShowGeneratorWindow opens the main window, or focuses it if already open.
func (app *CalendarApp) ShowGeneratorWindow() {
	if app.generatorWindow != nil {
		app.generatorWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgOpenWin, config.LogKeyComponent, config.CompUI, config.LogKeyWindow, config.WindowGenerator)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinGenerator))
	app.generatorWindow = w

	gw := app.buildGeneratorWidgets()

	pickFile := func(target *widget.Entry) *widget.Button {
		return widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
			d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
				if err == nil && r != nil {
					target.SetText(r.URI().Path())
					_ = r.Close()
				}
			}, w)
			d.SetFilter(storage.NewExtensionFileFilter(config.ImageExtensions))
			d.Show()
		})
	}
	pickDir := widget.NewButtonWithIcon("", theme.FolderIcon(), func() {
		dialog.ShowFolderOpen(func(u fyne.ListableURI, err error) {
			if err == nil && u != nil {
				gw.outputEntry.SetText(u.Path())
			}
		}, w)
	})

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), gw.monthSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), gw.yearEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTheme), gw.themeSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLayout), gw.layoutSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPageSize), gw.sizeSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblFormat), gw.formatSelect),
	)
	assets := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblImage), container.NewBorder(nil, nil, nil, pickFile(gw.imageEntry), gw.imageEntry)),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLogo), container.NewBorder(nil, nil, nil, pickFile(gw.logoEntry), gw.logoEntry)),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLogoPosition), gw.posSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLogoAlign), gw.alignSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblOutput), container.NewBorder(nil, nil, nil, pickDir, gw.outputEntry)),
	)

	var btnGenerate *widget.Button
	btnGenerate = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnGenerate), theme.DocumentCreateIcon(), func() {
		if err := gw.yearEntry.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		sel := gw.selection()
		app.rememberSelection(sel)
		btnGenerate.Disable()
		gw.status.SetText(app.GetMsg(config.TKeyStatusWorking))

		go func() {
			out, warnings, err := app.generate(sel)
			fyne.Do(func() {
				btnGenerate.Enable()
				if err != nil {
					gw.status.SetText(app.GetMsg(config.TKeyStatusFailed))
					dialog.ShowError(err, w)
					return
				}
				gw.status.SetText(app.GetMsgData(config.TKeyStatusDone, map[string]any{"Path": out, "Warnings": len(warnings)}))
			})
		}()
	})
	btnGenerate.Importance = widget.HighImportance

	btnEvents := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEvents), theme.ListIcon(), app.ShowEventsWindow)
	btnSettings := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	footer := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		widget.NewCard(app.GetMsg(config.TKeyLblCalendar), "", form),
		widget.NewCard(app.GetMsg(config.TKeyLblAssets), "", assets),
		container.NewGridWithColumns(config.LayoutColumnsTriple, btnEvents, btnSettings, btnGenerate),
		gw.status,
		footer,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.GeneratorWindowWidth, content.MinSize().Height))
	w.SetOnClosed(func() { app.generatorWindow = nil })
	w.Show()
}

// buildGeneratorWidgets creates the inputs, preselected from the last session.
func (app *CalendarApp) buildGeneratorWidgets() *generatorWidgets {
	now := calendar.OrReal(app.Clock).Now()
	gw := &generatorWidgets{}

	months := make([]string, config.MonthsPerYear)
	for m := range months {
		months[m] = calendar.MonthName(m)
	}
	gw.monthSelect = widget.NewSelect(months, nil)
	gw.monthSelect.SetSelectedIndex(int(now.Month()) - 1)

	gw.yearEntry = NewRangeEntry(config.MinYear, config.MaxYear,
		app.GetMsg(config.TKeyErrYearReq), app.GetMsg(config.TKeyErrYearRange))
	gw.yearEntry.SetText(strconv.Itoa(now.Year()))

	themes := caltheme.Builtin()
	if app.Generator != nil && app.Generator.Themes != nil {
		themes = app.Generator.Themes
	}
	gw.themeSelect = widget.NewSelect(themes.Names(), nil)
	gw.themeSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLastTheme, config.DefaultTheme))

	gw.layoutSelect = widget.NewSelect(layout.Names(), nil)
	gw.layoutSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLastLayout, config.DefaultLayout))

	sizes := make([]string, len(page.Sizes))
	for i, s := range page.Sizes {
		sizes[i] = string(s)
	}
	gw.sizeSelect = widget.NewSelect(sizes, nil)
	gw.sizeSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLastPageSize, config.DefaultPageSize))

	gw.formatSelect = widget.NewSelect([]string{config.FormatPDF, config.FormatHTML}, nil)
	gw.formatSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLastFormat, config.FormatPDF))

	positions := make([]string, len(document.Positions))
	for i, p := range document.Positions {
		positions[i] = string(p)
	}
	gw.posSelect = widget.NewSelect(positions, nil)
	gw.posSelect.SetSelected(string(document.PositionAuto))

	alignments := make([]string, len(document.Alignments))
	for i, a := range document.Alignments {
		alignments[i] = string(a)
	}
	gw.alignSelect = widget.NewSelect(alignments, nil)
	gw.alignSelect.SetSelected(string(document.AlignRight))

	gw.imageEntry = widget.NewEntry()
	gw.logoEntry = widget.NewEntry()
	gw.outputEntry = widget.NewEntry()
	gw.outputEntry.SetText(app.Preferences.StringWithFallback(config.PrefOutputDir, defaultOutputDir()))

	gw.status = widget.NewLabel("")
	gw.status.Wrapping = fyne.TextWrapWord
	return gw
}

func defaultOutputDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
