package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/document"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/events"
	"github.com/tartampluch/go-calendar/internal/layout"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the engine.SourceFetcher interface using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

// setupTestApp initializes a headless Fyne app with mocked dependencies.
func setupTestApp(t *testing.T) (*CalendarApp, *MockFetcher, *MockTray) {
	keyring.MockInit()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	fetcher := new(MockFetcher)
	mockTray := &MockTray{}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := MockClock{CurrentTime: testNow}
	gen := &engine.Generator{Clock: clock}
	app := NewCalendarApp(a, ctx, events.NewStore(), engine.NewLoader(fetcher), gen)

	app.Tray = mockTray
	app.Clock = clock

	// Run() is skipped, so translations are loaded by hand.
	app.SetupI18n()
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	return app, fetcher, mockTray
}

func useWebSource(app *CalendarApp, url string) {
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, url)
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.ElementsMatch(t, []string{"en", "fr"}, app.SupportedLanguages)
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

func TestLocalization_TemplateAndMissingKey(t *testing.T) {
	app, _, _ := setupTestApp(t)

	assert.Equal(t, "Events in 2025", app.GetMsgData(config.TKeyWinEvents, map[string]any{"Year": 2025}))
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"), "Missing keys fall back to the key")

	bare := &CalendarApp{}
	assert.Equal(t, config.TKeyBtnSave, bare.GetMsg(config.TKeyBtnSave), "No localizer yet")
}

func TestLocaleCode(t *testing.T) {
	assert.Equal(t, "fr", localeCode("active.fr.json"))
	assert.Equal(t, "en", localeCode("active.en.json"))
	assert.Empty(t, localeCode("fr.json"))
	assert.Empty(t, localeCode("active.fr.toml"))
}

// -----------------------------------------------------------------------------
// Configuration & Preferences Tests
// -----------------------------------------------------------------------------

func TestLoadSource_Web(t *testing.T) {
	app, _, _ := setupTestApp(t)

	useWebSource(app, "https://dav.example.com/book.vcf")
	app.Preferences.SetString(config.PrefUsername, "admin")
	app.Preferences.SetString(config.PrefLocalPath, "/tmp/ignored.json")
	require.NoError(t, keyring.Set(config.KeyringService, "admin", "s3cret"))

	src := app.loadSource()

	assert.Equal(t, config.SourceModeWeb, src.Mode)
	assert.Equal(t, "https://dav.example.com/book.vcf", src.URL)
	assert.Equal(t, "admin", src.User)
	assert.Equal(t, "s3cret", src.Pass, "The password comes from the keyring")
	assert.Empty(t, src.Path, "The inactive mode is cleared")
}

func TestLoadSource_LocalIsDefault(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLocalPath, "/data/events.json")
	app.Preferences.SetString(config.PrefCardDAVURL, "https://ignored.example.com")

	src := app.loadSource()

	assert.Equal(t, config.SourceModeLocal, src.Mode)
	assert.Equal(t, "/data/events.json", src.Path)
	assert.Empty(t, src.URL)
	assert.Empty(t, src.Pass)
}

func TestConfiguration_WorkerSignal(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			signalReceived <- key == config.PrefInterval
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetInt(config.PrefInterval, 120)

	assert.True(t, <-signalReceived, "Changing interval should notify background worker")
}

// -----------------------------------------------------------------------------
// Reload Integration Tests
// -----------------------------------------------------------------------------

func TestPerformReload_Success(t *testing.T) {
	app, fetcher, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	body := `{"03-14": {"type": "birthday", "lines": ["Pi's Birthday"], "originalYear": 2000}}`
	fetcher.On("Fetch", mock.Anything, "http://test.local/events.json", "", "").
		Return(io.NopCloser(bytes.NewBufferString(body)), nil)
	useWebSource(app, "http://test.local/events.json")

	app.performReload(true)

	fetcher.AssertExpectations(t)
	require.NotNil(t, mockTray.Menu)
	assert.Equal(t, "1 event loaded", app.TrayStatusItem.Label)

	ann, ok := app.Events.Render("03-14", 2025)
	require.True(t, ok)
	assert.Equal(t, "Pi's 25th Birthday", ann.Title())
}

func TestPerformReload_FailureKeepsEvents(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()
	require.NoError(t, app.Events.Put("01-01", events.Record{Category: events.Public, Lines: []string{"New Year"}}))

	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	useWebSource(app, "http://test.local/events.json")

	app.performReload(true)

	fetcher.AssertExpectations(t)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)
	assert.Equal(t, 1, app.Events.Len())
}

func TestPerformReload_NoSource(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	app.setupTrayMenu()

	app.performReload(false)

	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, "No events loaded", app.TrayStatusItem.Label)
}

func TestTrayStatusUpdate_Logic(t *testing.T) {
	app, _, mockTray := setupTestApp(t)
	app.setupTrayMenu()

	app.updateTrayStatus(-1)
	assert.Equal(t, config.FallbackTrayError, app.TrayStatusItem.Label)

	app.updateTrayStatus(0)
	assert.Equal(t, "No events loaded", app.TrayStatusItem.Label)

	app.updateTrayStatus(1)
	assert.Equal(t, "1 event loaded", app.TrayStatusItem.Label)

	app.updateTrayStatus(10)
	assert.Equal(t, "10 events loaded", app.TrayStatusItem.Label)

	assert.NotNil(t, mockTray.Menu)
}

func TestRefreshTrayMenu(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.setupTrayMenu()

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()

	assert.Equal(t, "Recharger les événements", app.TrayReloadItem.Label)
}

// -----------------------------------------------------------------------------
// Generator Tests
// -----------------------------------------------------------------------------

func validSelection(dir string) Selection {
	return Selection{
		Month:     2,
		Year:      "2025",
		Theme:     "ocean",
		Layout:    "weekly",
		PageSize:  "A4-landscape",
		Format:    config.FormatHTML,
		OutputDir: dir,
	}
}

func TestSelection_Job(t *testing.T) {
	job, err := validSelection(t.TempDir()).Job()
	require.NoError(t, err)

	assert.Equal(t, 2, job.Month)
	assert.Equal(t, 2025, job.Year)
	assert.Equal(t, layout.Weekly, job.Options.Layout)
	assert.Equal(t, "ocean", job.Options.Theme)
	assert.Equal(t, document.PositionAuto, job.Options.LogoPosition)
	assert.Equal(t, document.AlignRight, job.Options.LogoAlign)
	assert.Nil(t, job.Options.Image, "Empty paths load nothing")
	assert.Nil(t, job.Options.Logo)
}

func TestSelection_JobErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Selection)
	}{
		{"Year not a number", func(s *Selection) { s.Year = "20x5" }},
		{"Year out of range", func(s *Selection) { s.Year = "0" }},
		{"No month selected", func(s *Selection) { s.Month = -1 }},
		{"Unknown layout", func(s *Selection) { s.Layout = "monthly" }},
		{"Unknown logo position", func(s *Selection) { s.LogoPosition = "sidebar" }},
		{"Unknown logo alignment", func(s *Selection) { s.LogoAlign = "justify" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := validSelection(t.TempDir())
			tt.modify(&sel)
			_, err := sel.Job()
			assert.Error(t, err)
		})
	}
}

func TestGenerate_WritesHTML(t *testing.T) {
	app, _, _ := setupTestApp(t)
	require.NoError(t, app.Events.Put("03-14", events.Record{Category: events.Custom, Lines: []string{"Pi Day"}}))

	dir := t.TempDir()
	sel := validSelection(dir)
	sel.LogoPath = filepath.Join(dir, "missing.png")

	out, warnings, err := app.generate(sel)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "calendar-2025-03.html"), out)
	require.Len(t, warnings, 1)
	assert.Equal(t, "logo", warnings[0].Element)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>March 2025 Calendar</title>")
	assert.Contains(t, string(data), "Pi Day")
}

func TestGenerate_PDFWithoutRasterizer(t *testing.T) {
	app, _, _ := setupTestApp(t)
	sel := validSelection(t.TempDir())
	sel.Format = config.FormatPDF

	_, _, err := app.generate(sel)
	assert.Error(t, err)
}

func TestRememberSelection(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.rememberSelection(validSelection("/out"))

	assert.Equal(t, "ocean", app.Preferences.String(config.PrefLastTheme))
	assert.Equal(t, "weekly", app.Preferences.String(config.PrefLastLayout))
	assert.Equal(t, "A4-landscape", app.Preferences.String(config.PrefLastPageSize))
	assert.Equal(t, "/out", app.Preferences.String(config.PrefOutputDir))
}

// -----------------------------------------------------------------------------
// Window Tests
// -----------------------------------------------------------------------------

func TestGeneratorWindow_DefaultsFromClockAndPreferences(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLastLayout, "year")

	gw := app.buildGeneratorWidgets()

	assert.Equal(t, "March", gw.monthSelect.Selected)
	assert.Equal(t, "2025", gw.yearEntry.Text)
	assert.Equal(t, "year", gw.layoutSelect.Selected)
	assert.Equal(t, config.DefaultTheme, gw.themeSelect.Selected)
	assert.Equal(t, config.FormatPDF, gw.formatSelect.Selected)

	sel := gw.selection()
	assert.Equal(t, 2, sel.Month)
	assert.Equal(t, "auto", sel.LogoPosition)
}

func TestWindows_AreSingletons(t *testing.T) {
	app, _, _ := setupTestApp(t)

	app.ShowGeneratorWindow()
	first := app.generatorWindow
	require.NotNil(t, first)
	app.ShowGeneratorWindow()
	assert.Same(t, first, app.generatorWindow)

	app.ShowEventsWindow()
	require.NotNil(t, app.eventsWindow)

	app.ShowSettingsWindow()
	require.NotNil(t, app.settingsWindow)
}

func TestSaveSettings(t *testing.T) {
	app, fetcher, _ := setupTestApp(t)
	fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(io.NopCloser(bytes.NewBufferString(`{}`)), nil).Maybe()

	sw := app.buildSettingsWidgets()
	app.buildSourceCard(test.NewWindow(nil), sw, nil)

	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeWeb))
	sw.urlEntry.SetText("https://dav.example.com/events.json")
	sw.userEntry.SetText("bob")
	sw.passEntry.SetText("hunter2")
	sw.entryInterval.SetText("")

	app.saveSettings(sw)

	assert.Equal(t, config.SourceModeWeb, app.Preferences.String(config.PrefSourceMode))
	assert.Equal(t, "bob", app.Preferences.String(config.PrefUsername))
	assert.Equal(t, config.DisabledInterval, app.Preferences.Int(config.PrefInterval), "An empty interval disables reloads")

	pass, err := keyring.Get(config.KeyringService, "bob")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pass)
}

// -----------------------------------------------------------------------------
// Events Table Tests
// -----------------------------------------------------------------------------

func TestEventRows_Sorting(t *testing.T) {
	store := events.NewStoreFrom(map[string]events.Record{
		"12-25": {Category: events.Public, Lines: []string{"Christmas Day"}},
		"03-14": {Category: events.Birthday, Lines: []string{"Albert's Birthday"}, OriginYear: events.Origin(1879)},
		"07-04": {Category: events.Custom, Lines: []string{"barbecue"}},
	})

	rows := eventRows(store, 2025)
	require.Len(t, rows, 3)
	assert.Equal(t, "Albert's 146th Birthday", rows[0].Title, "Titles are rendered for the year")

	keys := func() []string {
		out := make([]string, len(rows))
		for i, r := range rows {
			out[i] = r.Key
		}
		return out
	}

	sortRows(rows, config.ColIDDate, false)
	assert.Equal(t, []string{"12-25", "07-04", "03-14"}, keys())

	sortRows(rows, config.ColIDTitle, true)
	assert.Equal(t, []string{"03-14", "07-04", "12-25"}, keys(), "Title order ignores case")

	sortRows(rows, config.ColIDCategory, true)
	assert.Equal(t, []string{"03-14", "07-04", "12-25"}, keys())

	assert.Nil(t, eventRows(nil, 2025))
}
