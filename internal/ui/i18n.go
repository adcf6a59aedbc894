package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// localeCode extracts "fr" from "active.fr.json". Other names yield "".
func localeCode(name string) string {
	if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleSuffix)
}

// SetupI18n builds the translation bundle from the embedded locale files.
// Only interface labels are translated; month and day names stay English.
func (app *CalendarApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocaleDir)
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return
	}

	var detected []string
	for _, entry := range entries {
		code := localeCode(entry.Name())
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, entry.Name(),
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(config.LocaleDir, entry.Name())); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, entry.Name(),
				config.LogKeyError, err,
			)
			continue
		}
		detected = append(detected, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
		)
	}

	app.SupportedLanguages = detected
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator based on the language preference.
func (app *CalendarApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates key, returning the key itself when no translation exists.
func (app *CalendarApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil)
}

// GetMsgData translates key with template data.
func (app *CalendarApp) GetMsgData(key string, data map[string]any) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
