package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/events"
)

// translationKeys lists every key the interface asks for.
func translationKeys() []string {
	keys := []string{
		config.TKeyMenuGenerate,
		config.TKeyMenuReload,
		config.TKeyMenuSettings,
		config.TKeyTrayStatus,
		config.TKeyTrayStatusZero,
		config.TKeyNotifStart,
		config.TKeyNotifSuccess,
		config.TKeyNotifError,
		config.TKeyWinGenerator,
		config.TKeyWinSettings,
		config.TKeyWinEvents,
		config.TKeyLblCalendar,
		config.TKeyLblAssets,
		config.TKeyLblMonth,
		config.TKeyLblYear,
		config.TKeyLblTheme,
		config.TKeyLblLayout,
		config.TKeyLblPageSize,
		config.TKeyLblFormat,
		config.TKeyLblImage,
		config.TKeyLblLogo,
		config.TKeyLblLogoPosition,
		config.TKeyLblLogoAlign,
		config.TKeyLblOutput,
		config.TKeyLblFooter,
		config.TKeyLblLanguage,
		config.TKeyHelpLanguage,
		config.TKeyLblRefresh,
		config.TKeyLblMinutes,
		config.TKeyHelpInterval,
		config.TKeyLblGeneral,
		config.TKeyLblSource,
		config.TKeyLblURL,
		config.TKeyHelpURL,
		config.TKeyLblUser,
		config.TKeyLblPass,
		config.TKeyModeWeb,
		config.TKeyModeLocal,
		config.TKeyBtnGenerate,
		config.TKeyBtnEvents,
		config.TKeyBtnSettings,
		config.TKeyBtnSave,
		config.TKeyBtnCancel,
		config.TKeyBtnBrowse,
		config.TKeyStatusWorking,
		config.TKeyStatusFailed,
		config.TKeyStatusDone,
		config.TKeyErrYearReq,
		config.TKeyErrYearRange,
		config.TKeyColDate,
		config.TKeyColCategory,
		config.TKeyColTitle,
	}
	for _, c := range events.Categories {
		keys = append(keys, config.TKeyCategoryPrefix+string(c))
	}
	return keys
}

// TestI18nIntegrity ensures every locale file defines exactly the keys in use.
func TestI18nIntegrity(t *testing.T) {
	files, err := filepath.Glob(filepath.Join(config.LocaleDir, config.LocalePrefix+"*"+config.LocaleSuffix))
	require.NoError(t, err)
	require.NotEmpty(t, files, "Locale files must be found next to the tests")

	keys := translationKeys()
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			content, err := os.ReadFile(file)
			require.NoError(t, err)

			var messages map[string]any
			require.NoError(t, json.Unmarshal(content, &messages), "JSON must be valid")

			for _, k := range keys {
				assert.Containsf(t, messages, k, "Key '%s' is missing", k)
			}
			for k := range messages {
				if strings.HasPrefix(k, "_") {
					continue
				}
				assert.Truef(t, known[k], "Key '%s' is not used by the interface", k)
			}

			plural, ok := messages[config.TKeyTrayStatus].(map[string]any)
			require.True(t, ok, "The tray status is a plural message")
			assert.Contains(t, plural, "one")
			assert.Contains(t, plural, "other")
		})
	}
}
