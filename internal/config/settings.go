package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// Settings holds the runtime configuration of the command line tools.
// Values are populated from .go-calendar.yaml, GOCAL_* env vars and flags.
type Settings struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	DBPath     string `mapstructure:"db"`
	EventsPath string `mapstructure:"events"`
	ThemesFile string `mapstructure:"themes_file"`
	ChromePath string `mapstructure:"chrome_path"`
	Watch      bool   `mapstructure:"watch"`
	Debug      bool   `mapstructure:"debug"`
}

// LoadSettings reads v, applying built-in defaults for any value not set by
// the config file, the environment or a flag.
func LoadSettings(v *viper.Viper) (Settings, error) {
	v.SetDefault(KeyHost, LocalhostBindAddr)
	v.SetDefault(KeyPort, DefaultPort)
	v.SetDefault(KeyDB, "")
	v.SetDefault(KeyEvents, "")
	v.SetDefault(KeyThemesFile, "")
	v.SetDefault(KeyChromePath, "")
	v.SetDefault(KeyWatch, false)
	v.SetDefault(KeyDebug, false)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettings, err)
	}
	return s, nil
}

// ValidatePort checks that port is a number in the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < MinPort || n > MaxPort {
		return fmt.Errorf("%s: %q", ErrPortRange, port)
	}
	return nil
}

// ValidateMonth checks a user facing, one-based month number.
func ValidateMonth(month int) error {
	if month < 1 || month > MonthsPerYear {
		return fmt.Errorf("%s: %d", ErrMonthRange, month)
	}
	return nil
}

// ValidateYear checks that year is within the supported range.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%s: %d", ErrInvalidYear, year)
	}
	return nil
}
