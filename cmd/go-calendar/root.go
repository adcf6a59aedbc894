package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/theme"
)

// cli carries the state shared by every command of one invocation.
type cli struct {
	v        *viper.Viper
	out      io.Writer
	clock    calendar.Clock
	settings config.Settings

	logCloser io.Closer
	// skipLogging keeps tests from replacing the default logger.
	skipLogging bool
}

func newCLI(out io.Writer) *cli {
	return &cli{v: viper.New(), out: out, clock: calendar.RealClock{}}
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close()
	}
}

// rootCmd assembles the command tree.
func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           config.CmdRoot,
		Short:         config.CmdRootShort,
		Long:          config.CmdRootLong,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
	}
	root.SetOut(c.out)
	root.SetVersionTemplate(versionString())

	pf := root.PersistentFlags()
	pf.String(config.FlagConfig, "", config.FlagDescConfig)
	pf.Bool(config.FlagDebug, false, config.FlagDescDebug)
	pf.String(config.FlagThemesFile, "", config.FlagDescThemesFile)
	pf.String(config.FlagChrome, "", config.FlagDescChrome)
	c.bind(pf, config.KeyDebug, config.FlagDebug)
	c.bind(pf, config.KeyThemesFile, config.FlagThemesFile)
	c.bind(pf, config.KeyChromePath, config.FlagChrome)

	root.AddCommand(
		c.renderCmd(),
		c.serveCmd(),
		c.optionsCmd(),
		c.eventsCmd(),
		c.guiCmd(),
	)
	return root
}

// bind maps flag onto the viper key so flags, env vars and the config
// file share one namespace.
func (c *cli) bind(fs *pflag.FlagSet, key, flag string) {
	_ = c.v.BindPFlag(key, fs.Lookup(flag))
}

// init loads .env, the config file and the environment, then starts logging.
func (c *cli) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", config.ErrDotEnv, err)
	}

	if cfgFile, _ := cmd.Flags().GetString(config.FlagConfig); cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		c.v.SetConfigName(config.ConfigFileName)
		c.v.SetConfigType(config.ConfigFileType)
		c.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			c.v.AddConfigPath(home)
		}
	}
	c.v.SetEnvPrefix(config.EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("%s: %w", config.ErrConfigFile, err)
		}
	}

	settings, err := config.LoadSettings(c.v)
	if err != nil {
		return err
	}
	c.settings = settings

	if !c.skipLogging {
		c.logCloser = setupLogging(settings.Debug)
	}
	logStartupInfo(cmd.Name())
	if used := c.v.ConfigFileUsed(); used != "" {
		slog.Debug(config.MsgConfigLoaded, config.LogKeyComponent, config.CompMain, config.LogKeyFile, used)
	}
	return nil
}

// themes returns the built-in registry extended with the configured TOML file.
func (c *cli) themes() (*theme.Registry, error) {
	reg := theme.Builtin()
	if c.settings.ThemesFile == "" {
		return reg, nil
	}

	f, err := os.Open(c.settings.ThemesFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrThemesFile, err)
	}
	defer func() { _ = f.Close() }()

	defs, err := theme.DecodeTOML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrThemesFile, err)
	}
	return reg.With(defs...)
}
