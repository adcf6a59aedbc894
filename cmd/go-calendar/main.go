package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-calendar/internal/config"
)

// main delegates to runMain so that deferred calls (closing the log file)
// run before the process exits.
func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain executes the command line and maps the outcome to an exit code.
func runMain(args []string) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := newCLI(os.Stdout)
	defer c.close()

	root := c.rootCmd()
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}

// versionString is printed by --version.
func versionString() string {
	return fmt.Sprintf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(command string) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCommand, command,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging installs the default slog logger: JSON to stderr plus a
// truncated log file in the user cache directory. Stdout stays free for
// command output.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.PermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.PermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	return filepath.Join(appDir, config.LogFileName), nil
}
