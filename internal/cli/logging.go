package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// setupLogging installs the default slog logger.
//
// Records go as text to stderr and, with --log-file, as JSON to that file.
// Level is Info, or Debug with --verbose.
func (o *RootOptions) setupLogging(stderr io.Writer) error {
	o.level = new(slog.LevelVar)
	if o.Verbose {
		o.level.Set(slog.LevelDebug)
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: o.level}),
	}

	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to open log file %s", o.LogFile), err)
		}
		o.logFile = f
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: o.level}))
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return nil
}

// enableDebug lowers the log level to Debug for the rest of the command.
func (o *RootOptions) enableDebug() {
	if o.level != nil {
		o.level.Set(slog.LevelDebug)
	}
}

func (o *RootOptions) closeLog() error {
	if o.logFile == nil {
		return nil
	}
	err := o.logFile.Close()
	o.logFile = nil
	return err
}
