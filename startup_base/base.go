package startup_base

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sync"

	"github.com/flachnetz/timeutil/lib/clock"
	sl "github.com/flachnetz/timeutil/startup_logrus"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	BuildPackage       string
	BuildGitHash       string
	BuildVersion       string
	BuildUnixTimestamp string
)

var LogLevel slog.LevelVar

var clockHookOnce sync.Once

var handlerVar slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{AddSource: true})

func init() {
	lazy := &LazyHandler{
		Delegate: func() slog.Handler {
			return handlerVar
		},
	}

	LogLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(lazy))
}

type BaseOptions struct {
	Logfile       string `long:"log-file" description:"Write logs to a different file. Defaults to stderr."`
	ForceColor    bool   `long:"log-color" description:"Forces colored output even on non TTYs."`
	JSONFormatter bool   `long:"log-json" description:"Log using the json formatter."`

	Verbose bool `long:"verbose" description:"Show verbose logging output."`
	Version bool `long:"version" description:"Prints the build information about this application if available."`
}

func (opts *BaseOptions) Initialize() {
	if opts.Version {
		fmt.Printf("%s (%s)\n", path.Base(os.Args[0]), BuildPackage)
		fmt.Printf("  version: %s\n", BuildVersion)
		fmt.Printf("  git hash: %s\n", BuildGitHash)
		fmt.Printf("  build time: %s\n", BuildUnixTimestamp)
		os.Exit(0)
	}

	writer, err := OpenWriter(opts.Logfile)
	FatalOnError(err, "Failed to open log file %q", opts.Logfile)

	handler := opts.configure(writer)

	handlerVar = handler

	// use the handler for the default handler
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if opts.Verbose {
		LogLevel.Set(slog.LevelDebug)
		logrus.SetLevel(logrus.DebugLevel)
		logger.Debug("Enabled verbose logging")
	}
}

// configure sets up logrus and returns the slog handler writing to the same target.
func (opts *BaseOptions) configure(writer *os.File) slog.Handler {
	clockHookOnce.Do(func() {
		logrus.AddHook(sl.NewClockHook())
	})

	if writer == nil {
		logrus.SetOutput(io.Discard)
		return nilhandler{}
	}

	logrus.SetOutput(writer)

	var handler slog.Handler
	if opts.JSONFormatter {
		logrus.SetFormatter(&logrus.JSONFormatter{})

		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{
			AddSource: true,
			Level:     &LogLevel,
		})
	} else {
		noColor := !opts.ForceColor && !isatty.IsTerminal(writer.Fd())

		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:     opts.ForceColor,
			DisableColors:   noColor,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})

		handler = tint.NewHandler(writer, &tint.Options{
			AddSource:  true,
			Level:      &LogLevel,
			TimeFormat: "2006-01-02 15:04:05.000",
			NoColor:    noColor,
		})
	}

	return sl.Wrap(handler, clock.AdjustTimeInLog)
}

type nilhandler struct{}

func (n nilhandler) Enabled(ctx context.Context, level slog.Level) bool {
	return false
}

func (n nilhandler) Handle(ctx context.Context, record slog.Record) error {
	return nil
}

func (n nilhandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return n
}

func (n nilhandler) WithGroup(name string) slog.Handler {
	return n
}

type LazyHandler struct {
	Delegate func() slog.Handler
}

func (v *LazyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (v *LazyHandler) Handle(ctx context.Context, record slog.Record) error {
	return v.Delegate().Handle(ctx, record)
}

func (v *LazyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LazyHandler{
		Delegate: func() slog.Handler {
			return v.Delegate().WithAttrs(attrs)
		},
	}
}

func (v *LazyHandler) WithGroup(name string) slog.Handler {
	return &LazyHandler{
		Delegate: func() slog.Handler {
			return v.Delegate().WithGroup(name)
		},
	}
}
