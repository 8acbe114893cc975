package utils

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

// LogOptions controls InitLogger. An empty File means stdout.
type LogOptions struct {
	Level string
	Env   string
	File  string
}

func InitLogger(opts LogOptions) {
	Logger.SetReportCaller(true)

	Logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", filepath.Base(f.File) + ":" + strconv.Itoa(f.Line)
		},
	})

	Logger.SetLevel(ParseLevel(opts.Level))
	Logger.SetOutput(logOutput(opts))
}

// ParseLevel maps LOG_LEVEL values to logrus levels, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func logOutput(opts LogOptions) io.Writer {
	if opts.Env != "production" || opts.File == "" {
		return os.Stdout
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		Logger.WithError(err).Warn("failed to create log directory, using stdout instead")
		return os.Stdout
	}

	file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.WithError(err).Warn("failed to open log file, using stdout instead")
		return os.Stdout
	}
	return file
}
