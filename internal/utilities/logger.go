package utilities

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/antonio-alexander/go-employee-store/internal"
)

type Level int

const (
	Error Level = 1
	Info  Level = 2
	Debug Level = 3
	Trace Level = 4
)

func (l Level) String() string {
	switch l {
	default:
		return ""
	case Error:
		return "error"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	}
}

type Logger interface {
	Error(ctx context.Context, format string, v ...any)
	Info(ctx context.Context, format string, v ...any)
	Debug(ctx context.Context, format string, v ...any)
	Trace(ctx context.Context, format string, v ...any)
}

type logger struct {
	*log.Logger
	config struct {
		level  Level
		prefix string
	}
}

func atoLogLevel(a string) Level {
	switch strings.ToLower(a) {
	default:
		return Error
	case "info":
		return Info
	case "debug":
		return Debug
	case "trace":
		return Trace
	}
}

// NewLogger writes to stdout unless an io.Writer is provided as a parameter
func NewLogger(parameters ...any) interface {
	internal.Configurer
	Logger
} {
	var writer io.Writer = os.Stdout

	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case io.Writer:
			writer = p
		}
	}
	l := &logger{
		Logger: log.New(writer, "", log.Ltime|log.Ldate|log.Lmsgprefix),
	}
	l.config.level = Error
	return l
}

func (l *logger) Configure(envs map[string]string) error {
	l.config.level = Error
	if logLevel, ok := envs["LOG_LEVEL"]; ok {
		l.config.level = atoLogLevel(logLevel)
	}
	if prefix := envs["LOG_PREFIX"]; prefix != "" {
		l.config.prefix = prefix + " "
	}
	return nil
}

func (l *logger) printf(ctx context.Context, level Level, format string, v ...any) {
	if l.config.level < level {
		return
	}
	prefix := fmt.Sprintf("%s[%s] ", l.config.prefix, level)
	if correlationId := internal.CorrelationIdFromCtx(ctx); correlationId != "" {
		prefix = fmt.Sprintf("%s[%s] (%s) ", l.config.prefix, level, correlationId)
	}
	l.Printf(prefix+format, v...)
}

func (l *logger) Error(ctx context.Context, format string, v ...any) {
	l.printf(ctx, Error, format, v...)
}

func (l *logger) Info(ctx context.Context, format string, v ...any) {
	l.printf(ctx, Info, format, v...)
}

func (l *logger) Debug(ctx context.Context, format string, v ...any) {
	l.printf(ctx, Debug, format, v...)
}

func (l *logger) Trace(ctx context.Context, format string, v ...any) {
	l.printf(ctx, Trace, format, v...)
}

// NewNullLogger returns a Logger that discards everything, it's the default
// for components constructed without one
func NewNullLogger() Logger {
	return nullLogger{}
}

type nullLogger struct{}

func (nullLogger) Error(context.Context, string, ...any) {}
func (nullLogger) Info(context.Context, string, ...any)  {}
func (nullLogger) Debug(context.Context, string, ...any) {}
func (nullLogger) Trace(context.Context, string, ...any) {}
