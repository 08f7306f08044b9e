package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/tasksync/internal/config"
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
}

// New builds the application logger for env, writing to w.
func New(env string, w io.Writer) (zerolog.Logger, error) {
	level, err := LevelForEnv(env)
	if err != nil {
		return zerolog.Nop(), err
	}
	if env == config.EnvLocal {
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = w
		w = consoleWriter
	}
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Caller().
		Int("pid", os.Getpid()).
		Logger(), nil
}

func LevelForEnv(env string) (zerolog.Level, error) {
	switch env {
	case config.EnvDev:
		return zerolog.DebugLevel, nil
	case config.EnvProd:
		return zerolog.InfoLevel, nil
	case config.EnvLocal:
		return zerolog.TraceLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("logging: unknown env %q", env)
	}
}

// OpenFile returns a logger appending to path, or a no-op logger when path is
// empty. The returned close func is never nil.
func OpenFile(env, path string) (zerolog.Logger, func() error, error) {
	if path == "" {
		return zerolog.Nop(), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, fmt.Errorf("logging: open %s: %w", path, err)
	}
	logger, err := New(env, f)
	if err != nil {
		_ = f.Close()
		return zerolog.Nop(), func() error { return nil }, err
	}
	return logger, f.Close, nil
}
