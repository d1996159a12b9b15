// Package logging is the small leveled logger used by the command-line
// tool. The codec packages never log.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is a tiny leveled logger.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type Nop struct{}

func (Nop) Debug(string, Fields) {}
func (Nop) Info(string, Fields)  {}
func (Nop) Warn(string, Fields)  {}
func (Nop) Error(string, Fields) {}

// Zap adapts a *zap.Logger to Logger.
type Zap struct{ L *zap.Logger }

var _ Logger = Zap{}

func (z Zap) Debug(msg string, f Fields) { z.L.Debug(msg, zf(f)...) }
func (z Zap) Info(msg string, f Fields)  { z.L.Info(msg, zf(f)...) }
func (z Zap) Warn(msg string, f Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Zap) Error(msg string, f Fields) { z.L.Error(msg, zf(f)...) }

func zf(f Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}

// New builds a console logger writing to stderr at the named level
// ("debug", "info", "warn" or "error"; empty means "info").
func New(level string) (Zap, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return Zap{}, err
		}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	l, err := cfg.Build()
	if err != nil {
		return Zap{}, err
	}
	return Zap{L: l}, nil
}
