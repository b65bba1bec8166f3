// Package logging builds the process-wide zap logger.
package logging

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	IsProduction bool
	Level        zapcore.Level
	// Output defaults to stdout.
	Output zapcore.WriteSyncer
}

func encoderConfig(production bool) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	if production {
		cfg = zap.NewProductionEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.LevelKey = "level"
	cfg.NameKey = "name"
	cfg.MessageKey = "msg"
	cfg.CallerKey = "caller"
	cfg.StacktraceKey = "stacktrace"
	return cfg
}

// Setup returns a JSON logger in production and a console logger otherwise,
// plus a function that flushes buffered entries.
func Setup(opts Options) (*zap.Logger, func()) {
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stdout)
	}

	encCfg := encoderConfig(opts.IsProduction)
	var enc zapcore.Encoder
	if opts.IsProduction {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	logger := zap.New(
		zapcore.NewCore(enc, out, opts.Level),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).With(zap.String("service", "bookcatalog"))

	flusher := func() {
		if err := logger.Sync(); err != nil {
			log.Println("error during flushing any buffered log entries:", err)
		}
	}
	return logger, flusher
}
