package logger

import (
	"os"
	"sync"

	"catalog-service/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger builds the process logger from configuration: JSON to stdout
// in production, console output in development, with optional rotated file
// output.
func InitLogger(cfg *config.Config) {
	once.Do(func() {
		instance = build(cfg)
		zap.ReplaceGlobals(instance)
	})
}

func build(cfg *config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Log.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var consoleEncoder zapcore.Encoder
	if cfg.Server.Env == "production" {
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level),
	}

	if cfg.Log.FileEnable {
		fileSink := &lumberjack.Logger{
			Filename:   cfg.Log.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(fileSink),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// GetLogger returns the process logger, building a default one if
// InitLogger has not run yet.
func GetLogger() *zap.Logger {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		logger, err := cfg.Build()
		if err != nil {
			panic(err)
		}
		instance = logger
	})
	return instance
}
