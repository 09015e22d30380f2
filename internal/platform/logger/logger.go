package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/lumberjack.v3"
)

var once sync.Once
var appLogger *zap.Logger
var rawLogger *zap.Logger
var arbitrageLogger *zap.Logger

type Config struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// Get returns the main application logger
func Get() *zap.Logger {
	once.Do(initLoggers)
	return appLogger
}

// GetRawLogger returns the logger that keeps the raw source payloads
func GetRawLogger() *zap.Logger {
	once.Do(initLoggers)
	return rawLogger
}

// GetArbitrageLogger returns the logger that keeps one JSON line per report
func GetArbitrageLogger() *zap.Logger {
	once.Do(initLoggers)
	return arbitrageLogger
}

func newLogger(config Config, useConsole bool) (*zap.Logger, error) {
	fileHandler, err := lumberjack.New(
		lumberjack.WithFileName(config.Filename),
		lumberjack.WithMaxBytes(int64(config.MaxSize*1024*1024)),
		lumberjack.WithMaxBackups(config.MaxBackups),
		lumberjack.WithMaxDays(config.MaxAge),
		lumberjack.WithCompress(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create file handler: %w", err)
	}

	logLevel := zap.NewAtomicLevelAt(Level())

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(developmentCfg)
	fileEncoder := zapcore.NewJSONEncoder(productionCfg)

	var cores []zapcore.Core
	if useConsole {
		// stderr keeps the console table on stdout readable
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), logLevel))
	}
	cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(fileHandler), logLevel))

	return zap.New(zapcore.NewTee(cores...)), nil
}

// Level reads LOG_LEVEL, defaulting to info.
func Level() zapcore.Level {
	level := zap.InfoLevel
	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		if parsedLevel, err := zapcore.ParseLevel(levelEnv); err == nil {
			level = parsedLevel
		}
	}
	return level
}

// Dir reads LOG_DIR, defaulting to "logs".
func Dir() string {
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		return dir
	}
	return "logs"
}

func initLoggers() {
	dir := Dir()

	appConfig := Config{
		Filename:   filepath.Join(dir, "app.log"),
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     14,
	}

	rawConfig := Config{
		Filename:   filepath.Join(dir, "raw_responses.log"),
		MaxSize:    20,
		MaxBackups: 5,
		MaxAge:     7,
	}

	arbitrageConfig := Config{
		Filename:   filepath.Join(dir, "arbitrage.log"),
		MaxSize:    5,
		MaxBackups: 10,
		MaxAge:     30,
	}

	var err error
	appLogger, err = newLogger(appConfig, true) // with console output
	if err != nil {
		log.Fatalf("failed to create app logger: %v", err)
	}

	rawLogger, err = newLogger(rawConfig, false) // without console output
	if err != nil {
		log.Fatalf("failed to create raw response logger: %v", err)
	}

	arbitrageLogger, err = newLogger(arbitrageConfig, false)
	if err != nil {
		log.Fatalf("failed to create arbitrage logger: %v", err)
	}
}

// Sync flushes every logger that has been created.
func Sync() {
	for _, l := range []*zap.Logger{appLogger, rawLogger, arbitrageLogger} {
		if l != nil {
			_ = l.Sync()
		}
	}
}
