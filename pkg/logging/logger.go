// Copyright (c) 2026 The Gnet Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the logger used by the scripted poller, sockets and
// listeners of mockpoll. By default it is a development zap logger (go.uber.org/zap)
// writing to stdout, users may replace it per component through mockpoll.WithLogger,
// or process-wide through SetDefaultLoggerAndFlusher.
//
// The environment variable `MOCKPOLL_LOGGING_LEVEL` holds the zap level as an integer
// (-1 for DEBUG, 0 for INFO, 1 for WARN, 2 for ERROR...), the default is INFO so that
// test output stays quiet unless asked for.
// The environment variable `MOCKPOLL_LOGGING_FILE` redirects logs into a rotated local file.
package logging

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Flusher is the callback function which flushes any buffered log entries to the underlying writer.
type Flusher = func() error

var (
	defaultLogger       Logger
	defaultLoggingLevel Level
	defaultFlusher      Flusher
)

// Level is the alias of zapcore.Level.
type Level = zapcore.Level

const (
	// DebugLevel logs every state transition and every resolved batch.
	DebugLevel = zapcore.DebugLevel
	// InfoLevel is the default logging priority.
	InfoLevel = zapcore.InfoLevel
	// WarnLevel logs suspicious but legal usage.
	WarnLevel = zapcore.WarnLevel
	// ErrorLevel logs script-authoring mistakes.
	ErrorLevel = zapcore.ErrorLevel
)

func init() {
	defaultLoggingLevel = InfoLevel
	if lvl := os.Getenv("MOCKPOLL_LOGGING_LEVEL"); len(lvl) > 0 {
		loggingLevel, err := strconv.ParseInt(lvl, 10, 8)
		if err != nil {
			panic("invalid MOCKPOLL_LOGGING_LEVEL, " + err.Error())
		}
		defaultLoggingLevel = Level(loggingLevel)
	}

	if fileName := os.Getenv("MOCKPOLL_LOGGING_FILE"); len(fileName) > 0 {
		var err error
		defaultLogger, defaultFlusher, err = CreateLoggerAsLocalFile(fileName, defaultLoggingLevel)
		if err != nil {
			panic("invalid MOCKPOLL_LOGGING_FILE, " + err.Error())
		}
		return
	}

	core := zapcore.NewCore(newEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(os.Stdout), defaultLoggingLevel)
	zapLogger := zap.New(core,
		zap.Development(),
		zap.AddCaller(),
		zap.AddStacktrace(ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	defaultLogger = zapLogger.Sugar()
	defaultFlusher = zapLogger.Sync
}

type prefixEncoder struct {
	zapcore.Encoder

	prefix  string
	bufPool buffer.Pool
}

func (e *prefixEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	logEntry, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer logEntry.Free()

	buf := e.bufPool.Get()
	buf.AppendString(e.prefix)
	buf.AppendByte(' ')
	_, err = buf.Write(logEntry.Bytes())
	if err != nil {
		buf.Free()
		return nil, err
	}
	return buf, nil
}

func (e *prefixEncoder) Clone() zapcore.Encoder {
	return &prefixEncoder{Encoder: e.Encoder.Clone(), prefix: e.prefix, bufPool: e.bufPool}
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return &prefixEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		prefix:  "[mockpoll]",
		bufPool: buffer.NewPool(),
	}
}

// GetDefaultLogger returns the default logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// GetDefaultFlusher returns the default flusher.
func GetDefaultFlusher() Flusher {
	return defaultFlusher
}

var setupOnce sync.Once

// SetDefaultLoggerAndFlusher sets the default logger and its flusher.
//
// Only the first call takes effect.
func SetDefaultLoggerAndFlusher(logger Logger, flusher Flusher) {
	setupOnce.Do(func() {
		defaultLogger, defaultFlusher = logger, flusher
	})
}

// LogLevel tells what the default logging level is.
func LogLevel() string {
	return defaultLoggingLevel.String()
}

// CreateLoggerAsLocalFile setups the logger by local file path.
func CreateLoggerAsLocalFile(localFilePath string, logLevel Level) (logger Logger, flush func() error, err error) {
	if len(localFilePath) == 0 {
		return nil, nil, errors.New("invalid local logger path")
	}

	// lumberjack.Logger is already safe for concurrent use, so we don't need to lock it.
	lumberJackLogger := &lumberjack.Logger{
		Filename:   localFilePath,
		MaxSize:    100, // megabytes
		MaxBackups: 2,
		MaxAge:     15, // days
	}

	levelEnabler := zap.LevelEnablerFunc(func(level Level) bool {
		return level >= logLevel
	})
	core := zapcore.NewCore(newEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(lumberJackLogger), levelEnabler)
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(ErrorLevel))
	return zapLogger.Sugar(), zapLogger.Sync, nil
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger {
	return zap.NewNop().Sugar()
}

// Cleanup flushes the default logger.
func Cleanup() {
	if defaultFlusher != nil {
		_ = defaultFlusher()
	}
}

// Logger is used for logging formatted messages.
type Logger interface {
	// Debugf logs messages at DEBUG level.
	Debugf(format string, args ...interface{})
	// Infof logs messages at INFO level.
	Infof(format string, args ...interface{})
	// Warnf logs messages at WARN level.
	Warnf(format string, args ...interface{})
	// Errorf logs messages at ERROR level.
	Errorf(format string, args ...interface{})
	// Fatalf logs messages at FATAL level.
	Fatalf(format string, args ...interface{})
}
