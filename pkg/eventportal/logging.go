// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eventportal

import (
	"io"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel is the severity scale of the client's own logging.
type LogLevel int

const (
	LogLevelSilent LogLevel = iota
	LogLevelFatalError
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// String implements the fmt.Stringer interface.
func (l LogLevel) String() string {
	switch l {
	case LogLevelSilent:
		return "silent"
	case LogLevelFatalError:
		return "fatal"
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelInfo:
		return "info"
	case LogLevelDebug:
		return "debug"
	case LogLevelTrace:
		return "trace"
	}
	return strconv.Itoa(int(l))
}

// logrusLevel maps l onto logrus. Silent maps to the panic level,
// which the client never logs at.
func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LogLevelFatalError:
		return logrus.FatalLevel
	case LogLevelError:
		return logrus.ErrorLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	case LogLevelInfo:
		return logrus.InfoLevel
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelTrace:
		return logrus.TraceLevel
	}
	return logrus.PanicLevel
}

// Logger is the logging interface used by the Client.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards all logs.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{}) {}
func (NopLogger) Infof(string, ...interface{})  {}
func (NopLogger) Warnf(string, ...interface{})  {}
func (NopLogger) Errorf(string, ...interface{}) {}

var _ Logger = (*ConsoleLogger)(nil)

// ConsoleLogger is a Logger writing text lines through logrus.
// Every line carries the application id it was created with.
type ConsoleLogger struct {
	mu     sync.RWMutex
	level  LogLevel
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewConsoleLogger returns a ConsoleLogger writing to w at the given level.
func NewConsoleLogger(appID string, level LogLevel, w io.Writer) *ConsoleLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    true,
		DisableQuote:     true,
		QuoteEmptyFields: true,
	}
	c := &ConsoleLogger{
		logger: l,
		entry:  l.WithField("app", appID),
	}
	c.SetLogLevel(level)
	return c
}

// SetLogLevel changes the level and returns the previous one.
func (c *ConsoleLogger) SetLogLevel(level LogLevel) LogLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.level
	c.level = level
	c.logger.SetLevel(level.logrusLevel())
	return prev
}

// GetLogLevel returns the current level.
func (c *ConsoleLogger) GetLogLevel() LogLevel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

func (c *ConsoleLogger) Debugf(format string, args ...interface{}) {
	c.entry.Debugf(format, args...)
}

func (c *ConsoleLogger) Infof(format string, args ...interface{}) {
	c.entry.Infof(format, args...)
}

func (c *ConsoleLogger) Warnf(format string, args ...interface{}) {
	c.entry.Warnf(format, args...)
}

func (c *ConsoleLogger) Errorf(format string, args ...interface{}) {
	c.entry.Errorf(format, args...)
}
