// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/epexport/epexport/pkg/eventportal"
	"github.com/epexport/epexport/pkg/log"
)

// defaultLogLevel is the threshold outside of --verbose and --silent runs.
const defaultLogLevel = log.LevelInfo

// mapToSDKLevel translates a tool severity into the client logger level.
func mapToSDKLevel(l log.Level) eventportal.LogLevel {
	switch l {
	case log.LevelDebug:
		return eventportal.LogLevelDebug
	case log.LevelInfo:
		return eventportal.LogLevelInfo
	case log.LevelWarn:
		return eventportal.LogLevelWarn
	case log.LevelError:
		return eventportal.LogLevelError
	default:
		return eventportal.LogLevelSilent
	}
}

// levelGuard moves the root and client loggers to the level requested
// by the command line and back to the default once the command is done.
type levelGuard struct {
	logger       *log.Logger
	sdk          *eventportal.ConsoleLogger
	defaultLevel log.Level
}

// configure applies the verbosity flags. Silent wins over verbose;
// with neither set the levels are left untouched.
func (g *levelGuard) configure(verbose, silent bool) {
	switch {
	case silent:
		g.set(log.LevelSilent)
	case verbose:
		g.set(log.LevelDebug)
	}
}

// restore resets both loggers to the default level. It is idempotent.
func (g *levelGuard) restore() {
	g.set(g.defaultLevel)
}

func (g *levelGuard) set(l log.Level) {
	g.logger.SetLogLevel(l.String())
	g.sdk.SetLogLevel(mapToSDKLevel(l))
}
