// Copyright 2019 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package log is a thin, structured wrapper around log/slog, in the same
// spirit as the upstream client's logging package: a package-level root
// logger, level constants below slog's Debug for very hot-path tracing, and
// a handful of free functions (Trace/Debug/Warn/Error) that attach key-value
// pairs without callers needing to build slog.Attr values by hand.
package log

import (
	"context"
	"log/slog"
	"os"
)

const (
	LevelTrace slog.Level = -8
	LevelDebug            = slog.LevelDebug
	LevelInfo             = slog.LevelInfo
	LevelWarn             = slog.LevelWarn
	LevelError            = slog.LevelError
)

var root = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: LevelTrace}))

// SetDefault installs l as the root logger used by all package-level log
// calls; embedders that want JSON output or a different sink call this once
// at startup.
func SetDefault(l *slog.Logger) { root = l }

func Trace(msg string, ctx ...any) { root.Log(context.Background(), LevelTrace, msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }

// New returns a logger pre-populated with ctx, mirroring slog.With but kept
// under this package so call sites don't need to import log/slog directly.
func New(ctx ...any) *slog.Logger { return root.With(ctx...) }
