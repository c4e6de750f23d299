// SPDX-License-Identifier: Unlicense OR MIT

// Package logutil hands out prefixed loggers that share one output.
// The output discards everything until SetOutput is called.
package logutil

import (
	"io"
	"log"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	loggers []*log.Logger
)

// GetLogger returns a new logger with the given prefix writing to the
// shared output.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.Lmicroseconds)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects all loggers returned by GetLogger, past and
// future, to w. A nil w discards output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	out = w
	for _, logger := range loggers {
		logger.SetOutput(w)
	}
}
