// Package logger provides a thin verbosity-gated wrapper around the
// standard library logger. Debug output is suppressed unless verbose
// mode has been enabled (typically via the CLI --verbose flag).
package logger

import (
	"log"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
)

// SetVerbose enables or disables debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Verbose reports whether debug output is enabled.
func Verbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// Debug logs a formatted message only when verbose mode is enabled.
func Debug(format string, args ...any) {
	if !Verbose() {
		return
	}
	log.Printf("DEBUG "+format, args...)
}

// Info logs a formatted informational message.
func Info(format string, args ...any) {
	log.Printf("INFO "+format, args...)
}

// Warn logs a formatted warning message.
func Warn(format string, args ...any) {
	log.Printf("WARN "+format, args...)
}

// Error logs a formatted error message.
func Error(format string, args ...any) {
	log.Printf("ERROR "+format, args...)
}
