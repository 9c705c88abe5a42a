package logger

import (
	"log"
	"sync/atomic"
)

var debug atomic.Bool

// SetDebug toggles debug output.
func SetDebug(on bool) { debug.Store(on) }

func Debugf(format string, v ...any) {
	if debug.Load() {
		log.Printf("DEBUG "+format, v...)
	}
}
