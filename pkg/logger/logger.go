// Package logger is a thin leveled wrapper over the standard logger.
// Campaigns emit one line per listing and per send, so grep-able level
// prefixes matter more here than structured output.
package logger

import (
	"log"
)

// Init sets the logging flags. Called once from main; microseconds help
// when correlating send attempts against the Hostify inbox timeline.
func Init() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

func Infof(format string, v ...any) {
	log.Printf("[INFO] "+format, v...)
}

func Warnf(format string, v ...any) {
	log.Printf("[WARN] "+format, v...)
}

func Errorf(format string, v ...any) {
	log.Printf("[ERROR] "+format, v...)
}

func Debugf(format string, v ...any) {
	log.Printf("[DEBUG] "+format, v...)
}

func Fatalf(format string, v ...any) {
	log.Fatalf("[FATAL] "+format, v...)
}
