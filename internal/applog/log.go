// Package applog provides application logging to stderr and a rotating log
// file under the user's config directory.
package applog

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var logger = log.New(os.Stderr, "", log.LstdFlags)

// Setup directs log output to stderr and a rotating file under dir/logs.
// Called once at startup; before that, logging goes to stderr only.
func Setup(dir string) {
	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "logs", "wallsplit.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	logger = log.New(io.MultiWriter(os.Stderr, rotator), "", log.LstdFlags)
}

// Printf logs a formatted message.
func Printf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}

// Println logs a message.
func Println(v ...interface{}) {
	logger.Println(v...)
}
