// Package logging provides the loader's diagnostic logger: a package-level
// *log.Logger multiplexed over a log file and any extra writers, mirroring
// the teacher tool's app/logging package. The loader hands a thin Logger
// view of this package to mods through the Initializer (spec §6.4).
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	logFile *os.File
	logger  *log.Logger
	debug   bool
)

// Init initializes the logging system, creating logFilePath's parent
// directory if needed and multiplexing output across the log file and any
// extraWriters (e.g. an io.Writer adapter feeding a Store).
func Init(logFilePath string, extraWriters ...io.Writer) error {
	var err error
	logDir := filepath.Dir(logFilePath)
	if err = os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logFile, err = os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	writers := []io.Writer{logFile}
	writers = append(writers, extraWriters...)
	logger = log.New(io.MultiWriter(writers...), "", log.LstdFlags)
	logger.Println("Logging initialized.")
	return nil
}

// SetDebug toggles whether Debug/Debugf calls are emitted.
func SetDebug(enable bool) { debug = enable }

// Info logs an informational message.
func Info(v ...interface{}) {
	if logger == nil {
		return
	}
	logger.Println(v...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...interface{}) {
	if logger == nil {
		return
	}
	logger.Printf(format, v...)
}

// Warn logs a warning message.
func Warn(v ...interface{}) {
	if logger == nil {
		return
	}
	logger.Println(append([]interface{}{"WARN:"}, v...)...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, v ...interface{}) {
	if logger == nil {
		return
	}
	logger.Printf("WARN: "+format, v...)
}

// Error logs an error message.
func Error(v ...interface{}) {
	if logger == nil {
		return
	}
	logger.Println(append([]interface{}{"ERROR:"}, v...)...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	if logger == nil {
		return
	}
	logger.Printf("ERROR: "+format, v...)
}

// Debug logs a debug message, if debug logging is enabled via SetDebug.
func Debug(v ...interface{}) {
	if logger == nil || !debug {
		return
	}
	logger.Println(append([]interface{}{"DEBUG:"}, v...)...)
}

// Debugf logs a formatted debug message, if debug logging is enabled.
func Debugf(format string, v ...interface{}) {
	if logger == nil || !debug {
		return
	}
	logger.Printf("DEBUG: "+format, v...)
}

// Close gracefully closes the log file handle.
func Close() {
	if logFile != nil {
		if logger != nil {
			logger.Println("Closing log file.")
		}
		logFile.Close()
	}
}
