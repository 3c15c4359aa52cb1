package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Loggers start out discarding so packages can log before Initialize runs
// (and in tests).
var (
	InfoLog    = log.New(io.Discard, "", 0)
	WarningLog = log.New(io.Discard, "", 0)
	ErrorLog   = log.New(io.Discard, "", 0)
)

var logFileName = filepath.Join(os.TempDir(), "sidepane.log")

var globalLogFile *os.File

// LogFileName returns the path Initialize writes to.
func LogFileName() string {
	return logFileName
}

// Initialize opens the log file and points the package loggers at it. The
// program's output belongs to the TUI, so nothing is logged to stderr.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	InfoLog = log.New(f, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(f, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(f, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)

	globalLogFile = f
}

// Close flushes the log file and tells the user where it is.
func Close() {
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	fmt.Println("wrote logs to " + logFileName)
}
