// ABOUTME: File-backed logger for the TUI and background cart sync
// ABOUTME: Keeps diagnostics out of the terminal while the TUI owns the screen

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	logFile *os.File
	mu      sync.Mutex
	enabled bool
)

// Init opens the log file inside dataDir. If dataDir is empty, logging is
// disabled and all calls become no-ops.
func Init(dataDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if dataDir == "" {
		enabled = false
		return nil
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		enabled = false
		return err
	}

	logPath := filepath.Join(dataDir, "storefront.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		enabled = false
		return err
	}

	logFile = f
	enabled = true
	return nil
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	enabled = false
}

// Log writes a message to the log file.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, msg)
}

// Error logs an error with context.
func Error(context string, err error) {
	if err == nil {
		return
	}
	Log("ERROR [%s]: %v", context, err)
}

// Sync logs the outcome of a background cart reconciliation call.
func Sync(op string, bookID int64, err error) {
	if err == nil {
		Log("sync %s book=%d ok", op, bookID)
		return
	}
	Log("sync %s book=%d failed: %v", op, bookID, err)
}
