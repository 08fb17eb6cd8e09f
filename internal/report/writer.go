package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Writer persists reports as JSON, one document per line, appending so that
// repeated runs over growing logs keep their history.
type Writer struct {
	mu       sync.Mutex
	filePath string
}

// NewWriter creates a report writer for the given path
func NewWriter(filePath string) *Writer {
	return &Writer{
		filePath: filePath,
	}
}

// Write appends the report to the file in a thread-safe manner
func (w *Writer) Write(r *Report) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	return nil
}
