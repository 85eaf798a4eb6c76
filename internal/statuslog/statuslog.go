// Package statuslog maintains the append-only per-AIP status ledger
// (log.csv) in the batch root. The file is opened once per run by a single
// writer and flushed after every row so partial-run state survives a crash.
package statuslog

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
)

var header = []string{"AIP Folder", "Status"}

// Writer appends terminal AIP outcomes to the status log.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	csv  *csv.Writer
}

// Open opens (or creates) the status log at path. The header row is written
// only when the file is new, so re-runs against the same batch root extend
// the existing log.
func Open(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open status log: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat status log: %w", err)
	}

	w := &Writer{file: file, csv: csv.NewWriter(file)}
	if info.Size() == 0 {
		if err := w.csv.Write(header); err != nil {
			file.Close()
			return nil, fmt.Errorf("write status log header: %w", err)
		}
		w.csv.Flush()
		if err := w.csv.Error(); err != nil {
			file.Close()
			return nil, fmt.Errorf("flush status log header: %w", err)
		}
	}
	return w, nil
}

// Record appends one terminal row: the AIP's source folder name and either
// "Complete" or the error kind.
func (w *Writer) Record(folder, status string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.csv.Write([]string{folder, status}); err != nil {
		return fmt.Errorf("write status row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("flush status row: %w", err)
	}
	return w.file.Sync()
}

// Close flushes buffered rows and closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
