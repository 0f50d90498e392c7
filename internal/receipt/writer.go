package receipt

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ginjaninja78/store-pos/internal/logger"
	"github.com/ginjaninja78/store-pos/pkg/utils"

	"go.uber.org/zap"
)

// Extension is the receipt file extension.
const Extension = ".txt"

// WriteError reports a receipt that could not be persisted after every
// attempt.
type WriteError struct {
	Dir      string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write receipt to %s failed after %d attempt(s): %v", e.Dir, e.Attempts, e.Err)
}

// Unwrap returns the last underlying error.
func (e *WriteError) Unwrap() error { return e.Err }

// Writer persists receipts as text files in Dir.
type Writer struct {
	// Dir is created on first use.
	Dir string

	// Attempts is the maximum number of tries per receipt (at least one).
	Attempts int

	// Delay is the pause between attempts.
	Delay time.Duration

	Logger *zap.Logger
}

// NewWriter returns a Writer for dir.
func NewWriter(dir string, attempts int, delay time.Duration, log *zap.Logger) *Writer {
	return &Writer{Dir: dir, Attempts: attempts, Delay: delay, Logger: logger.OrNop(log)}
}

// Save renders r and writes it to a new file named after the receipt
// timestamp, for example receiptsFolder/202610141041.txt. A receipt saved in
// the same minute as an earlier one gets a -2, -3, ... suffix; existing files
// are never replaced. On failure no file is left behind.
//
// RETURNS:
//   - The path of the written file.
//   - A *WriteError if every attempt failed, or ctx's error if ctx ends
//     while waiting between attempts.
func (w *Writer) Save(ctx context.Context, r *Receipt) (string, error) {
	attempts := w.Attempts
	if attempts < 1 {
		attempts = 1
	}
	log := logger.OrNop(w.Logger)

	text := r.Render()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		path, err := w.write(r.FileBase(), text)
		if err == nil {
			log.Info("receipt saved",
				zap.String("receipt_id", r.ID.String()),
				zap.String("path", path),
				zap.Int("attempt", attempt))
			return path, nil
		}

		lastErr = err
		log.Warn("receipt write failed",
			zap.String("receipt_id", r.ID.String()),
			zap.String("dir", w.Dir),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err))

		if attempt < attempts && w.Delay > 0 {
			timer := time.NewTimer(w.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}
	}

	return "", &WriteError{Dir: w.Dir, Attempts: attempts, Err: lastErr}
}

func (w *Writer) write(base, text string) (path string, err error) {
	if _, err := utils.EnsureDirectory(w.Dir); err != nil {
		return "", err
	}

	file, path, err := utils.CreateUnique(w.Dir, base, Extension)
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file: %w", err)
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close receipt file: %w", closeErr)
		}
		if err != nil {
			os.Remove(path)
			path = ""
		}
	}()

	if _, err = file.WriteString(text); err != nil {
		return path, fmt.Errorf("failed to write receipt file: %w", err)
	}
	if err = file.Sync(); err != nil {
		return path, fmt.Errorf("failed to sync receipt file: %w", err)
	}
	return path, nil
}

// List returns the receipt files saved in dir, sorted by name.
func List(dir string) ([]string, error) {
	return utils.ListFiles(dir, Extension)
}
