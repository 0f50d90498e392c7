// =============================================================================
// Store POS Simulator - File Manager Utility
// =============================================================================
//
// File helpers shared by the receipt writer and the CLI:
//   - Directory management (lazy creation)
//   - Collision-free file creation
//   - File discovery for listing saved receipts
//
// =============================================================================

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxUniqueSuffix bounds the number of "-N" suffixes CreateUnique tries.
const MaxUniqueSuffix = 1000

// EnsureDirectory creates dir and its parents if they don't exist.
//
// RETURNS:
//   - true if the directory was created by this call.
//   - An error if the directory cannot be created or the path is a file.
func EnsureDirectory(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dir)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return true, nil
}

// CreateUnique creates a new file named base+ext in dir without ever
// replacing an existing file. If base+ext is taken, base-2+ext, base-3+ext
// and so on are tried.
//
// RETURNS:
//   - The open file; the caller must close it.
//   - The path of the created file.
//   - An error if no name is free or the file cannot be created.
func CreateUnique(dir, base, ext string) (*os.File, string, error) {
	for n := 1; n <= MaxUniqueSuffix; n++ {
		name := base + ext
		if n > 1 {
			name = fmt.Sprintf("%s-%d%s", base, n, ext)
		}
		path := filepath.Join(dir, name)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s%s in %s", base, ext, dir)
}

// ListFiles returns the regular files in dir whose extension matches ext
// (case-insensitive), sorted by name. A missing directory yields no files.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext == "" || strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
