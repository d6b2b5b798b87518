// =============================================================================
// Commerce CSV - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the record store:
//   - File existence checks
//   - Directory management
//   - Atomic file replacement (write to a temporary sibling, then rename)
//
// ATOMIC WRITE STRATEGY:
//   - Content is written to ".<name>.<uuid>.tmp" in the destination directory
//   - The temporary file is synced and renamed over the destination
//   - On any failure the temporary file is removed and the destination is
//     left untouched
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectory creates dir and its parents if they don't exist.
func EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// FILE CHECKS
// =============================================================================

// FileExists checks if a regular file exists at path.
// Directories and unreadable entries do not count.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// =============================================================================
// ATOMIC WRITE
// =============================================================================

// TempFileName returns the temporary sibling name used for path.
func TempFileName(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))
}

// WriteFileAtomic replaces path with the content produced by write.
//
// PARAMETERS:
//   - path: The destination file. Its directory must exist.
//   - write: Produces the file content. Its error aborts the write.
//
// RETURNS:
//   - An error if the content cannot be produced, flushed, synced or renamed.
//     No partial file is left behind on error.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	tmpPath := TempFileName(path)

	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			file.Close()
			os.Remove(tmpPath)
		}
	}()

	writer := bufio.NewWriter(file)
	if err = write(writer); err != nil {
		return err
	}
	if err = writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", tmpPath, err)
	}
	if err = file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
