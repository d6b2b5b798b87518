package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	require.True(t, FileExists(file))
	require.False(t, FileExists(dir), "directories are not files")
	require.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}

func TestEnsureDirectoryCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output", "report")
	require.NoError(t, EnsureDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestTempFileNameStaysInDirectory(t *testing.T) {
	path := filepath.Join("out", "data.csv")
	tmp := TempFileName(path)

	require.Equal(t, "out", filepath.Dir(tmp))
	require.True(t, strings.HasPrefix(filepath.Base(tmp), ".data.csv."))
	require.True(t, strings.HasSuffix(tmp, ".tmp"))
	require.NotEqual(t, tmp, TempFileName(path))
}

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0644))

	err := WriteFileAtomic(path, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "new")
		return err
	})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be gone")
}

func TestWriteFileAtomicLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	boom := errors.New("boom")

	err := WriteFileAtomic(path, func(w io.Writer) error {
		fmt.Fprint(w, "partial")
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
