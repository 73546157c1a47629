// Package testhelper contains helpers to simplify tests
package testhelper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// TempDir creates a temp dir and returns a cleanup method
func TempDir(t *testing.T) (out string, cleanup func()) {
	t.Helper()

	out, err := os.MkdirTemp("", strings.ReplaceAll(t.Name(), "/", "_")+"_")
	require.NoError(t, err)
	// On macOS the temp dir is behind a symlink
	out, err = filepath.EvalSymlinks(out)
	require.NoError(t, err)

	cleanup = func() {
		require.NoError(t, os.RemoveAll(out))
	}
	return out, cleanup
}

// MemDir returns an in-memory filesystem containing an empty
// directory, alongside the absolute path of that directory
func MemDir(t *testing.T) (fs afero.Fs, path string) {
	t.Helper()

	fs = afero.NewMemMapFs()
	path = filepath.Join(string(filepath.Separator), "work", strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, fs.MkdirAll(path, 0o755))
	return fs, path
}

// WriteFile writes a file in dir, failing the test on error
func WriteFile(t *testing.T, fs afero.Fs, dir, name, content string) {
	t.Helper()

	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte(content), 0o644))
}

// ReadFile returns the content of a file in dir, failing the test on
// error
func ReadFile(t *testing.T, fs afero.Fs, dir, name string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

// FileExists returns whether a file exists in dir
func FileExists(t *testing.T, fs afero.Fs, dir, name string) bool {
	t.Helper()

	exists, err := afero.Exists(fs, filepath.Join(dir, name))
	require.NoError(t, err)
	return exists
}
