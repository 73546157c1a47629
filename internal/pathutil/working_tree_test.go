package pathutil_test

import (
	"path/filepath"
	"testing"

	"github.com/Nivl/gitlet-go/internal/pathutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkingTreeFromPath(t *testing.T) {
	t.Parallel()

	t.Run("should be found fom subdir", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		root := filepath.Join(string(filepath.Separator), "repo")
		require.NoError(t, fs.MkdirAll(filepath.Join(root, ".gitlet"), 0o755))

		finalPath := filepath.Join(root, "a", "b", "c")
		require.NoError(t, fs.MkdirAll(finalPath, 0o755))

		p, err := pathutil.WorkingTreeFromPath(fs, finalPath, ".gitlet")
		require.NoError(t, err)
		assert.Equal(t, root, p)
	})

	t.Run("a file with the right name should be skipped", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		root := filepath.Join(string(filepath.Separator), "repo")
		require.NoError(t, fs.MkdirAll(root, 0o755))
		require.NoError(t, afero.WriteFile(fs, filepath.Join(root, ".gitlet"), []byte{}, 0o644))

		_, err := pathutil.WorkingTreeFromPath(fs, root, ".gitlet")
		require.Error(t, err)
		assert.ErrorIs(t, err, pathutil.ErrNoRepo)
	})

	t.Run("no repo should return an error", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		finalPath := filepath.Join(string(filepath.Separator), "a", "b", "c")
		require.NoError(t, fs.MkdirAll(finalPath, 0o755))

		_, err := pathutil.WorkingTreeFromPath(fs, finalPath, ".gitlet")
		require.Error(t, err)
		assert.ErrorIs(t, err, pathutil.ErrNoRepo)
	})
}
