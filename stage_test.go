package gitlet_test

import (
	"fmt"
	"testing"

	"github.com/Nivl/gitlet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	t.Parallel()

	t.Run("should fail on invalid input", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			desc          string
			name          string
			expectedError error
		}{
			{
				desc:          "missing file",
				name:          "nope.txt",
				expectedError: gitlet.ErrFileNotFound,
			},
			{
				desc:          "empty name",
				name:          "",
				expectedError: gitlet.ErrInvalidFilename,
			},
			{
				desc:          "file in a directory",
				name:          "dir/a.txt",
				expectedError: gitlet.ErrInvalidFilename,
			},
			{
				desc:          "carriage return",
				name:          "a\r",
				expectedError: gitlet.ErrInvalidFilename,
			},
		}
		for i, tc := range testCases {
			tc := tc
			t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
				t.Parallel()

				r := newRepo(t)
				err := r.Add(tc.name)
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
			})
		}
	})

	t.Run("should stage a new file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.write(t, "a.txt", "hello")
		require.NoError(t, r.Add("a.txt"))

		s := r.status(t)
		assert.Equal(t, []string{"a.txt"}, s.Staged)
		assert.Empty(t, s.Removed)
		assert.Empty(t, s.Untracked)
	})

	t.Run("adding twice should be a no-op", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.write(t, "a.txt", "hello")
		require.NoError(t, r.Add("a.txt"))
		stage := r.read(t, ".gitlet/stage/add_stage")
		require.NoError(t, r.Add("a.txt"))
		assert.Equal(t, stage, r.read(t, ".gitlet/stage/add_stage"))
		assert.Equal(t, []string{"a.txt"}, r.status(t).Staged)
	})

	t.Run("should not stage an unchanged file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		require.NoError(t, r.Add("a.txt"))
		assert.Empty(t, r.status(t).Staged)

		_, err := r.Commit("nothing")
		assert.ErrorIs(t, err, gitlet.ErrNothingStaged)
	})

	t.Run("should stage the latest content", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		r.write(t, "a.txt", "world")
		require.NoError(t, r.Add("a.txt"))
		r.write(t, "a.txt", "mars")
		require.NoError(t, r.Add("a.txt"))

		c, err := r.Commit("second")
		require.NoError(t, err)
		oid, ok := c.BlobID("a.txt")
		require.True(t, ok)
		assert.Equal(t, blobID(r, "a.txt", "mars"), oid.String())
	})

	t.Run("should cancel a removal", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		require.NoError(t, r.Rm("a.txt"))
		assert.Equal(t, []string{"a.txt"}, r.status(t).Removed)

		r.write(t, "a.txt", "hello")
		require.NoError(t, r.Add("a.txt"))
		s := r.status(t)
		assert.Empty(t, s.Removed)
		assert.Empty(t, s.Staged)
		assert.Empty(t, s.Untracked)
	})
}

func TestRm(t *testing.T) {
	t.Parallel()

	t.Run("should unstage a staged file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.write(t, "a.txt", "hello")
		require.NoError(t, r.Add("a.txt"))
		require.NoError(t, r.Rm("a.txt"))

		s := r.status(t)
		assert.Empty(t, s.Staged)
		assert.Empty(t, s.Removed)
		assert.Equal(t, []string{"a.txt"}, s.Untracked)
		// the file should be left untouched
		assert.Equal(t, "hello", r.read(t, "a.txt"))
	})

	t.Run("should remove a tracked file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		require.NoError(t, r.Rm("a.txt"))
		assert.False(t, r.exists(t, "a.txt"))

		s := r.status(t)
		assert.Equal(t, []string{"a.txt"}, s.Removed)
		assert.Empty(t, s.Unstaged)
	})

	t.Run("should stage the removal of a file already deleted", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		r.remove(t, "a.txt")
		require.NoError(t, r.Rm("a.txt"))
		assert.Equal(t, []string{"a.txt"}, r.status(t).Removed)
	})

	t.Run("should fail if there is nothing to remove", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.write(t, "a.txt", "hello")
		err := r.Rm("a.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrNothingToRemove)
		assert.True(t, r.exists(t, "a.txt"))
	})

	t.Run("should commit the removal", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		first := r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		require.NoError(t, r.Rm("a.txt"))
		c, err := r.Commit("remove a")
		require.NoError(t, err)

		assert.True(t, c.Snapshot().IsEmpty())
		assert.Equal(t, first.ID(), c.ParentID())
		assert.False(t, r.exists(t, "a.txt"))
		s := r.status(t)
		assert.Empty(t, s.Removed)
		assert.Empty(t, s.Untracked)
	})
}
