package gitlet_test

import (
	"testing"

	"github.com/Nivl/gitlet-go"
	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/internal/worktree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutFile(t *testing.T) {
	t.Parallel()

	t.Run("should restore a deleted file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello\x00\n"})
		r.remove(t, "a.txt")

		require.NoError(t, r.CheckoutFile("a.txt"))
		assert.Equal(t, "hello\x00\n", r.read(t, "a.txt"))
	})

	t.Run("should leave the staging area untouched", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "first", map[string]string{"a.txt": "hello"})
		r.write(t, "a.txt", "world")
		require.NoError(t, r.Add("a.txt"))

		require.NoError(t, r.CheckoutFile("a.txt"))
		assert.Equal(t, "hello", r.read(t, "a.txt"))
		s := r.status(t)
		assert.Equal(t, []string{"a.txt"}, s.Staged)
		require.Len(t, s.Unstaged, 1)
		assert.Equal(t, gitlet.ChangeModified, s.Unstaged[0].Kind)
	})

	t.Run("should fail on an untracked file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.write(t, "a.txt", "hello")
		err := r.CheckoutFile("a.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrFileNotInCommit)
		assert.Equal(t, "hello", r.read(t, "a.txt"))
	})
}

func TestCheckoutFileAt(t *testing.T) {
	t.Parallel()

	r := newRepo(t)
	c1 := r.commitFiles(t, "first", map[string]string{"a.txt": "v1"})
	r.commitFiles(t, "second", map[string]string{"a.txt": "v2", "b.txt": "b"})

	t.Run("should restore the version of an old commit", func(t *testing.T) {
		require.NoError(t, r.CheckoutFileAt(c1.ID().String()[:8], "a.txt"))
		assert.Equal(t, "v1", r.read(t, "a.txt"))
		// the file is now different from the tracked version
		s := r.status(t)
		require.Len(t, s.Unstaged, 1)
		assert.Equal(t, "a.txt", s.Unstaged[0].Name)
	})

	t.Run("should fail if the commit doesn't have the file", func(t *testing.T) {
		err := r.CheckoutFileAt(c1.ID().String(), "b.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrFileNotInCommit)
	})

	t.Run("should fail on an unknown commit", func(t *testing.T) {
		err := r.CheckoutFileAt("0000000", "a.txt")
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrCommitNotFound)
	})
}

func TestCheckoutBranch(t *testing.T) {
	t.Parallel()

	t.Run("should fail on invalid branches", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		err := r.CheckoutBranch("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrBranchNotFound)

		err = r.CheckoutBranch(ginternals.Master)
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrAlreadyOnBranch)
	})

	t.Run("should switch the working tree", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		base := r.commitFiles(t, "base", map[string]string{"a.txt": "a", "b.txt": "b"})
		r.branch(t, "dev")
		r.checkout(t, "dev")
		require.NoError(t, r.Rm("b.txt"))
		dev := r.commitFiles(t, "on dev", map[string]string{"a.txt": "dev", "c.txt": "c"})
		// staged changes are dropped by the checkout
		r.write(t, "d.txt", "d")
		require.NoError(t, r.Add("d.txt"))

		r.checkout(t, ginternals.Master)
		branch, head := r.head(t)
		assert.Equal(t, ginternals.Master, branch)
		assert.Equal(t, base.ID(), head.ID())
		assert.Equal(t, "a", r.read(t, "a.txt"))
		assert.Equal(t, "b", r.read(t, "b.txt"))
		assert.False(t, r.exists(t, "c.txt"))
		// d.txt was never committed, so it's now untracked
		s := r.status(t)
		assert.Empty(t, s.Staged)
		assert.Equal(t, []string{"d.txt"}, s.Untracked)

		r.remove(t, "d.txt")
		r.checkout(t, "dev")
		_, head = r.head(t)
		assert.Equal(t, dev.ID(), head.ID())
		assert.Equal(t, "dev", r.read(t, "a.txt"))
		assert.False(t, r.exists(t, "b.txt"))
		assert.Equal(t, "c", r.read(t, "c.txt"))
	})

	t.Run("should refuse to overwrite an untracked file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		r.commitFiles(t, "base", map[string]string{"a.txt": "a"})
		r.branch(t, "dev")
		r.checkout(t, "dev")
		r.commitFiles(t, "on dev", map[string]string{"b.txt": "b"})
		r.checkout(t, ginternals.Master)
		r.write(t, "b.txt", "untracked")
		r.write(t, "a.txt", "changed")

		err := r.CheckoutBranch("dev")
		require.Error(t, err)
		assert.ErrorIs(t, err, worktree.ErrUntrackedFileConflict)

		// nothing should have changed
		branch, _ := r.head(t)
		assert.Equal(t, ginternals.Master, branch)
		assert.Equal(t, "untracked", r.read(t, "b.txt"))
		assert.Equal(t, "changed", r.read(t, "a.txt"))
	})
}

func TestReset(t *testing.T) {
	t.Parallel()

	t.Run("should move the branch and the working tree", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		c1 := r.commitFiles(t, "first", map[string]string{"a.txt": "v1"})
		r.commitFiles(t, "second", map[string]string{"a.txt": "v2", "b.txt": "b"})
		r.write(t, "c.txt", "c")
		require.NoError(t, r.Add("c.txt"))

		require.NoError(t, r.Reset(c1.ID().String()[:6]))
		branch, head := r.head(t)
		assert.Equal(t, ginternals.Master, branch)
		assert.Equal(t, c1.ID(), head.ID())
		assert.Equal(t, "v1", r.read(t, "a.txt"))
		assert.False(t, r.exists(t, "b.txt"))

		s := r.status(t)
		assert.Empty(t, s.Staged)
		assert.Equal(t, []string{"c.txt"}, s.Untracked)

		commits, err := r.Log()
		require.NoError(t, err)
		assert.Len(t, commits, 2)
	})

	t.Run("should fail on an unknown commit", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		err := r.Reset("0000000000000000000000000000000000000000")
		require.Error(t, err)
		assert.ErrorIs(t, err, gitlet.ErrCommitNotFound)
	})

	t.Run("should refuse to overwrite an untracked file", func(t *testing.T) {
		t.Parallel()

		r := newRepo(t)
		c1 := r.commitFiles(t, "first", map[string]string{"a.txt": "a"})
		require.NoError(t, r.Rm("a.txt"))
		c2 := r.commitFiles(t, "second", map[string]string{"b.txt": "b"})
		r.write(t, "a.txt", "untracked")

		err := r.Reset(c1.ID().String())
		require.Error(t, err)
		assert.ErrorIs(t, err, worktree.ErrUntrackedFileConflict)

		_, head := r.head(t)
		assert.Equal(t, c2.ID(), head.ID())
		assert.Equal(t, "untracked", r.read(t, "a.txt"))
		assert.Equal(t, "b", r.read(t, "b.txt"))
	})
}
