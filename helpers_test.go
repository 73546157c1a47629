package gitlet_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Nivl/gitlet-go"
	"github.com/Nivl/gitlet-go/ginternals/config"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/Nivl/gitlet-go/internal/testhelper"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// newClock returns a function that returns a new time every time it's
// called, starting at 2021-01-02 03:04:05 UTC and moving forward a
// minute at a time
func newClock() func() time.Time {
	next := time.Date(2021, time.January, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
}

// testRepo contains a repository living in memory, and the
// accessors to its working tree
type testRepo struct {
	*gitlet.Repository
	fs  afero.Fs
	dir string
}

func newConfig(t *testing.T, fs afero.Fs, dir string) *config.Config {
	t.Helper()

	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		FS:                  fs,
		WorkingDirectory:    dir,
		SkipGitletDirLookUp: true,
	})
	require.NoError(t, err)
	return cfg
}

// newRepo returns a newly initialized repository
func newRepo(t *testing.T) *testRepo {
	t.Helper()

	fs, dir := testhelper.MemDir(t)
	r, err := gitlet.InitRepositoryWithOptions(newConfig(t, fs, dir), gitlet.Options{
		Now: newClock(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, r.Close())
	})
	return &testRepo{
		Repository: r,
		fs:         fs,
		dir:        dir,
	}
}

func (r *testRepo) write(t *testing.T, name, content string) {
	t.Helper()
	testhelper.WriteFile(t, r.fs, r.dir, name, content)
}

func (r *testRepo) read(t *testing.T, name string) string {
	t.Helper()
	return testhelper.ReadFile(t, r.fs, r.dir, name)
}

func (r *testRepo) exists(t *testing.T, name string) bool {
	t.Helper()
	return testhelper.FileExists(t, r.fs, r.dir, name)
}

func (r *testRepo) remove(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, r.fs.Remove(filepath.Join(r.dir, name)))
}

// commitFiles writes and stages the given files, then commits them
func (r *testRepo) commitFiles(t *testing.T, message string, files map[string]string) *object.Commit {
	t.Helper()

	for name, content := range files {
		r.write(t, name, content)
		require.NoError(t, r.Add(name))
	}
	c, err := r.Commit(message)
	require.NoError(t, err)
	return c
}

// head returns the active branch and the commit it points to
func (r *testRepo) head(t *testing.T) (string, *object.Commit) {
	t.Helper()

	name, c, err := r.HEAD()
	require.NoError(t, err)
	return name, c
}

// checkout switches to the given branch
func (r *testRepo) checkout(t *testing.T, branch string) {
	t.Helper()
	require.NoError(t, r.CheckoutBranch(branch))
}

// branch creates a new branch
func (r *testRepo) branch(t *testing.T, name string) {
	t.Helper()

	_, err := r.NewBranch(name)
	require.NoError(t, err)
}

func (r *testRepo) status(t *testing.T) *gitlet.Status {
	t.Helper()

	s, err := r.Status()
	require.NoError(t, err)
	return s
}

// blobID returns the ID of a blob without storing it
func blobID(r *testRepo, name, content string) string {
	return object.NewBlob(r.Hash(), name, []byte(content)).ID().String()
}
