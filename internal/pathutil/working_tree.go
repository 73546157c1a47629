package pathutil

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrNoRepo is an error returned when no repo are found
var ErrNoRepo = errors.New("not in an initialized Gitlet directory")

// WorkingTreeFromPath returns the absolute path to the root of a repo
// containing the provided directory. The root of a repo is the
// first directory containing a dotGitDirName directory, starting from p
// and walking up the tree
func WorkingTreeFromPath(fs afero.Fs, p, dotGitDirName string) (path string, err error) {
	prev := ""
	for p != prev {
		info, err := fs.Stat(filepath.Join(p, dotGitDirName))
		if err == nil && info.IsDir() {
			return p, nil
		}

		prev = p
		p = filepath.Dir(p)
	}
	return "", ErrNoRepo
}
