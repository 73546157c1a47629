// Package gitlet contains methods to interact with a gitlet repository
package gitlet

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nivl/gitlet-go/backend"
	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/config"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/Nivl/gitlet-go/internal/worktree"
	"github.com/spf13/afero"
)

// List of errors returned by the Repository struct
var (
	ErrRepositoryNotExist           = errors.New("repository does not exist")
	ErrRepositoryUnsupportedVersion = errors.New("repository not supported")
	ErrRepositoryExists             = backend.ErrRepositoryExists
)

// Repository represents a gitlet repository
// A gitlet repository is the .gitlet/ folder inside a project, and
// the flat directory it tracks.
// Every method loads the state it needs from disk, and persists the
// changes before returning
type Repository struct {
	Config *config.Config

	dotGitlet *backend.Backend
	wt        *worktree.Worktree
	hash      githash.Hash

	now            func() time.Time
	strictPrefixes bool
}

// Options contains all the optional data used to initialize or open a
// repository
type Options struct {
	// Now returns the time used to date the new commits
	// Defaults to time.Now
	Now func() time.Time
	// StrictPrefixes makes the short commit IDs that match more than
	// one object fail with ginternals.ErrObjectAmbiguous instead of
	// using the first match.
	// Also enabled by core.strictprefixes in the config files
	StrictPrefixes bool
}

// InitRepository initializes a new gitlet repository by creating the
// .gitlet directory, the initial commit, and the default branch
func InitRepository(cfg *config.Config) (*Repository, error) {
	return InitRepositoryWithOptions(cfg, Options{})
}

// InitRepositoryWithOptions initializes a new gitlet repository by
// creating the .gitlet directory, the initial commit, and the default
// branch
func InitRepositoryWithOptions(cfg *config.Config, opts Options) (*Repository, error) {
	r, err := newRepository(cfg, opts)
	if err != nil {
		return nil, err
	}
	if err = r.init(cfg, opts); err != nil {
		r.Close() //nolint:errcheck // we already are returning an error
		return nil, err
	}
	return r, nil
}

// init creates the layout of the repository, its initial commit, and
// its default branch
func (r *Repository) init(cfg *config.Config, opts Options) error {
	branchName := ginternals.Master
	if name, ok := cfg.FromFile().DefaultBranch(); ok {
		branchName = name
	}
	if err := r.dotGitlet.Init(branchName); err != nil {
		return fmt.Errorf("could not initialize the repository: %w", err)
	}
	// the config files may have changed during the init
	r.loadOptions(opts)

	root := object.NewRootCommit(r.hash)
	if _, err := r.dotGitlet.WriteObject(root.ToObject()); err != nil {
		return fmt.Errorf("could not write the initial commit: %w", err)
	}
	if err := r.dotGitlet.WriteBranch(ginternals.NewBranch(branchName, root.ID())); err != nil {
		return fmt.Errorf("could not create branch %s: %w", branchName, err)
	}
	return nil
}

// OpenRepository loads an existing gitlet repository
func OpenRepository(cfg *config.Config) (*Repository, error) {
	return OpenRepositoryWithOptions(cfg, Options{})
}

// OpenRepositoryWithOptions loads an existing gitlet repository
func OpenRepositoryWithOptions(cfg *config.Config, opts Options) (*Repository, error) {
	// HEAD is always there, so we use it to check if the repo
	// exists
	exists, err := afero.Exists(cfg.FS, cfg.HEADPath())
	if err != nil {
		return nil, fmt.Errorf("could not check for a repository at %s: %w", cfg.GitletDirPath, err)
	}
	if !exists {
		return nil, ErrRepositoryNotExist
	}
	if version, ok := cfg.FromFile().RepoFormatVersion(); ok && version != config.SupportedFormatVersion {
		return nil, fmt.Errorf("version %d: %w", version, ErrRepositoryUnsupportedVersion)
	}

	return newRepository(cfg, opts)
}

// we make sure the backend can be used to load the blobs of the
// working tree
var _ worktree.ObjectReader = (*backend.Backend)(nil)

func newRepository(cfg *config.Config, opts Options) (*Repository, error) {
	h := githash.NewSHA1()
	b, err := backend.New(cfg, h)
	if err != nil {
		return nil, fmt.Errorf("could not create backend: %w", err)
	}
	r := &Repository{
		Config:    cfg,
		dotGitlet: b,
		hash:      h,
		wt:        worktree.New(cfg.FS, cfg.WorkTreePath, h, b),
	}
	r.loadOptions(opts)
	return r, nil
}

func (r *Repository) loadOptions(opts Options) {
	r.now = opts.Now
	if r.now == nil {
		r.now = time.Now
	}
	r.strictPrefixes = opts.StrictPrefixes || r.Config.FromFile().StrictPrefixes()
}

// Close frees the resources used by the repository
func (r *Repository) Close() error {
	return r.dotGitlet.Close()
}

// Hash returns the hash algorithm used by the repository
func (r *Repository) Hash() githash.Hash {
	return r.hash
}

// state contains the data every operation needs: the active branch,
// the commit it points to, and the staging area
type state struct {
	branch string
	head   *object.Commit
	index  *ginternals.Index
}

func (r *Repository) loadState() (*state, error) {
	name, err := r.dotGitlet.HEAD()
	if err != nil {
		return nil, fmt.Errorf("could not get the active branch: %w", err)
	}
	head, err := r.branchCommit(name)
	if err != nil {
		return nil, err
	}
	idx, err := r.dotGitlet.Index()
	if err != nil {
		return nil, fmt.Errorf("could not load the staging area: %w", err)
	}
	return &state{
		branch: name,
		head:   head,
		index:  idx,
	}, nil
}

// advance moves the active branch to the given commit and clears the
// staging area
func (r *Repository) advance(st *state, c *object.Commit) error {
	if err := r.dotGitlet.WriteBranch(ginternals.NewBranch(st.branch, c.ID())); err != nil {
		return fmt.Errorf("could not update branch %s: %w", st.branch, err)
	}
	st.head = c
	return r.clearIndex(st)
}

func (r *Repository) clearIndex(st *state) error {
	st.index.Clear()
	if err := r.dotGitlet.WriteIndex(st.index); err != nil {
		return fmt.Errorf("could not clear the staging area: %w", err)
	}
	return nil
}
