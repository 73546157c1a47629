// Package config contains structs to interact with the repository
// configuration as well as to configure the library
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Nivl/gitlet-go/env"
	"github.com/Nivl/gitlet-go/internal/gitpath"
	"github.com/Nivl/gitlet-go/internal/pathutil"
	"github.com/spf13/afero"
)

// ErrNoWorkTreeAlone is thrown when a work tree path is given without
// a gitlet path
var ErrNoWorkTreeAlone = errors.New("cannot specify a work tree without also specifying a gitlet dir")

// Config represents the config of a repository, whether it's from
// the config files or from the options that can be set using
// the env
//
// If you decide to create a Config by yourself, make sure to set correct
// values everywhere
type Config struct {
	// FS represents the file system implementation to use to look for
	// files and directories.
	// Defaults to the regular filesystem.
	FS afero.Fs

	// fromFiles contains a reference to the config values held in
	// files
	fromFiles *FileAggregate
	// env is kept so the config files can be reloaded
	env *env.Env

	// GitletDirPath represents the path to the .gitlet directory
	// Maps to $GITLET_DIR if set
	// Defaults to finding a ".gitlet" folder in the current directory,
	// going up in the tree until reaching /
	GitletDirPath string
	// WorkTreePath represents the path to the directory tracked by
	// the repository
	// Maps to $GITLET_WORK_TREE
	// Defaults to the directory containing the .gitlet directory
	WorkTreePath string
	// ObjectDirPath represents the path to the .gitlet/objects directory
	// Maps to $GITLET_OBJECT_DIRECTORY
	// Defaults to $(GitletDirPath)/objects
	ObjectDirPath string
	// LocalConfig represents the config file to load
	// Maps to $GITLET_CONFIG
	// Defaults to $(GitletDirPath)/config if not sets
	LocalConfig string
}

// LoadConfigOptions represents all the params used to set the default
// values of a Config object
type LoadConfigOptions struct {
	// FS represents the file system implementation to use to look for
	// files and directories.
	// Defaults to the regular filesystem.
	FS afero.Fs
	// WorkingDirectory represents the current working directory
	// Defaults to the current working directory
	WorkingDirectory string
	// WorkTreePath corresponds to the directory that should contain
	// the .gitlet.
	// Set this value to change the default behavior and overwrite
	// $GITLET_WORK_TREE.
	WorkTreePath string
	// GitletDirPath corresponds to the .gitlet directory
	// Set this value to change the default behavior and overwrite
	// $GITLET_DIR.
	GitletDirPath string
	// SkipGitletDirLookUp will disable automatic lookup of the .gitlet
	// directory.
	// Defaults to false which means that if no path is provided
	// to $GitletDirPath or $GITLET_DIR, the method will look for a
	// .gitlet dir in $WorkingDirectory and will go up the tree until it
	// finds one.
	//
	// You should only set this value to true if you want to initialize a
	// new repository.
	SkipGitletDirLookUp bool
}

// LoadConfig returns a new Config that fetches the data from the
// env
// This is what you want to use to give your users some control over
// gitlet.
// If you want something more direct without control, use
// LoadConfigSkipEnv()
func LoadConfig(e *env.Env, opts LoadConfigOptions) (*Config, error) {
	cfg := &Config{
		env:           e,
		GitletDirPath: e.Get("GITLET_DIR"),
		WorkTreePath:  e.Get("GITLET_WORK_TREE"),
		ObjectDirPath: e.Get("GITLET_OBJECT_DIRECTORY"),
		LocalConfig:   e.Get("GITLET_CONFIG"),
	}

	if err := setConfig(e, cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigSkipEnv returns a new Config that skips the env
// and uses the default values
func LoadConfigSkipEnv(opts LoadConfigOptions) (*Config, error) {
	return LoadConfig(env.NewFromKVList([]string{}), opts)
}

func setConfig(e *env.Env, p *Config, opts LoadConfigOptions) (err error) {
	if opts.FS == nil {
		opts.FS = afero.NewOsFs()
	}
	p.FS = opts.FS

	// afero has no notion of current directory, so we rely on the
	// process' one for relative paths
	if opts.WorkingDirectory == "" || !filepath.IsAbs(opts.WorkingDirectory) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("could not get the current directory: %w", err)
		}
		opts.WorkingDirectory = filepath.Join(wd, opts.WorkingDirectory)
	}

	// $GITLET_WORK_TREE cannot be set if $GITLET_DIR isn't set
	if opts.GitletDirPath == "" && p.GitletDirPath == "" && (opts.WorkTreePath != "" || p.WorkTreePath != "") {
		return ErrNoWorkTreeAlone
	}

	// GitletDir rules:
	// - p.GitletDirPath contains either nothing or $GITLET_DIR
	// - opts.GitletDirPath contains either nothing or a value used to
	//   override p.GitletDirPath.
	// - If nothing set, a .gitlet directory will looked for by walking
	//   up the current directory.
	// - If relative, the path will be appended to the current working
	//   directory.
	if opts.GitletDirPath != "" {
		p.GitletDirPath = opts.GitletDirPath
	}
	guessedWorkingTree := opts.WorkingDirectory
	switch p.GitletDirPath {
	default:
		if !filepath.IsAbs(p.GitletDirPath) {
			p.GitletDirPath = filepath.Join(opts.WorkingDirectory, p.GitletDirPath)
		}
		guessedWorkingTree = filepath.Dir(p.GitletDirPath)
	case "":
		if !opts.SkipGitletDirLookUp {
			guessedWorkingTree, err = pathutil.WorkingTreeFromPath(p.FS, opts.WorkingDirectory, gitpath.DotGitletPath)
			if err != nil {
				return fmt.Errorf("could not find working tree: %w", err)
			}
		}
		p.GitletDirPath = filepath.Join(guessedWorkingTree, gitpath.DotGitletPath)
	}

	// LocalConfig rules:
	// - p.LocalConfig contains either nothing or a path to the
	//   .gitlet/config
	// - Fallback to $(GitletDirPath)/config
	//
	// If relative, the path will be appended to the current working
	// directory.
	if p.LocalConfig == "" {
		p.LocalConfig = filepath.Join(p.GitletDirPath, gitpath.ConfigPath)
	}
	if !filepath.IsAbs(p.LocalConfig) {
		p.LocalConfig = filepath.Join(opts.WorkingDirectory, p.LocalConfig)
	}

	// ObjectDirPath rules:
	// - p.ObjectDirPath contains either nothing or a path to the
	//   .gitlet/objects
	// - Fallback to $(GitletDirPath)/objects
	//
	// If relative, the path will be appended to the current working
	// directory.
	if p.ObjectDirPath == "" {
		p.ObjectDirPath = filepath.Join(p.GitletDirPath, gitpath.ObjectsPath)
	}
	if !filepath.IsAbs(p.ObjectDirPath) {
		p.ObjectDirPath = filepath.Join(opts.WorkingDirectory, p.ObjectDirPath)
	}

	// Worktree rules:
	// - p.WorkTreePath contains either nothing, $GITLET_WORK_TREE.
	// - opts.WorkTreePath contains either nothing or a path to the
	//   working tree. It overrides p.WorkTreePath
	// - Fallback on the directory containing the .gitlet directory
	//
	// If any path are relative, they will be relative to the current
	// working directory
	if opts.WorkTreePath != "" {
		p.WorkTreePath = opts.WorkTreePath
	}
	if p.WorkTreePath == "" {
		p.WorkTreePath = guessedWorkingTree
	}
	if !filepath.IsAbs(p.WorkTreePath) {
		p.WorkTreePath = filepath.Join(opts.WorkingDirectory, p.WorkTreePath)
	}

	p.fromFiles, err = NewFileAggregate(e, p)
	if err != nil {
		return fmt.Errorf("could not load config files: %w", err)
	}
	return nil
}

// FromFile returns the values coming from the config files
func (cfg *Config) FromFile() *FileAggregate {
	if cfg.fromFiles == nil {
		cfg.fromFiles = NewEmptyFileAggregate()
	}
	return cfg.fromFiles
}

// Reload reloads the config files. This is needed after the local
// config file has been created
func (cfg *Config) Reload() error {
	e := cfg.env
	if e == nil {
		e = env.NewFromKVList([]string{})
	}
	agg, err := NewFileAggregate(e, cfg)
	if err != nil {
		return fmt.Errorf("could not load config files: %w", err)
	}
	cfg.fromFiles = agg
	return nil
}

// HEADPath returns the path of the file containing the name of the
// active branch
func (cfg *Config) HEADPath() string {
	return filepath.Join(cfg.GitletDirPath, gitpath.HEADPath)
}

// BranchesPath returns the path to the directory containing the
// branches
func (cfg *Config) BranchesPath() string {
	return filepath.Join(cfg.GitletDirPath, filepath.FromSlash(gitpath.RefsHeadsPath))
}

// BranchPath returns the path of the file of a branch
func (cfg *Config) BranchPath(name string) string {
	return filepath.Join(cfg.BranchesPath(), filepath.FromSlash(name))
}

// ObjectPath returns the path of an object.
// Objects are stored flat: .gitlet/objects/{full sha}
func (cfg *Config) ObjectPath(sha string) string {
	return filepath.Join(cfg.ObjectDirPath, sha)
}

// StagePath returns the path of the directory containing the
// staging files
func (cfg *Config) StagePath() string {
	return filepath.Join(cfg.GitletDirPath, gitpath.StagePath)
}

// StageAdditionsPath returns the path of the file containing the
// files staged for addition
func (cfg *Config) StageAdditionsPath() string {
	return filepath.Join(cfg.GitletDirPath, filepath.FromSlash(gitpath.StageAdditionsPath))
}

// StageRemovalsPath returns the path of the file containing the
// files staged for removal
func (cfg *Config) StageRemovalsPath() string {
	return filepath.Join(cfg.GitletDirPath, filepath.FromSlash(gitpath.StageRemovalsPath))
}

// WorkTreeFilePath returns the path of a file of the work tree
func (cfg *Config) WorkTreeFilePath(name string) string {
	return filepath.Join(cfg.WorkTreePath, name)
}
