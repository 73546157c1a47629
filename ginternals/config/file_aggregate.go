package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Nivl/gitlet-go/env"
	"github.com/Nivl/gitlet-go/internal/errutil"
	"github.com/Nivl/gitlet-go/internal/gitpath"
	"gopkg.in/ini.v1"
)

// Sections and keys of the config files
const (
	SectionCore             = "core"
	KeyCoreFormatVersion    = "repositoryformatversion"
	KeyCoreStrictPrefixes   = "strictprefixes"
	SectionInit             = "init"
	KeyInitDefaultBranch    = "defaultBranch"
	SupportedFormatVersion  = 0
	defaultFormatVersionStr = "0"
)

// defaultLoadOption contains the params used to load the config files.
// Treat this as a const, don't ever change it from a method, even for
// testing.
var defaultLoadOption = ini.LoadOptions{ //nolint:gochecknoglobals // shared by every load
	SkipUnrecognizableLines: true,
}

// FileAggregate represents the aggregate of all the config files
// impacting a repository
type FileAggregate struct {
	agg *ini.File
}

// NewEmptyFileAggregate returns a FileAggregate that has no values
func NewEmptyFileAggregate() *FileAggregate {
	return &FileAggregate{
		agg: ini.Empty(defaultLoadOption),
	}
}

// RepoFormatVersion returns the version of the format of the repo
func (cfg *FileAggregate) RepoFormatVersion() (version int, ok bool) {
	v, err := cfg.agg.Section(SectionCore).Key(KeyCoreFormatVersion).Int()
	if err != nil {
		return 0, false
	}
	return v, true
}

// DefaultBranch returns the branch name to use when creating a new
// repository.
// The branch name isn't checked and may be an invalid value
func (cfg *FileAggregate) DefaultBranch() (name string, ok bool) {
	v := cfg.agg.Section(SectionInit).Key(KeyInitDefaultBranch).String()
	if v == "" {
		return "", false
	}
	return v, true
}

// StrictPrefixes returns whether ambiguous short IDs should be
// rejected instead of resolved to their first match
func (cfg *FileAggregate) StrictPrefixes() bool {
	v, err := cfg.agg.Section(SectionCore).Key(KeyCoreStrictPrefixes).Bool()
	if err != nil {
		return false
	}
	return v
}

// NewFileAggregate loads all the available config files and returns an object
// with accessor
func NewFileAggregate(e *env.Env, cfg *Config) (confFile *FileAggregate, err error) {
	confFile = &FileAggregate{}
	configPaths := getPaths(e, cfg)

	// Because we want to use afero instead of the file system, we cannot
	// just provide the the file paths to ini.Load. Instead we need to open
	// all the files ourselves, provide the files to ini, and close everything.
	// We use []interface{} because "ini.Load" wants a slice of interfaces
	files := make([]interface{}, 0, len(configPaths))
	for _, p := range configPaths {
		_, sErr := cfg.FS.Stat(p)
		if sErr != nil {
			// not every config files are expected to exists on disk
			// so we skip all the one that doesn't
			if errors.Is(sErr, os.ErrNotExist) {
				continue
			}
			err = fmt.Errorf("could not check file %s: %w", p, sErr)
			break
		}

		f, fErr := cfg.FS.Open(p)
		if fErr != nil {
			err = fmt.Errorf("could not open file %s: %w", p, fErr)
			break
		}
		files = append(files, f)
	}
	defer func() {
		// we need to cleanup the file descriptors to avoid a leak
		for _, f := range files {
			//nolint:errcheck // it's expected to fail as the files are already closed.
			// go-ini already closes the files for us. This code is
			// only here to prevent a FD leak in case go-ini updates the
			// behavior and we don't see it / remember about it
			f.(io.ReadCloser).Close()
		}
	}()
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return NewEmptyFileAggregate(), nil
	}

	// ini.Load wants the config file separated over 2 args, the second args
	// being a spreadable.
	src := files[0]
	others := files[1:]
	confFile.agg, err = ini.LoadSources(defaultLoadOption, src, others...)
	if err != nil {
		return nil, fmt.Errorf("could not load config file: %w", err)
	}
	return confFile, nil
}

// getPaths returns the config files to load, from the least specific
// to the most specific
func getPaths(e *env.Env, cfg *Config) []string {
	configPaths := []string{}

	// global
	if e.Get("XDG_CONFIG_HOME") != "" {
		configPaths = append(configPaths, filepath.Join(e.Get("XDG_CONFIG_HOME"), "gitlet", "config"))
	}
	if e.Get("HOME") != "" {
		configPaths = append(configPaths, filepath.Join(e.Get("HOME"), gitpath.GlobalConfigName))
	}
	// local
	configPaths = append(configPaths, cfg.LocalConfig)
	return configPaths
}

// WriteDefaultLocalConfig creates the local config file of a new
// repository
func WriteDefaultLocalConfig(cfg *Config) (err error) {
	file := ini.Empty()
	core, err := file.NewSection(SectionCore)
	if err != nil {
		return fmt.Errorf("could not create core section: %w", err)
	}
	if _, err = core.NewKey(KeyCoreFormatVersion, defaultFormatVersionStr); err != nil {
		return fmt.Errorf("could not set %s: %w", KeyCoreFormatVersion, err)
	}

	f, err := cfg.FS.Create(cfg.LocalConfig)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", cfg.LocalConfig, err)
	}
	defer errutil.Close(f, &err)
	if _, err = file.WriteTo(f); err != nil {
		return fmt.Errorf("could not write %s: %w", cfg.LocalConfig, err)
	}
	return nil
}
