package backend_test

import (
	"testing"

	"github.com/Nivl/gitlet-go/backend"
	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/config"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("regular repo should work", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig(t)
		b, err := backend.New(cfg, githash.NewSHA1())
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})
		require.NoError(t, b.Init("main"))

		for _, d := range []string{cfg.GitletDirPath, cfg.ObjectDirPath, cfg.BranchesPath(), cfg.StagePath()} {
			exists, err := afero.DirExists(cfg.FS, d)
			require.NoError(t, err)
			assert.True(t, exists, "%s should exist", d)
		}
		for _, f := range []string{cfg.LocalConfig, cfg.StageAdditionsPath(), cfg.StageRemovalsPath()} {
			exists, err := afero.Exists(cfg.FS, f)
			require.NoError(t, err)
			assert.True(t, exists, "%s should exist", f)
		}

		head, err := b.HEAD()
		require.NoError(t, err)
		assert.Equal(t, "main", head)

		v, ok := cfg.FromFile().RepoFormatVersion()
		require.True(t, ok)
		assert.Equal(t, config.SupportedFormatVersion, v)
	})

	t.Run("existing repo should fail", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		err := b.Init(ginternals.Master)
		require.Error(t, err)
		assert.ErrorIs(t, err, backend.ErrRepositoryExists)
	})

	t.Run("invalid branch name should fail", func(t *testing.T) {
		t.Parallel()

		b, err := backend.New(newConfig(t), githash.NewSHA1())
		require.NoError(t, err)
		err = b.Init("not valid")
		require.Error(t, err)
		assert.ErrorIs(t, err, ginternals.ErrBranchNameInvalid)
	})

	t.Run("existing config should be kept", func(t *testing.T) {
		t.Parallel()

		cfg := newConfig(t)
		require.NoError(t, cfg.FS.MkdirAll(cfg.GitletDirPath, 0o755))
		require.NoError(t, afero.WriteFile(cfg.FS, cfg.LocalConfig, []byte("[core]\nstrictprefixes = true\n"), 0o644))

		b, err := backend.New(cfg, githash.NewSHA1())
		require.NoError(t, err)
		require.NoError(t, b.Init(ginternals.Master))
		assert.True(t, cfg.FromFile().StrictPrefixes())
	})
}
