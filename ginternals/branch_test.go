package ginternals_test

import (
	"fmt"
	"testing"

	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBranchNameValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc       string
		name       string
		shouldPass bool
	}{
		{
			desc:       "name with control chars should fail",
			name:       "ml/not\000valide",
			shouldPass: false,
		},
		{
			desc:       "name with DEL should fail",
			name:       "ml/not\177valide",
			shouldPass: false,
		},
		{
			desc:       "name with slashes should pass",
			name:       "ml/some/name_/that/I/often-use/89",
			shouldPass: true,
		},
		{
			desc:       "name cannot be empty",
			name:       "",
			shouldPass: false,
		},
		{
			desc:       "name cannot start with a /",
			name:       "/feature",
			shouldPass: false,
		},
		{
			desc:       "name cannot end with a /",
			name:       "feature/",
			shouldPass: false,
		},
		{
			desc:       "name cannot contain ..",
			name:       "fea..ture",
			shouldPass: false,
		},
		{
			desc:       "name cannot contain ?",
			name:       "feature?",
			shouldPass: false,
		},
		{
			desc:       "name cannot contain :",
			name:       "fea:ture",
			shouldPass: false,
		},
		{
			desc:       `name cannot contain \`,
			name:       `fea\ture`,
			shouldPass: false,
		},
		{
			desc:       "name cannot contain @{",
			name:       "fea@{ture}",
			shouldPass: false,
		},
		{
			desc:       "name can end with @",
			name:       "feature@",
			shouldPass: true,
		},
		{
			desc:       "name cannot start with a .",
			name:       ".feature",
			shouldPass: false,
		},
		{
			desc:       "name cannot end with a .",
			name:       "feature.",
			shouldPass: false,
		},
		{
			desc:       "name cannot contain a space",
			name:       "fea ture",
			shouldPass: false,
		},
		{
			desc:       "name cannot end with .lock",
			name:       "feature.lock",
			shouldPass: false,
		},
		{
			desc:       "segments cannot be empty",
			name:       "ml//feature",
			shouldPass: false,
		},
		{
			desc:       "master should be valid",
			name:       ginternals.Master,
			shouldPass: true,
		},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.shouldPass, ginternals.IsBranchNameValid(tc.name))
		})
	}
}

func TestIsFilenameValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc       string
		name       string
		shouldPass bool
	}{
		{desc: "plain name", name: "a.txt", shouldPass: true},
		{desc: "name with a space", name: "my file", shouldPass: true},
		{desc: "dotfile", name: ".env", shouldPass: true},
		{desc: "empty", name: "", shouldPass: false},
		{desc: "current dir", name: ".", shouldPass: false},
		{desc: "parent dir", name: "..", shouldPass: false},
		{desc: "repository dir", name: ".gitlet", shouldPass: false},
		{desc: "nested file", name: "dir/a.txt", shouldPass: false},
		{desc: "newline", name: "a\nb", shouldPass: false},
		{desc: "carriage return", name: "a\r", shouldPass: false},
		{desc: "NUL char", name: "a\x00b", shouldPass: false},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.shouldPass, ginternals.IsFilenameValid(tc.name))
		})
	}
}

func TestParseBranch(t *testing.T) {
	t.Parallel()

	h := githash.NewSHA1()

	t.Run("should parse a valid branch", func(t *testing.T) {
		t.Parallel()

		b, err := ginternals.ParseBranch(h, "master", []byte("0eaf966ff79d8f61958aaefe163620d952606516\n"))
		require.NoError(t, err)
		assert.Equal(t, "master", b.Name())
		assert.Equal(t, "0eaf966ff79d8f61958aaefe163620d952606516", b.Target().String())
	})

	t.Run("should fail on invalid content", func(t *testing.T) {
		t.Parallel()

		_, err := ginternals.ParseBranch(h, "master", []byte("ref: refs/heads/main\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ginternals.ErrBranchInvalid)
	})
}
