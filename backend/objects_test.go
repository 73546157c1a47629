package backend_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Nivl/gitlet-go/backend"
	"github.com/Nivl/gitlet-go/ginternals"
	"github.com/Nivl/gitlet-go/ginternals/githash"
	"github.com/Nivl/gitlet-go/ginternals/object"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteObject(t *testing.T) {
	t.Parallel()

	t.Run("written objects should be readable", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		blob := object.NewBlob(b.Hash(), "a.txt", []byte("hello"))
		oid, err := b.WriteObject(blob.ToObject())
		require.NoError(t, err)
		assert.Equal(t, blob.ID(), oid)
		assert.True(t, b.HasObject(oid))

		// the object should be stored flat, using its full id
		p := b.Config().ObjectPath("99737f6122a74861df3cd505bc17780a73ccde91")
		info, err := b.Config().FS.Stat(p)
		require.NoError(t, err)
		assert.Equal(t, "-r--r--r--", info.Mode().String())

		// a new backend should be able to read it from disk
		b2 := reopen(t, b)
		o, err := b2.Object(oid)
		require.NoError(t, err)
		assert.Equal(t, object.TypeBlob, o.Type())
		blob2, err := o.AsBlob(b2.Hash())
		require.NoError(t, err)
		assert.Equal(t, "a.txt", blob2.Filename())
		assert.Equal(t, []byte("hello"), blob2.Bytes())
	})

	t.Run("writing an object twice should be a no-op", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		blob := object.NewBlob(b.Hash(), "a.txt", []byte("hello"))
		oid, err := b.WriteObject(blob.ToObject())
		require.NoError(t, err)
		oid2, err := b.WriteObject(object.NewBlob(b.Hash(), "a.txt", []byte("hello")).ToObject())
		require.NoError(t, err)
		assert.Equal(t, oid, oid2)

		entries, err := afero.ReadDir(b.Config().FS, b.Config().ObjectDirPath)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("commits should be readable", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		root := object.NewRootCommit(b.Hash())
		oid, err := b.WriteObject(root.ToObject())
		require.NoError(t, err)

		o, err := reopen(t, b).Object(oid)
		require.NoError(t, err)
		c, err := o.AsCommit(b.Hash())
		require.NoError(t, err)
		assert.Equal(t, root.ID(), c.ID())
	})
}

func TestObject(t *testing.T) {
	t.Parallel()

	t.Run("un-existing object should fail", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		oid, err := b.Hash().ConvertFromString("2dcdadc2a420225783794fbffd51e2e137a69646")
		require.NoError(t, err)

		obj, err := b.Object(oid)
		require.Error(t, err)
		require.Nil(t, obj)
		assert.ErrorIs(t, err, ginternals.ErrObjectNotFound)
		assert.False(t, b.HasObject(oid))
	})

	t.Run("corrupted object should fail", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		sha := "2dcdadc2a420225783794fbffd51e2e137a69646"
		require.NoError(t, afero.WriteFile(b.Config().FS, b.Config().ObjectPath(sha), []byte("not zlib"), 0o444))

		b2 := reopen(t, b)
		oid, err := b2.Hash().ConvertFromString(sha)
		require.NoError(t, err)
		_, err = b2.Object(oid)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ginternals.ErrObjectNotFound)
	})
}

// writeBlobs writes the blobs f0.txt to f11.txt, all containing "x"
// Their IDs are:
//
//	f0.txt  ca0a8a94f4edacc0d8e541788d6d97324b0c2249
//	f7.txt  d46a1a582a0e170a08a64bee74f6f24279891a4c
//	f10.txt d90fa3801f66ed3f15209170183008aa60733ca3
//	f11.txt ff7fae5682acec3bc90b0fb9a4e59c692d6ebc5d
func writeBlobs(t *testing.T, b *backend.Backend) {
	t.Helper()

	for i := 0; i < 12; i++ {
		blob := object.NewBlob(b.Hash(), fmt.Sprintf("f%d.txt", i), []byte("x"))
		_, err := b.WriteObject(blob.ToObject())
		require.NoError(t, err)
	}
}

func TestWalkObjectIDs(t *testing.T) {
	t.Parallel()

	t.Run("ids should be sorted", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		writeBlobs(t, b)

		ids := []string{}
		err := b.WalkObjectIDs(func(oid githash.Oid) error {
			ids = append(ids, oid.String())
			return nil
		})
		require.NoError(t, err)
		require.Len(t, ids, 12)
		assert.IsIncreasing(t, ids)
	})

	t.Run("WalkStop should stop without error", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		writeBlobs(t, b)

		count := 0
		err := b.WalkObjectIDs(func(oid githash.Oid) error {
			count++
			return backend.WalkStop
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("errors should be returned", func(t *testing.T) {
		t.Parallel()

		b := newBackend(t)
		writeBlobs(t, b)

		expected := errors.New("expected")
		err := b.WalkObjectIDs(func(oid githash.Oid) error {
			return expected
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, expected)
	})
}

func TestResolveOid(t *testing.T) {
	t.Parallel()

	b := newBackend(t)
	writeBlobs(t, b)

	testCases := []struct {
		desc          string
		prefix        string
		strict        bool
		expected      string
		expectedError error
	}{
		{
			desc:     "full id should be returned as is",
			prefix:   "2dcdadc2a420225783794fbffd51e2e137a69646",
			expected: "2dcdadc2a420225783794fbffd51e2e137a69646",
		},
		{
			desc:     "unique prefix",
			prefix:   "ca0a",
			expected: "ca0a8a94f4edacc0d8e541788d6d97324b0c2249",
		},
		{
			desc:     "upper case prefix",
			prefix:   "CA0A",
			expected: "ca0a8a94f4edacc0d8e541788d6d97324b0c2249",
		},
		{
			desc:     "ambiguous prefix should return the first match",
			prefix:   "d",
			expected: "d46a1a582a0e170a08a64bee74f6f24279891a4c",
		},
		{
			desc:          "ambiguous prefix should fail in strict mode",
			prefix:        "d",
			strict:        true,
			expectedError: ginternals.ErrObjectAmbiguous,
		},
		{
			desc:     "unique prefix in strict mode",
			prefix:   "d9",
			strict:   true,
			expected: "d90fa3801f66ed3f15209170183008aa60733ca3",
		},
		{
			desc:          "unknown prefix",
			prefix:        "0000",
			expectedError: ginternals.ErrObjectNotFound,
		},
		{
			desc:          "empty prefix",
			prefix:        "",
			expectedError: ginternals.ErrObjectNotFound,
		},
	}
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			resolve := b.ResolveOid
			if tc.strict {
				resolve = b.ResolveOidStrict
			}
			oid, err := resolve(tc.prefix)
			if tc.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, oid.String())
		})
	}
}
