package pathguard_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropdir/dropdir/pkg/pathguard"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	root := filepath.Join(string(filepath.Separator), "srv", "share")

	t.Run("plain relative path", func(t *testing.T) {
		t.Parallel()
		abs, err := pathguard.Resolve(root, "docs/report.pdf")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "docs", "report.pdf"), abs)
	})

	t.Run("root itself", func(t *testing.T) {
		t.Parallel()
		abs, err := pathguard.Resolve(root, ".")
		require.NoError(t, err)
		assert.Equal(t, root, abs)
	})

	t.Run("empty relative path", func(t *testing.T) {
		t.Parallel()
		abs, err := pathguard.Resolve(root, "")
		require.NoError(t, err)
		assert.Equal(t, root, abs)
	})

	t.Run("dot segments collapse inside the root", func(t *testing.T) {
		t.Parallel()
		abs, err := pathguard.Resolve(root, "a/./b/../c.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "a", "c.txt"), abs)
	})

	t.Run("traversal rejected", func(t *testing.T) {
		t.Parallel()
		for _, rel := range []string{
			"..",
			"../",
			"../../etc/passwd",
			"docs/../../secret",
			"a/b/../../../x",
			"./../x",
		} {
			abs, err := pathguard.Resolve(root, rel)
			require.ErrorIs(t, err, pathguard.ErrOutsideRoot, "input %q", rel)
			assert.Empty(t, abs)
		}
	})

	t.Run("containment property", func(t *testing.T) {
		t.Parallel()
		inputs := []string{
			"..", "x/..", "x/../..", "../../..", "a/../b/../../c",
			"..../..", "../x/../../y", "z", "z/..", "z/../..",
		}
		prefix := root + string(filepath.Separator)
		for _, rel := range inputs {
			abs, err := pathguard.Resolve(root, rel)
			if err != nil {
				assert.ErrorIs(t, err, pathguard.ErrOutsideRoot, "input %q", rel)
				continue
			}
			assert.True(t, abs == root || strings.HasPrefix(abs, prefix),
				"input %q resolved to %q outside %q", rel, abs, root)
		}
	})
}

func TestRelativize(t *testing.T) {
	t.Parallel()
	root := filepath.Join(string(filepath.Separator), "srv", "share")

	t.Run("descendant", func(t *testing.T) {
		t.Parallel()
		rel, err := pathguard.Relativize(root, filepath.Join(root, "a", "b.txt"))
		require.NoError(t, err)
		assert.Equal(t, "a/b.txt", rel)
	})

	t.Run("root itself", func(t *testing.T) {
		t.Parallel()
		rel, err := pathguard.Relativize(root, root)
		require.NoError(t, err)
		assert.Equal(t, ".", rel)
	})

	t.Run("outside", func(t *testing.T) {
		t.Parallel()
		_, err := pathguard.Relativize(root, filepath.Join(string(filepath.Separator), "etc", "passwd"))
		assert.ErrorIs(t, err, pathguard.ErrOutsideRoot)
	})

	t.Run("sibling with shared prefix", func(t *testing.T) {
		t.Parallel()
		_, err := pathguard.Relativize(root, root+"2")
		assert.ErrorIs(t, err, pathguard.ErrOutsideRoot)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		paths := []string{
			root,
			filepath.Join(root, "x.txt"),
			filepath.Join(root, "sub", "deep", "y.bin"),
		}
		for _, abs := range paths {
			rel, err := pathguard.Relativize(root, abs)
			require.NoError(t, err)
			back, err := pathguard.Resolve(root, rel)
			require.NoError(t, err)
			assert.Equal(t, abs, back)
		}
	})
}
