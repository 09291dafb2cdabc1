package pathguard

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolve joins a relative path to the root directory and verifies the
// result stays within it. The relative path uses forward slashes regardless
// of host OS; the returned absolute path uses host separators.
//
// Normalization happens strictly before the containment check: the input is
// cleaned (collapsing "." and ".." segments) as part of the join, so
// traversal sequences cannot survive into the verified result.
func Resolve(root, rel string) (string, error) {
	root = filepath.Clean(root)

	abs := filepath.Join(root, filepath.FromSlash(rel))

	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, rel)
	}

	return abs, nil
}

// Relativize strips the root prefix from an absolute path and returns the
// remainder in forward-slash form. The root itself relativizes to ".".
// Fails with ErrOutsideRoot if abs is not the root or one of its
// descendants.
func Relativize(root, abs string) (string, error) {
	root = filepath.Clean(root)
	abs = filepath.Clean(abs)

	if abs == root {
		return ".", nil
	}

	prefix := root + string(filepath.Separator)
	if !strings.HasPrefix(abs, prefix) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, abs)
	}

	return filepath.ToSlash(strings.TrimPrefix(abs, prefix)), nil
}
