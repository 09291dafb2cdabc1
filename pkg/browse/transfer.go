package browse

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Move renames src to dst, both relative to the root. The destination is
// the full target path, not a containing directory. Moving an entry into
// its own subtree is refused.
func (s *Service) Move(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absSrc, absDst, err := s.resolvePair(src, dst)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absDst), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	if err := os.Rename(absSrc, absDst); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToMove, err)
	}
	return nil
}

// Copy duplicates src at dst, both relative to the root. Files are copied
// byte for byte; directories are copied recursively with cancellation
// checks per entry. Copying an entry into its own subtree is refused.
func (s *Service) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	absSrc, absDst, err := s.resolvePair(src, dst)
	if err != nil {
		return err
	}

	info, err := os.Stat(absSrc)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, src)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	if info.IsDir() {
		return s.copyTree(ctx, absSrc, absDst)
	}
	return copyFile(absSrc, absDst, info.Mode().Perm())
}

// resolvePair resolves source and destination and rejects a destination
// equal to or inside the source.
func (s *Service) resolvePair(src, dst string) (string, string, error) {
	absSrc, err := s.resolve(src)
	if err != nil {
		return "", "", err
	}
	absDst, err := s.resolve(dst)
	if err != nil {
		return "", "", err
	}

	if absDst == absSrc || strings.HasPrefix(absDst, absSrc+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %s -> %s", ErrInvalidDestination, src, dst)
	}
	return absSrc, absDst, nil
}

func (s *Service) copyTree(ctx context.Context, absSrc, absDst string) error {
	return filepath.WalkDir(absSrc, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToCopy, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(absSrc, path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToCopy, err)
		}
		target := filepath.Join(absDst, rel)

		if d.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}
