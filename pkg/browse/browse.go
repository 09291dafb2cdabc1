package browse

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dropdir/dropdir/pkg/dirstream"
	"github.com/dropdir/dropdir/pkg/pathguard"
)

// Entry represents a file or directory within the root.
type Entry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"` // forward-slash form, relative to the root
	IsDir   bool      `json:"is_dir"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// File represents a stored upload.
type File struct {
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	MIMEType     string `json:"mime_type"`
	RelativePath string `json:"path"`
	AbsolutePath string `json:"-"`
}

// Service confines all filesystem operations to a single root directory.
// Safe for concurrent use; the OS provides file-level locking.
type Service struct {
	root string
}

// New creates a service rooted at root. The directory is resolved to an
// absolute path and created if it does not exist.
func New(root string) (*Service, error) {
	if root == "" {
		return nil, ErrInvalidRoot
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	return &Service{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Service) Root() string { return s.root }

func (s *Service) resolve(rel string) (string, error) {
	return pathguard.Resolve(s.root, rel)
}

// List returns the entries of a directory, non-recursive, with paths
// relative to the root.
func (s *Service) List(ctx context.Context, dir string) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	dirEntries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadDirectory, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		// Allow cancellation during large directory listings.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := de.Info()
		if err != nil {
			continue // entry vanished mid-listing
		}

		rel, err := pathguard.Relativize(s.root, filepath.Join(abs, de.Name()))
		if err != nil {
			continue
		}

		entry := Entry{
			Name:    de.Name(),
			Path:    rel,
			IsDir:   de.IsDir(),
			ModTime: info.ModTime(),
		}
		if !de.IsDir() {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Stat returns a single entry.
func (s *Service) Stat(ctx context.Context, rel string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return Entry{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, fmt.Errorf("%w: %s", ErrFileNotFound, rel)
		}
		return Entry{}, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}

	relPath, err := pathguard.Relativize(s.root, abs)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		Name:    info.Name(),
		Path:    relPath,
		IsDir:   info.IsDir(),
		ModTime: info.ModTime(),
	}
	if !info.IsDir() {
		entry.Size = info.Size()
	}
	return entry, nil
}

// Open opens a regular file for reading. The caller owns the handle.
func (s *Service) Open(ctx context.Context, rel string) (*os.File, fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return nil, nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, rel)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, rel)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return f, info, nil
}

// Exists reports whether a file or directory exists within the root.
// Returns false for paths that escape the root.
func (s *Service) Exists(ctx context.Context, rel string) bool {
	if ctx.Err() != nil {
		return false
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return false
	}

	_, err = os.Stat(abs)
	return err == nil
}

// Mkdir creates a directory (and any missing parents) within the root.
func (s *Service) Mkdir(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}
	return nil
}

// Remove deletes a single file. Directories are refused to prevent
// accidental recursive deletion; use RemoveDir for those.
func (s *Service) Remove(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, rel)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s, use RemoveDir instead", ErrIsDirectory, rel)
	}

	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
	}
	return nil
}

// RemoveDir recursively deletes a directory and its contents. The root
// itself is refused.
func (s *Service) RemoveDir(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if abs == s.root {
		return fmt.Errorf("%w: refusing to remove the root", ErrInvalidDestination)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirectoryNotFound, rel)
		}
		return fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, rel)
	}

	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToDeleteDirectory, err)
	}
	return nil
}

// Archive returns an on-the-fly archive stream for a directory within the
// root. The caller owns the stream and must drain or Close it.
func (s *Service) Archive(rel string, opts ...dirstream.Option) (*dirstream.Stream, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	return dirstream.New(abs, opts...)
}
