package browse

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dropdir/dropdir/pkg/pathguard"
)

// numbered collision probes before falling back to a random suffix
const maxCollisionAttempts = 100

// SaveUpload stores a multipart upload into dir. The client filename is
// sanitized and, on collision, renamed so an upload never overwrites an
// existing file. The copy is buffered with context checks between chunks;
// a partial file is removed if the copy fails or is canceled.
func (s *Service) SaveUpload(ctx context.Context, dir string, fh *multipart.FileHeader) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fh == nil {
		return nil, ErrNilFileHeader
	}

	name := pathguard.SanitizeFilename(fh.Filename)
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilename, fh.Filename)
	}

	absDir, err := s.resolve(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	name = pathguard.ChooseNonCollidingName(func(candidate string) bool {
		_, err := os.Lstat(filepath.Join(absDir, candidate))
		return err == nil
	}, name, maxCollisionAttempts)
	absPath := filepath.Join(absDir, name)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	// O_EXCL backs up the collision probe: a concurrent upload racing to
	// the same name fails here instead of silently overwriting.
	dst, err := os.OpenFile(absPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	defer func() { _ = dst.Close() }()

	written, mimeType, err := copyUpload(ctx, dst, src)
	if err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return nil, err
	}

	rel, err := pathguard.Relativize(s.root, absPath)
	if err != nil {
		return nil, err
	}

	return &File{
		Filename:     name,
		Size:         written,
		MIMEType:     mimeType,
		RelativePath: rel,
		AbsolutePath: absPath,
	}, nil
}

// copyUpload streams src into dst in 32KB chunks, checking cancellation
// between chunks, and sniffs the MIME type from the first chunk's content
// rather than trusting the client extension.
func copyUpload(ctx context.Context, dst *os.File, src multipart.File) (int64, string, error) {
	var (
		written  int64
		mimeType string
	)

	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return written, "", err
		}

		n, readErr := src.Read(buf)
		if n > 0 {
			if mimeType == "" {
				mimeType = http.DetectContentType(buf[:n])
			}
			nw, writeErr := dst.Write(buf[:n])
			if writeErr != nil {
				return written, "", fmt.Errorf("%w: %v", ErrFailedToWriteFile, writeErr)
			}
			written += int64(nw)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return written, "", fmt.Errorf("%w: %v", ErrFailedToReadFile, readErr)
		}
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return written, mimeType, nil
}
