package dirstream

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

// Stream archives a directory subtree on the fly. One worker goroutine
// walks the tree and serializes tar blocks into a bounded buffer; the
// caller drains chunks through Next. A Stream belongs to a single consumer
// and must not be pulled from multiple goroutines concurrently.
type Stream struct {
	root string
	cfg  config
	buf  *boundedBuffer

	start     sync.Once
	started   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

// New creates a stream for the directory at root. The worker does not
// start until the first Next call, so an unused stream costs nothing and
// needs no cleanup beyond Close.
func New(root string, opts ...Option) (*Stream, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootUnavailable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	return &Stream{
		root: root,
		cfg:  cfg,
		buf:  newBoundedBuffer(cfg.bufferSize),
		done: make(chan struct{}),
	}, nil
}

// Name returns the suggested download filename: the root directory's base
// name plus the extension matching the compression mode.
func (s *Stream) Name() string {
	return filepath.Base(s.root) + s.cfg.compression.Ext()
}

// ContentType returns a generic binary content type for the archive. The
// caller applies it to HTTP headers; the stream itself never touches them.
func (s *Stream) ContentType() string {
	return "application/octet-stream"
}

// Next returns the next chunk of archive bytes, blocking while the buffer
// is empty and the worker is still producing. Chunk sizes are bounded by
// the configured buffer size but otherwise unspecified. Returns io.EOF
// after the final chunk, repeatedly and without error, once the archive is
// complete. A filesystem error captured by the worker is returned instead,
// on this and every later call. Calling Next after Close returns
// ErrStreamClosed.
func (s *Stream) Next() ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrStreamClosed
	}

	s.start.Do(func() {
		s.started.Store(true)
		go s.run()
	})

	return s.buf.Next()
}

// Close aborts the stream and waits for the worker goroutine to exit, so
// no background work survives the call. Safe to call whether the worker is
// blocked mid-write, finished naturally, or never started; repeated calls
// are no-ops.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.buf.Abort(ErrStreamClosed)
		if s.started.Load() {
			<-s.done
		}
	})
	return nil
}

func (s *Stream) run() {
	defer close(s.done)
	s.buf.CloseWrite(s.archive())
}

// archive walks the tree and writes tar records into the bounded buffer.
// Both the tar writer and the compression writer are closed before
// returning so the end-of-archive zero blocks and compression trailers are
// flushed ahead of the end-of-data signal; skipping either leaves a
// truncated archive standard tools cannot read.
func (s *Stream) archive() error {
	cw, err := s.cfg.compression.newWriter(s.buf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	tw := tar.NewWriter(cw)

	walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if s.cfg.exclude != nil && s.cfg.exclude(path) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		var link string
		if info.Mode()&fs.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return err
			}
		}

		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() && !strings.HasSuffix(hdr.Name, "/") {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		_ = f.Close()
		return err
	})
	if walkErr != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, walkErr)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrArchiveFailed, err)
	}
	return nil
}
