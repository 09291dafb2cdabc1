package dirstream

import (
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"
)

// Compression selects the wrapper applied around the tar byte stream.
type Compression string

const (
	None  Compression = "none"
	Gzip  Compression = "gzip"
	Bzip2 Compression = "bzip2"
	Xz    Compression = "xz"
)

// ParseCompression maps user-facing names (including common filename
// aliases) to a Compression. The empty string selects the gzip default.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "gzip", "gz", "tgz":
		return Gzip, nil
	case "none", "tar":
		return None, nil
	case "bzip2", "bz2":
		return Bzip2, nil
	case "xz":
		return Xz, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

// Ext returns the archive filename extension for the mode, matching what
// standard extraction tools expect.
func (c Compression) Ext() string {
	switch c {
	case None:
		return ".tar"
	case Bzip2:
		return ".tar.bz2"
	case Xz:
		return ".tar.xz"
	default:
		return ".tar.gz"
	}
}

func (c Compression) valid() bool {
	switch c {
	case None, Gzip, Bzip2, Xz:
		return true
	default:
		return false
	}
}

// newWriter stacks the compression writer on top of the sink. The returned
// writer must be closed after the tar writer to flush trailer bytes.
func (c Compression) newWriter(w io.Writer) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriter(w), nil
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	case Xz:
		return xz.NewWriter(w)
	default:
		return nopWriteCloser{w}, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
