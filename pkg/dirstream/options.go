package dirstream

// DefaultBufferSize bounds the bytes buffered between the walking worker
// and the consumer when no explicit size is configured.
const DefaultBufferSize = 10240

type config struct {
	bufferSize  int
	compression Compression
	exclude     func(string) bool
}

func defaultConfig() config {
	return config{
		bufferSize:  DefaultBufferSize,
		compression: Gzip,
	}
}

// Option configures a Stream.
type Option func(*config)

// WithBufferSize sets the bounded-buffer capacity in bytes. Chunk sizes
// returned by Next never exceed it.
func WithBufferSize(n int) Option {
	if n <= 0 {
		panic("WithBufferSize: size must be > 0")
	}
	return func(c *config) { c.bufferSize = n }
}

// WithCompression sets the compression mode wrapped around the tar stream.
func WithCompression(mode Compression) Option {
	if !mode.valid() {
		panic("WithCompression: unknown compression mode " + string(mode))
	}
	return func(c *config) { c.compression = mode }
}

// WithExclude sets a predicate over absolute paths; entries for which it
// returns true are omitted from the archive, excluded directories together
// with their whole subtree.
func WithExclude(fn func(absPath string) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.exclude = fn
		}
	}
}
