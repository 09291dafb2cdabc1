package browser

import (
	"io"
	"log/slog"

	"github.com/dropdir/dropdir/pkg/browse"
	"github.com/dropdir/dropdir/pkg/clipboard"
)

// Config holds the browser module configuration.
type Config struct {
	Root          string `env:"DROPDIR_ROOT" envDefault:"./share"`
	MaxUploadSize int64  `env:"DROPDIR_MAX_UPLOAD_SIZE" envDefault:"1073741824"` // 1 GiB
}

// Service wires the jailed filesystem service and the clipboard jar into
// HTTP handlers.
type Service struct {
	files         *browse.Service
	clip          *clipboard.Jar
	log           *slog.Logger
	maxUploadSize int64
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClipboardJar replaces the default clipboard jar.
func WithClipboardJar(j *clipboard.Jar) Option {
	return func(s *Service) {
		if j != nil {
			s.clip = j
		}
	}
}

// WithMaxUploadSize caps the total size of an upload request body.
func WithMaxUploadSize(n int64) Option {
	if n <= 0 {
		panic("WithMaxUploadSize: size must be > 0")
	}
	return func(s *Service) { s.maxUploadSize = n }
}

// NewService creates the browser module over a jailed filesystem service.
func NewService(files *browse.Service, opts ...Option) *Service {
	s := &Service{
		files:         files,
		clip:          clipboard.NewJar(),
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxUploadSize: 1 << 30,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
