package clipboard

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Op is the pending clipboard operation.
type Op string

const (
	OpCut  Op = "cut"
	OpCopy Op = "copy"
)

// State is the persisted selection: the operation plus root-relative
// forward-slash paths.
type State struct {
	Op    Op       `json:"op"`
	Paths []string `json:"paths"`
}

const (
	defaultName = "dropdir_clip"

	// defaultMaxChunkSize keeps each chunk cookie safely under the ~4 KB
	// per-cookie browser limit, leaving headroom for the name and
	// attributes.
	defaultMaxChunkSize = 3500

	// defaultMaxChunks bounds total cookie usage; browsers cap cookies per
	// origin at around 50, and the clipboard should not monopolize them.
	defaultMaxChunks = 8
)

// Jar reads and writes paginated clipboard cookies.
type Jar struct {
	name      string
	chunkSize int
	maxChunks int
	path      string
	maxAge    int
	secure    bool
}

// Option configures a Jar.
type Option func(*Jar)

// WithName sets the cookie name prefix.
func WithName(name string) Option {
	if name == "" {
		panic("WithName: name cannot be empty")
	}
	return func(j *Jar) { j.name = name }
}

// WithChunkSize sets the maximum encoded bytes per chunk cookie.
func WithChunkSize(n int) Option {
	if n <= 0 {
		panic("WithChunkSize: size must be > 0")
	}
	return func(j *Jar) { j.chunkSize = n }
}

// WithMaxChunks sets the maximum number of chunk cookies.
func WithMaxChunks(n int) Option {
	if n <= 0 {
		panic("WithMaxChunks: count must be > 0")
	}
	return func(j *Jar) { j.maxChunks = n }
}

// WithSecure marks the cookies Secure.
func WithSecure(secure bool) Option {
	return func(j *Jar) { j.secure = secure }
}

// WithMaxAge sets the cookie lifetime in seconds; zero means session.
func WithMaxAge(seconds int) Option {
	return func(j *Jar) { j.maxAge = seconds }
}

// NewJar returns a jar with browser-safe defaults.
func NewJar(opts ...Option) *Jar {
	j := &Jar{
		name:      defaultName,
		chunkSize: defaultMaxChunkSize,
		maxChunks: defaultMaxChunks,
		path:      "/",
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Save writes the state into chunk cookies, expiring any stale chunks a
// previous larger state left behind.
func (j *Jar) Save(w http.ResponseWriter, r *http.Request, state State) error {
	if len(state.Paths) == 0 {
		return ErrEmptyState
	}
	if state.Op != OpCut && state.Op != OpCopy {
		return fmt.Errorf("%w: unknown operation %q", ErrCorruptState, state.Op)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(data)

	chunks := splitChunks(encoded, j.chunkSize)
	if len(chunks) > j.maxChunks {
		return fmt.Errorf("%w: %d chunks, limit %d", ErrStateTooLarge, len(chunks), j.maxChunks)
	}

	j.setCookie(w, j.name, strconv.Itoa(len(chunks)))
	for i, chunk := range chunks {
		j.setCookie(w, j.chunkName(i), chunk)
	}

	// Expire chunks beyond the new count from a previous, larger state.
	for i := len(chunks); i < j.priorCount(r); i++ {
		j.expireCookie(w, j.chunkName(i))
	}
	return nil
}

// Load reassembles the state from the request's chunk cookies.
func (j *Jar) Load(r *http.Request) (State, error) {
	count := j.priorCount(r)
	if count == 0 {
		return State{}, ErrNoClipboard
	}
	if count > j.maxChunks {
		return State{}, fmt.Errorf("%w: %d chunks, limit %d", ErrStateTooLarge, count, j.maxChunks)
	}

	var encoded []byte
	for i := 0; i < count; i++ {
		c, err := r.Cookie(j.chunkName(i))
		if err != nil {
			return State{}, fmt.Errorf("%w: missing chunk %d of %d", ErrCorruptState, i, count)
		}
		encoded = append(encoded, c.Value...)
	}

	data, err := base64.RawURLEncoding.DecodeString(string(encoded))
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if state.Op != OpCut && state.Op != OpCopy {
		return State{}, fmt.Errorf("%w: unknown operation %q", ErrCorruptState, state.Op)
	}
	if len(state.Paths) == 0 {
		return State{}, ErrNoClipboard
	}
	return state, nil
}

// Clear expires the count cookie and every chunk the request still carries.
func (j *Jar) Clear(w http.ResponseWriter, r *http.Request) {
	count := j.priorCount(r)
	j.expireCookie(w, j.name)
	for i := 0; i < count; i++ {
		j.expireCookie(w, j.chunkName(i))
	}
}

func (j *Jar) chunkName(i int) string {
	return j.name + "." + strconv.Itoa(i)
}

// priorCount reads the chunk count the client currently holds; 0 when the
// count cookie is absent or unparseable.
func (j *Jar) priorCount(r *http.Request) int {
	c, err := r.Cookie(j.name)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(c.Value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func (j *Jar) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     j.path,
		MaxAge:   j.maxAge,
		Secure:   j.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j *Jar) expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     j.path,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func splitChunks(s string, size int) []string {
	var chunks []string
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}
