// Package assets decodes the embedded texture images ahead of the first
// draw. Each key is decoded independently; a key that fails to decode is
// logged and stays absent.
package assets

//go:generate go run ../cmd/mkdataurls -o dataurls.go tex/daisy.png

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"runtime"
	"sort"
	"sync"

	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// State is the decode state of one key.
type State int

const (
	Pending State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Asset is a decoded texture image.
type Asset struct {
	Key   string
	Image image.Image
	State State
}

// AssetDecodeError reports a key whose data could not be decoded.
type AssetDecodeError struct {
	Key string
	Err error
}

func (e *AssetDecodeError) Error() string {
	return fmt.Sprintf("failed to load texture %q: %v", e.Key, e.Err)
}

func (e *AssetDecodeError) Unwrap() error { return e.Err }

// Loader decodes a set of data URL sources concurrently.
type Loader struct {
	sources map[string]string
	limit   int
	log     logrus.FieldLogger

	mu      sync.RWMutex
	pending map[string]struct{}
	ready   map[string]*Asset
	failed  map[string]*AssetDecodeError
	done    chan struct{}
}

// Option configures a Loader.
type Option func(*Loader)

// WithLimit bounds the number of decodes running at once. n <= 0 means one
// goroutine per key.
func WithLimit(n int) Option {
	return func(l *Loader) { l.limit = n }
}

// WithLogger sets the logger decode results are reported to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader registers every key of sources as pending.
func NewLoader(sources map[string]string, opts ...Option) *Loader {
	l := &Loader{
		sources: make(map[string]string, len(sources)),
		limit:   runtime.NumCPU(),
		log:     logrus.StandardLogger(),
		pending: make(map[string]struct{}, len(sources)),
		ready:   make(map[string]*Asset),
		failed:  make(map[string]*AssetDecodeError),
	}
	for key, src := range sources {
		l.sources[key] = src
		l.pending[key] = struct{}{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts one decode task per pending key and returns without waiting
// for them. Calling Load again does nothing.
func (l *Loader) Load(ctx context.Context) {
	l.mu.Lock()
	if l.done != nil {
		l.mu.Unlock()
		return
	}
	done := make(chan struct{})
	l.done = done
	keys := make([]string, 0, len(l.pending))
	for key := range l.pending {
		keys = append(keys, key)
	}
	l.mu.Unlock()
	sort.Strings(keys)

	g, gctx := errgroup.WithContext(ctx)
	if l.limit > 0 {
		g.SetLimit(l.limit)
	}
	go func() {
		defer close(done)
		for _, key := range keys {
			key, src := key, l.sources[key]
			g.Go(func() error {
				l.decode(gctx, key, src)
				return nil
			})
		}
		// Decode failures are recorded per key, never returned.
		_ = g.Wait()
	}()
}

// Wait blocks until every task started by Load has finished. It returns
// immediately if Load was never called.
func (l *Loader) Wait() {
	l.mu.RLock()
	done := l.done
	l.mu.RUnlock()
	if done != nil {
		<-done
	}
}

// Get returns the decoded asset for key. Keys that are still pending or
// failed to decode are absent.
func (l *Loader) Get(key string) (*Asset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.ready[key]
	return a, ok
}

// State reports the decode state of key. ok is false for unknown keys.
func (l *Loader) State(key string) (s State, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, found := l.ready[key]; found {
		return Ready, true
	}
	if _, found := l.failed[key]; found {
		return Failed, true
	}
	if _, found := l.pending[key]; found {
		return Pending, true
	}
	return Pending, false
}

// Pending returns the number of keys that have not resolved yet.
func (l *Loader) Pending() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.pending)
}

// Keys returns every registered key in sorted order.
func (l *Loader) Keys() []string {
	keys := make([]string, 0, len(l.sources))
	for key := range l.sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Errors returns the decode failures sorted by key.
func (l *Loader) Errors() []*AssetDecodeError {
	l.mu.RLock()
	defer l.mu.RUnlock()
	errs := make([]*AssetDecodeError, 0, len(l.failed))
	for _, err := range l.failed {
		errs = append(errs, err)
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Key < errs[j].Key })
	return errs
}

func (l *Loader) decode(ctx context.Context, key, src string) {
	img, err := decodeSource(ctx, src)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, key)
	if err != nil {
		derr := &AssetDecodeError{Key: key, Err: err}
		l.failed[key] = derr
		l.log.WithField("key", key).WithError(err).Warn("texture decode failed")
		return
	}
	l.ready[key] = &Asset{Key: key, Image: img, State: Ready}
	b := img.Bounds()
	l.log.WithFields(logrus.Fields{
		"key":    key,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Debug("texture decoded")
}

func decodeSource(ctx context.Context, src string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, data, err := ParseDataURL(src)
	if err != nil {
		return nil, err
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("payload is not a recognized image")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.MIME.Value, err)
	}
	return img, nil
}
