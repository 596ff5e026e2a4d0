// Package persist keeps the app state in a fast local cache and syncs it,
// best effort, to a single remote document.
package persist

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/store"
)

const (
	// CacheKey is the local cache key the state is stored under.
	CacheKey = "brainbuilder_state"

	// DefaultDebounce is how long SaveState waits before writing remotely.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultTimeout bounds each remote call and each cache call.
	DefaultTimeout = 10 * time.Second
)

// Cache is the local key/value cache. Get returns store.ErrNotFound for a
// missing key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Remote is the remote state document. Fetch returns nil when no document
// is stored.
type Remote interface {
	Fetch(ctx context.Context) ([]byte, error)
	Put(ctx context.Context, body []byte) error
}

// Coordinator owns the in-memory state and reconciles it with the cache and
// the remote. It is safe for concurrent use; callers must not save after
// Close.
type Coordinator struct {
	cache        Cache
	remote       Remote
	debounce     time.Duration
	timeout      time.Duration
	logger       *log.Logger
	now          func() time.Time
	pendingWrite bool

	mu          sync.Mutex
	state       *state.AppState
	timer       *time.Timer
	timerBody   []byte
	gen         uint64
	saving      bool
	queuedWrite []byte

	// wg tracks scheduled timers and detached writes.
	wg sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDebounce sets the remote write delay used by SaveState.
func WithDebounce(d time.Duration) Option {
	return func(c *Coordinator) { c.debounce = d }
}

// WithTimeout bounds each cache and remote call.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.timeout = d }
}

// WithLogger sets where warnings are written.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithClock sets the clock used for backup file names.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithPendingWrite keeps the latest write that arrives while another is in
// flight and sends it once that one finishes, instead of dropping it.
func WithPendingWrite() Option {
	return func(c *Coordinator) { c.pendingWrite = true }
}

// New returns a Coordinator over cache and remote. A nil remote keeps
// everything local.
func New(cache Cache, remote Remote, opts ...Option) *Coordinator {
	c := &Coordinator{
		cache:    cache,
		remote:   remote,
		debounce: DefaultDebounce,
		timeout:  DefaultTimeout,
		logger:   log.New(os.Stderr, "brainbuilder: ", log.LstdFlags),
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// LoadLocal returns the cached state, or nil if it is missing or invalid.
func (c *Coordinator) LoadLocal(ctx context.Context) *state.AppState {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.cache.Get(ctx, CacheKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.logger.Printf("warning: read local cache: %v", err)
		}
		return nil
	}
	st, err := state.Parse(raw)
	if err != nil {
		c.logger.Printf("warning: ignoring local cache: %v", err)
		return nil
	}
	return st
}

// LoadState returns the cached state or a fresh default, without touching
// the network.
func (c *Coordinator) LoadState(ctx context.Context) *state.AppState {
	if st := c.LoadLocal(ctx); st != nil {
		return st
	}
	return state.Default()
}

// LoadStateAsync prefers the remote document. A valid one is written to the
// cache and returned; any failure falls back to LoadState.
func (c *Coordinator) LoadStateAsync(ctx context.Context) *state.AppState {
	if st := c.fetchRemote(ctx); st != nil {
		if body, err := state.Encode(st); err == nil {
			c.cacheLocal(body)
		}
		return st
	}
	return c.LoadState(ctx)
}

func (c *Coordinator) fetchRemote(ctx context.Context) *state.AppState {
	if c.remote == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.remote.Fetch(ctx)
	if err != nil {
		c.logger.Printf("warning: cloud load failed: %v", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	st, err := state.Parse(raw)
	if err != nil {
		c.logger.Printf("warning: ignoring cloud state: %v", err)
		return nil
	}
	return st
}

// InitState hands the cached state to onReady straight away, then fetches
// the remote document and calls onReady again only if it differs from what
// is current by then.
func (c *Coordinator) InitState(ctx context.Context, onReady func(*state.AppState)) {
	local := c.LoadState(ctx)
	c.mu.Lock()
	c.state = local
	c.mu.Unlock()
	onReady(local)

	if c.remote == nil {
		return
	}
	cloud := c.LoadStateAsync(ctx)

	c.mu.Lock()
	same := sameDocument(cloud, c.state)
	if !same {
		c.state = cloud
	}
	c.mu.Unlock()
	if !same {
		onReady(cloud)
	}
}

func sameDocument(a, b *state.AppState) bool {
	ab, errA := state.Encode(a)
	bb, errB := state.Encode(b)
	return errA == nil && errB == nil && bytes.Equal(ab, bb)
}

// State returns the current in-memory state, loading it from the cache on
// first use.
func (c *Coordinator) State() *state.AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked()
}

func (c *Coordinator) currentLocked() *state.AppState {
	if c.state == nil {
		c.state = c.LoadState(context.Background())
	}
	return c.state
}

// Update applies fn to a copy of the current state and, if fn succeeds,
// makes the copy current and saves it. If fn fails the current state is
// left as it was, even when fn changed its argument before failing.
func (c *Coordinator) Update(fn func(*state.AppState) error) error {
	c.mu.Lock()
	next := c.currentLocked().Clone()
	if err := fn(next); err != nil {
		c.mu.Unlock()
		return err
	}
	body, err := state.Encode(next)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state = next
	c.mu.Unlock()

	c.cacheLocal(body)
	c.schedule(body)
	return nil
}

// RecordSession appends rec to topicID's log and saves the state.
func (c *Coordinator) RecordSession(topicID string, rec state.SessionRecord) error {
	return c.Update(func(st *state.AppState) error {
		st.RecordSession(topicID, rec)
		return nil
	})
}

// SaveState caches st immediately and schedules a remote write after the
// debounce, replacing any write already scheduled.
func (c *Coordinator) SaveState(st *state.AppState) {
	body, ok := c.adopt(st)
	if !ok {
		return
	}
	c.cacheLocal(body)
	c.schedule(body)
}

// SaveStateNow caches st, cancels any scheduled write and sends st right
// away without waiting. The outcome of that write is ignored.
func (c *Coordinator) SaveStateNow(st *state.AppState) {
	body, ok := c.adopt(st)
	if !ok {
		return
	}
	c.cacheLocal(body)

	c.mu.Lock()
	c.cancelTimerLocked()
	c.mu.Unlock()

	if c.remote == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		_ = c.remote.Put(ctx, body)
	}()
}

// adopt makes st the current state and encodes it.
func (c *Coordinator) adopt(st *state.AppState) ([]byte, bool) {
	body, err := state.Encode(st)
	if err != nil {
		c.logger.Printf("warning: encode state: %v", err)
		return nil, false
	}
	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
	return body, true
}

// Close sends any scheduled write immediately and waits for outstanding
// writes to finish or ctx to end.
func (c *Coordinator) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.timer != nil && c.timer.Stop() {
		body := c.timerBody
		c.timer, c.timerBody = nil, nil
		c.gen++
		// The stopped timer's wg slot is handed to this goroutine.
		go func() {
			defer c.wg.Done()
			c.pushGuarded(context.Background(), body)
		}()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) cacheLocal(body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := c.cache.Put(ctx, CacheKey, body); err != nil {
		c.logger.Printf("warning: write local cache: %v", err)
	}
}
