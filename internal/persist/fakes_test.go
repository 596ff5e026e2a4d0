package persist

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/brainbuilder/internal/state"
	"github.com/abhisek/brainbuilder/internal/store"
)

// events records the order in which the fakes are touched.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	e.log = append(e.log, s)
	e.mu.Unlock()
}

func (e *events) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

type fakeCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	putErr error
	ev     *events
}

func newFakeCache(ev *events) *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ev: ev}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func (f *fakeCache) Put(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ev != nil {
		f.ev.add("cache")
	}
	if f.putErr != nil {
		return f.putErr
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *fakeCache) raw(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.data[key])
}

type fakeRemote struct {
	mu       sync.Mutex
	doc      []byte
	fetchErr error
	putErr   error
	puts     [][]byte
	ev       *events

	// When block is non-nil, Put signals started and waits on block.
	block   chan struct{}
	started chan struct{}
}

func (f *fakeRemote) Fetch(context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.doc, nil
}

func (f *fakeRemote) Put(ctx context.Context, body []byte) error {
	f.mu.Lock()
	block, started := f.block, f.started
	f.mu.Unlock()
	if block != nil {
		started <- struct{}{}
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ev != nil {
		f.ev.add("remote")
	}
	f.puts = append(f.puts, append([]byte(nil), body...))
	return f.putErr
}

func (f *fakeRemote) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.puts)
}

func (f *fakeRemote) put(i int) *state.AppState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := state.Parse(f.puts[i])
	if err != nil {
		panic(err)
	}
	return st
}

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Contains(s string) bool {
	return strings.Contains(b.String(), s)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

var _ io.Reader = errReader{}

// harness wires a coordinator to fakes with a short debounce.
type harness struct {
	c      *Coordinator
	cache  *fakeCache
	remote *fakeRemote
	logs   *syncBuffer
	ev     *events
}

const testDebounce = 40 * time.Millisecond

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	ev := &events{}
	h := &harness{
		cache:  newFakeCache(ev),
		remote: &fakeRemote{ev: ev},
		logs:   &syncBuffer{},
		ev:     ev,
	}
	base := []Option{
		WithDebounce(testDebounce),
		WithTimeout(2 * time.Second),
		WithLogger(log.New(h.logs, "", 0)),
	}
	h.c = New(h.cache, h.remote, append(base, opts...)...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.c.Close(ctx)
	})
	return h
}

func (h *harness) seedCache(t *testing.T, st *state.AppState) {
	t.Helper()
	b, err := state.Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	h.cache.data[CacheKey] = b
}

func stateWithTopic(name string) *state.AppState {
	st := state.Default()
	st.Topics = append(st.Topics, &state.Topic{ID: "id-" + name, Name: name, Cards: []state.Card{}})
	return st
}

func encode(t *testing.T, st *state.AppState) []byte {
	t.Helper()
	b, err := state.Encode(st)
	if err != nil {
		t.Fatal(err)
	}
	return b
}
