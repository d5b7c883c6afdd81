package artcache

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/divvy/internal/genimg"
)

var testPNG = &genimg.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

// gatedProvider blocks every Generate call until released, so tests can hold
// a generation in flight deterministically.
type gatedProvider struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	err     error
}

func newGatedProvider() *gatedProvider {
	return &gatedProvider{release: make(chan struct{})}
}

func (p *gatedProvider) Generate(ctx context.Context, _ string) (*genimg.Image, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()

	select {
	case <-p.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if p.err != nil {
		return nil, p.err
	}
	return testPNG, nil
}

func (p *gatedProvider) ModelID() string { return "gated" }

func (p *gatedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func newTestCache(t *testing.T, provider genimg.Provider) *Cache {
	t.Helper()
	return New(NewContentStore(t.TempDir()), provider, time.Second, nil)
}

func TestResolveCoalescesConcurrentCallers(t *testing.T) {
	provider := newGatedProvider()
	cache := newTestCache(t, provider)

	const n = 16
	var wg sync.WaitGroup
	paths := make([]string, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = cache.Resolve(context.Background(), "Red Panda")
		}(i)
	}

	// Let the callers pile onto the same flight, then release it.
	time.Sleep(50 * time.Millisecond)
	close(provider.release)
	wg.Wait()

	if got := provider.callCount(); got != 1 {
		t.Fatalf("generator invoked %d times, want 1", got)
	}
	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if paths[i] != paths[0] {
			t.Errorf("caller %d path = %q, want %q", i, paths[i], paths[0])
		}
	}
}

func TestResolveDedupAcrossTime(t *testing.T) {
	mock := genimg.NewMockProvider(genimg.MockResponse{Image: testPNG})
	cache := newTestCache(t, mock)

	first, err := cache.Resolve(context.Background(), "Axolotl")
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Resolve(context.Background(), "Axolotl")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("paths differ: %q vs %q", first, second)
	}
	if mock.CallCount() != 1 {
		t.Errorf("generator invoked %d times, want 1", mock.CallCount())
	}
}

func TestResolveFailureDoesNotPoisonSlug(t *testing.T) {
	mock := genimg.NewMockProvider(
		genimg.MockResponse{Err: errors.New("transient")},
		genimg.MockResponse{Image: testPNG},
	)
	cache := newTestCache(t, mock)

	if _, err := cache.Resolve(context.Background(), "Narwhal"); err == nil {
		t.Fatal("first resolve should fail")
	}
	path, err := cache.Resolve(context.Background(), "Narwhal")
	if err != nil {
		t.Fatalf("second resolve should succeed: %v", err)
	}
	if path == "" {
		t.Error("empty path")
	}
	if mock.CallCount() != 2 {
		t.Errorf("generator invoked %d times, want 2", mock.CallCount())
	}
}

func TestResolveTimeout(t *testing.T) {
	provider := newGatedProvider() // never released
	cache := New(NewContentStore(t.TempDir()), provider, 30*time.Millisecond, nil)

	_, err := cache.Resolve(context.Background(), "Quokka")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}

	// The slug is free for another attempt.
	if got := cache.Status("Quokka").Status; got != StatusMissing {
		t.Errorf("status after timeout = %s, want missing", got)
	}
}

func TestPrefetchAndStatusLifecycle(t *testing.T) {
	provider := newGatedProvider()
	cache := newTestCache(t, provider)

	if got := cache.Status("Sea Otter").Status; got != StatusMissing {
		t.Fatalf("initial status = %s, want missing", got)
	}

	if got := cache.Prefetch("Sea Otter"); got != PrefetchStarted {
		t.Fatalf("first prefetch = %s, want started", got)
	}

	// The generation is parked on the gate: status must say generating and a
	// second prefetch must not start another flight.
	waitFor(t, func() bool { return cache.Status("Sea Otter").Status == StatusGenerating })
	if got := cache.Prefetch("Sea Otter"); got != PrefetchAlreadyInFlight {
		t.Errorf("second prefetch = %s, want already-in-flight", got)
	}

	close(provider.release)
	waitFor(t, func() bool { return cache.Status("Sea Otter").Status == StatusReady })

	report := cache.Status("Sea Otter")
	if !strings.Contains(report.ImagePath, "?v=") {
		t.Errorf("ready path %q missing cache-busting parameter", report.ImagePath)
	}
	if got := cache.Prefetch("Sea Otter"); got != PrefetchAlreadyCached {
		t.Errorf("prefetch after persistence = %s, want already-cached", got)
	}
	if got := provider.callCount(); got != 1 {
		t.Errorf("generator invoked %d times, want 1", got)
	}
}

func TestResolveJoinsPrefetchFlight(t *testing.T) {
	provider := newGatedProvider()
	cache := newTestCache(t, provider)

	if got := cache.Prefetch("Fennec Fox"); got != PrefetchStarted {
		t.Fatalf("prefetch = %s, want started", got)
	}
	waitFor(t, func() bool { return cache.Status("Fennec Fox").Status == StatusGenerating })

	done := make(chan error, 1)
	go func() {
		_, err := cache.Resolve(context.Background(), "Fennec Fox")
		done <- err
	}()

	close(provider.release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if got := provider.callCount(); got != 1 {
		t.Errorf("generator invoked %d times, want 1 (resolve joined prefetch)", got)
	}
}

func TestContentStorePutRemovesStaleSiblings(t *testing.T) {
	store := NewContentStore(t.TempDir())

	pngPath, err := store.Put("wombat", testPNG)
	if err != nil {
		t.Fatal(err)
	}

	jpgPath, err := store.Put("wombat", &genimg.Image{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(jpgPath, ".jpg") {
		t.Errorf("path = %q, want .jpg suffix", jpgPath)
	}

	got, ok := store.Lookup("wombat")
	if !ok {
		t.Fatal("artifact missing after rewrite")
	}
	if got != jpgPath {
		t.Errorf("Lookup = %q, want %q", got, jpgPath)
	}
	if _, err := os.Stat(pngPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale sibling %q still present", pngPath)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
