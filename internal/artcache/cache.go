package artcache

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/abhisek/divvy/internal/genimg"
)

// PrefetchStatus reports what a non-blocking Prefetch call did.
type PrefetchStatus string

const (
	PrefetchAlreadyCached   PrefetchStatus = "already-cached"
	PrefetchStarted         PrefetchStatus = "started"
	PrefetchAlreadyInFlight PrefetchStatus = "already-in-flight"
)

// ArtifactStatus is the polling state of a subject's artwork.
type ArtifactStatus string

const (
	StatusMissing    ArtifactStatus = "missing"
	StatusGenerating ArtifactStatus = "generating"
	StatusReady      ArtifactStatus = "ready"
)

// StatusReport is the poll answer for one subject.
type StatusReport struct {
	SubjectName string
	Status      ArtifactStatus

	// ImagePath is set when Status is ready, with a cache-busting query
	// parameter so a viewer never shows a stale artifact.
	ImagePath string
}

// Cache serves reward artwork, generating each subject's image at most once
// concurrently and persisting it to the content store.
//
// Coalescing is delegated to a singleflight group keyed by slug; the inflight
// set mirrors which slugs currently have a running generation so Status can
// answer "generating" regardless of which caller started the work. Both are
// process-local: the persisted artifact is the only durable state.
type Cache struct {
	store    *ContentStore
	provider genimg.Provider
	timeout  time.Duration
	logger   *zap.Logger

	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New creates a Cache. timeout bounds each generation call so an abandoned
// prefetch cannot pin its slug forever; zero means 90s.
func New(store *ContentStore, provider genimg.Provider, timeout time.Duration, logger *zap.Logger) *Cache {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:    store,
		provider: provider,
		timeout:  timeout,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Store returns the underlying content store.
func (c *Cache) Store() *ContentStore {
	return c.store
}

// Resolve returns the artifact path for a subject, generating and persisting
// it first if needed. Concurrent calls for the same subject share a single
// generation; a subject with a persisted artifact never re-generates.
func (c *Cache) Resolve(ctx context.Context, subjectName string) (string, error) {
	slug := Slugify(subjectName)
	if slug == "" {
		return "", fmt.Errorf("artcache: subject %q has no cacheable name", subjectName)
	}

	if path, ok := c.store.Lookup(slug); ok {
		return path, nil
	}

	v, err, _ := c.group.Do(slug, func() (any, error) {
		return c.generate(ctx, slug, subjectName)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Prefetch starts generation for a subject without waiting for it. The cache
// warms in the background while the player keeps solving.
func (c *Cache) Prefetch(subjectName string) PrefetchStatus {
	slug := Slugify(subjectName)
	if slug == "" {
		return PrefetchAlreadyCached // nothing cacheable, nothing to do
	}

	if _, ok := c.store.Lookup(slug); ok {
		return PrefetchAlreadyCached
	}
	if c.isInflight(slug) {
		return PrefetchAlreadyInFlight
	}

	ch := c.group.DoChan(slug, func() (any, error) {
		// Detached from the caller: a prefetch outlives the keystroke that
		// triggered it. The per-call timeout still bounds it.
		return c.generate(context.Background(), slug, subjectName)
	})
	go func() { <-ch }()

	return PrefetchStarted
}

// Status answers UI polling for a subject's artwork.
func (c *Cache) Status(subjectName string) StatusReport {
	report := StatusReport{SubjectName: subjectName, Status: StatusMissing}

	slug := Slugify(subjectName)
	if slug == "" {
		return report
	}

	if path, ok := c.store.Lookup(slug); ok {
		report.Status = StatusReady
		report.ImagePath = bustedPath(path)
		return report
	}
	if c.isInflight(slug) {
		report.Status = StatusGenerating
	}
	return report
}

// generate runs inside the singleflight leader. The in-flight marker lives
// exactly as long as this call; on failure the slug is immediately eligible
// for a fresh attempt rather than staying poisoned.
func (c *Cache) generate(ctx context.Context, slug, subjectName string) (string, error) {
	c.setInflight(slug)
	defer c.clearInflight(slug)

	gctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	img, err := c.provider.Generate(gctx, subjectName)
	if err != nil {
		c.logger.Warn("artwork generation failed",
			zap.String("slug", slug), zap.Error(err))
		return "", fmt.Errorf("generate artwork for %q: %w", subjectName, err)
	}

	path, err := c.store.Put(slug, img)
	if err != nil {
		return "", fmt.Errorf("persist artwork for %q: %w", subjectName, err)
	}

	c.logger.Info("artwork cached",
		zap.String("slug", slug), zap.String("path", path))
	return path, nil
}

func (c *Cache) setInflight(slug string) {
	c.mu.Lock()
	c.inflight[slug] = struct{}{}
	c.mu.Unlock()
}

func (c *Cache) clearInflight(slug string) {
	c.mu.Lock()
	delete(c.inflight, slug)
	c.mu.Unlock()
}

func (c *Cache) isInflight(slug string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[slug]
	return ok
}

// bustedPath appends a modification-time query parameter to defeat viewer
// caching of a regenerated artifact.
func bustedPath(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path
	}
	return fmt.Sprintf("%s?v=%d", path, info.ModTime().Unix())
}
