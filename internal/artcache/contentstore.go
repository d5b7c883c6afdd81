package artcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/divvy/internal/genimg"
)

// artifactExts lists the formats the store recognizes, in lookup priority
// order. One artifact per slug: a write in one format removes stale siblings
// in the others.
var artifactExts = []string{".png", ".jpg", ".webp"}

// extForMIME maps an image MIME type to its file extension.
func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// ContentStore persists generated artifacts on disk, one file per slug with
// its format extension. The on-disk artifact is the durable truth; the
// cache's in-flight tracking is transient and process-local.
type ContentStore struct {
	dir string
}

// NewContentStore creates a store rooted at dir. The directory is created
// lazily on first write.
func NewContentStore(dir string) *ContentStore {
	return &ContentStore{dir: dir}
}

// Dir returns the store's root directory.
func (s *ContentStore) Dir() string {
	return s.dir
}

// Lookup returns the artifact path for a slug if one is persisted.
func (s *ContentStore) Lookup(slug string) (string, bool) {
	if slug == "" {
		return "", false
	}
	for _, ext := range artifactExts {
		p := filepath.Join(s.dir, slug+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Put writes the artifact for a slug atomically and removes stale siblings
// for the same slug in a different format. Returns the persisted path.
func (s *ContentStore) Put(slug string, img *genimg.Image) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("content store: empty slug")
	}
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("content store: empty artifact for %q", slug)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	ext := extForMIME(img.MIMEType)
	target := filepath.Join(s.dir, slug+ext)

	tmp, err := os.CreateTemp(s.dir, slug+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(img.Data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("persist artifact: %w", err)
	}

	// A regeneration in a new format leaves the old file behind; drop it.
	for _, stale := range artifactExts {
		if stale == ext {
			continue
		}
		os.Remove(filepath.Join(s.dir, slug+stale))
	}

	return target, nil
}
