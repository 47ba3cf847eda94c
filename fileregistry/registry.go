package fileregistry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/skosovsky/promptsig"
	"github.com/skosovsky/promptsig/manifest"
)

// Registry loads signatures from the filesystem (lazy, cached).
// Resolves name to {dir}/{name}.yaml with fallback to {dir}/{name}.yml.
type Registry struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*promptsig.Signature
	sf    singleflight.Group
}

// New creates a Registry that reads YAML manifests from dir.
func New(dir string) *Registry {
	return &Registry{
		dir:   dir,
		cache: make(map[string]*promptsig.Signature),
	}
}

// GetSignature returns a signature by name. The first call loads and
// caches it; concurrent loads of the same name are collapsed into one.
// The returned signature is a clone, so callers cannot mutate the cache.
func (r *Registry) GetSignature(ctx context.Context, name string) (*promptsig.Signature, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	r.mu.RLock()
	sig, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return sig.Clone(), nil
	}
	v, err, _ := r.sf.Do(name, func() (any, error) {
		r.mu.RLock()
		sig, ok := r.cache[name]
		r.mu.RUnlock()
		if ok {
			return sig, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		loaded, err := r.load(name)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cache[name] = loaded
		r.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*promptsig.Signature).Clone(), nil
}

func (r *Registry) load(name string) (*promptsig.Signature, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(r.dir, name+ext)
		sig, err := manifest.ParseFile(path)
		if err == nil {
			return sig, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %q in %q", promptsig.ErrSignatureNotFound, name, r.dir)
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", promptsig.ErrInvalidName, name)
	}
	return nil
}
