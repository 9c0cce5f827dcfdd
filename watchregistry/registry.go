package watchregistry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/fileregistry"
)

const defaultTTL = 5 * time.Minute

// detachCancel returns a context that is not cancelled when parent is
// cancelled, but still respects parent's deadline. A singleflight load is
// shared between callers, so the first caller's cancellation must not poison
// the result for the rest.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx)
}

// Ensures Registry implements promptvault.Registry.
var _ promptvault.Registry = (*Registry)(nil)

type cacheEntry struct {
	val       any
	expiresAt time.Time
}

// Registry caches results from an inner registry with a TTL and, when built
// by New, invalidates the whole cache on filesystem events under the root.
type Registry struct {
	inner  promptvault.Registry
	ttl    time.Duration
	logger *zap.Logger
	exts   []string

	mu    sync.RWMutex
	cache map[string]*cacheEntry
	sf    singleflight.Group

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Wrap caches inner with a TTL and no file watching. Use New to get
// invalidation on change.
func Wrap(inner promptvault.Registry, opts ...Option) *Registry {
	r := &Registry{
		inner:  inner,
		ttl:    defaultTTL,
		logger: zap.NewNop(),
		exts:   []string{promptvault.DefaultExt},
		cache:  make(map[string]*cacheEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// New builds a fileregistry scanner over root, wraps it in a cache, and
// watches root and its domain directories so on-disk edits evict the cache.
// Call Close to stop watching.
func New(root string, opts ...Option) (*Registry, error) {
	r := Wrap(nil, opts...)
	inner, err := fileregistry.New(root, fileregistry.WithExtensions(r.exts...))
	if err != nil {
		return nil, err
	}
	r.inner = inner

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watchregistry: %w", err)
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watchregistry: %w", err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watchregistry: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if err := watcher.Add(path); err != nil {
			r.logger.Warn("watch domain directory", zap.String("path", path), zap.Error(err))
		}
	}
	r.watcher = watcher

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	go r.eventLoop(ctx)
	r.logger.Debug("watching prompt tree", zap.String("root", root))
	return r, nil
}

// Close stops the watch goroutine and releases the watcher. Safe on a
// registry built with Wrap, where it does nothing.
func (r *Registry) Close() error {
	if r.cancel != nil {
		r.cancel()
	}
	var err error
	if r.watcher != nil {
		err = r.watcher.Close()
	}
	r.wg.Wait()
	return err
}

func (r *Registry) eventLoop(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			r.handleEvent(event)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (r *Registry) handleEvent(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		// A new domain directory needs its own watch.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := r.watcher.Add(event.Name); err != nil {
				r.logger.Warn("watch new directory", zap.String("path", event.Name), zap.Error(err))
			}
		}
	}
	if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		r.EvictAll()
		r.logger.Debug("cache invalidated", zap.String("path", event.Name), zap.Stringer("op", event.Op))
	}
}

// entryValid reports whether the entry is still valid at the given time.
func (r *Registry) entryValid(ent *cacheEntry, now time.Time) bool {
	return r.ttl <= 0 || now.Before(ent.expiresAt)
}

// cached returns the value under key, loading it through singleflight on
// miss or expiry. Errors are never cached.
func (r *Registry) cached(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	now := time.Now()
	r.mu.RLock()
	ent, ok := r.cache[key]
	if ok && r.entryValid(ent, now) {
		val := ent.val
		r.mu.RUnlock()
		return val, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	now = time.Now()
	ent, ok = r.cache[key]
	if ok && r.entryValid(ent, now) {
		val := ent.val
		r.mu.Unlock()
		return val, nil
	}
	if ctx.Err() != nil {
		r.mu.Unlock()
		return nil, ctx.Err()
	}
	r.mu.Unlock()

	val, err, _ := r.sf.Do(key, func() (any, error) {
		loadCtx, cancel := detachCancel(ctx)
		defer cancel()
		return load(loadCtx)
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	expiresAt := time.Now().Add(r.ttl)
	if r.ttl <= 0 {
		expiresAt = time.Time{}
	}
	r.cache[key] = &cacheEntry{val: val, expiresAt: expiresAt}
	r.mu.Unlock()
	return val, nil
}

// ListDomains returns the domains known to the inner registry.
func (r *Registry) ListDomains(ctx context.Context) ([]string, error) {
	v, err := r.cached(ctx, "domains", func(ctx context.Context) (any, error) {
		return r.inner.ListDomains(ctx)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]string)), nil
}

// ListUseCases returns the use cases under domain.
func (r *Registry) ListUseCases(ctx context.Context, domain string) ([]string, error) {
	if err := promptvault.ValidateName(domain); err != nil {
		return nil, err
	}
	v, err := r.cached(ctx, "usecases/"+domain, func(ctx context.Context) (any, error) {
		return r.inner.ListUseCases(ctx, domain)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]string)), nil
}

// ListVersions returns the versions of the use case, newest first.
func (r *Registry) ListVersions(ctx context.Context, domain, useCase string) ([]promptvault.VersionInfo, error) {
	if err := promptvault.ValidateName(domain, useCase); err != nil {
		return nil, err
	}
	v, err := r.cached(ctx, "versions/"+domain+"/"+useCase, func(ctx context.Context) (any, error) {
		return r.inner.ListVersions(ctx, domain, useCase)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]promptvault.VersionInfo)), nil
}

// GetLatest returns a copy of the newest record of the use case.
func (r *Registry) GetLatest(ctx context.Context, domain, useCase string) (*promptvault.Record, error) {
	if err := promptvault.ValidateName(domain, useCase); err != nil {
		return nil, err
	}
	v, err := r.cached(ctx, "latest/"+domain+"/"+useCase, func(ctx context.Context) (any, error) {
		return r.inner.GetLatest(ctx, domain, useCase)
	})
	if err != nil {
		return nil, err
	}
	return promptvault.CloneRecord(v.(*promptvault.Record)), nil
}

// GetVersion returns a copy of the record matching version exactly.
func (r *Registry) GetVersion(ctx context.Context, domain, useCase string, version promptvault.Version) (*promptvault.Record, error) {
	if err := promptvault.ValidateName(domain, useCase); err != nil {
		return nil, err
	}
	key := "version/" + domain + "/" + useCase + "/" + version.String()
	v, err := r.cached(ctx, key, func(ctx context.Context) (any, error) {
		return r.inner.GetVersion(ctx, domain, useCase, version)
	})
	if err != nil {
		return nil, err
	}
	return promptvault.CloneRecord(v.(*promptvault.Record)), nil
}

// Evict drops the cached records and version listing of one use case.
// Safe for concurrent use.
func (r *Registry) Evict(domain, useCase string) {
	pair := domain + "/" + useCase
	r.mu.Lock()
	for key := range r.cache {
		if key == "latest/"+pair || key == "versions/"+pair || strings.HasPrefix(key, "version/"+pair+"/") {
			delete(r.cache, key)
		}
	}
	r.mu.Unlock()
}

// EvictAll clears the entire cache. Safe for concurrent use.
func (r *Registry) EvictAll() {
	r.mu.Lock()
	r.cache = make(map[string]*cacheEntry)
	r.mu.Unlock()
}
