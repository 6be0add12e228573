// Package repolock serializes git operations per repository root.
//
// All linked worktrees of a repository share one metadata store under the
// main checkout's .git directory, so mutating operations against the same
// repository must not interleave. Read-only operations may run concurrently
// with each other but wait behind any in-flight mutation on the same root.
// Operations on different roots are fully independent.
package repolock

import (
	"path/filepath"
	"sync"

	"arbor/internal/logging"
)

// Registry hands out one RWMutex per canonical repository root
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewRegistry creates an empty lock registry
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.RWMutex)}
}

// CanonicalRoot normalizes a repository root path so that every spelling of
// the same directory maps to the same lock. Symlinks are resolved when
// possible; a path that cannot be resolved still canonicalizes stably.
func CanonicalRoot(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}

func (r *Registry) lockFor(root string) *sync.RWMutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, ok := r.locks[root]
	if !ok {
		lock = &sync.RWMutex{}
		r.locks[root] = lock
	}
	return lock
}

// WithWrite runs fn while holding the exclusive lock for the repository
// root. Use for every operation that mutates repository state.
func (r *Registry) WithWrite(root string, fn func() error) error {
	canonical := CanonicalRoot(root)
	lock := r.lockFor(canonical)

	logging.Logger.Debug("Acquiring write lock", "root", canonical)
	lock.Lock()
	defer lock.Unlock()

	return fn()
}

// WithRead runs fn while holding the shared lock for the repository root.
// Use for list/status operations so they never observe a torn intermediate
// state from an in-flight mutation.
func (r *Registry) WithRead(root string, fn func() error) error {
	canonical := CanonicalRoot(root)
	lock := r.lockFor(canonical)

	lock.RLock()
	defer lock.RUnlock()

	return fn()
}
