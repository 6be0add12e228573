package repolock

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalRoot_SameLockForEquivalentSpellings(t *testing.T) {
	dir := t.TempDir()

	direct := CanonicalRoot(dir)
	dotted := CanonicalRoot(filepath.Join(dir, ".", "sub", ".."))

	assert.Equal(t, direct, dotted)
}

func TestCanonicalRoot_ResolvesSymlinks(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(dir, link))

	assert.Equal(t, CanonicalRoot(dir), CanonicalRoot(link))
}

func TestCanonicalRoot_MissingPathStillStable(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	assert.Equal(t, CanonicalRoot(missing), CanonicalRoot(missing))
}

func TestRegistry_WithWrite_Serializes(t *testing.T) {
	registry := NewRegistry()
	root := t.TempDir()

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = registry.WithWrite(root, func() error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "writers on the same root must not overlap")
}

func TestRegistry_WithRead_Concurrent(t *testing.T) {
	registry := NewRegistry()
	root := t.TempDir()

	start := make(chan struct{})
	entered := make(chan struct{}, 2)
	release := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_ = registry.WithRead(root, func() error {
				entered <- struct{}{}
				<-release
				return nil
			})
		}()
	}

	close(start)
	// Both readers must be inside the critical section at once
	<-entered
	<-entered
	close(release)
	wg.Wait()
}

func TestRegistry_DifferentRootsIndependent(t *testing.T) {
	registry := NewRegistry()
	rootA := t.TempDir()
	rootB := t.TempDir()

	holding := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = registry.WithWrite(rootA, func() error {
			close(holding)
			<-release
			return nil
		})
	}()

	<-holding
	go func() {
		// Must not block behind rootA's writer
		_ = registry.WithWrite(rootB, func() error { return nil })
		close(done)
	}()

	<-done
	close(release)
}

func TestRegistry_ErrorPropagates(t *testing.T) {
	registry := NewRegistry()
	root := t.TempDir()

	sentinel := assert.AnError
	err := registry.WithWrite(root, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)

	err = registry.WithRead(root, func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}
