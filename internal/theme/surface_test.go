package theme

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRootCommitReplacesWholeSet(t *testing.T) {
	t.Parallel()

	root := NewStyleRoot()
	assert.Equal(t, "", root.CSS())

	v1 := root.Commit([]Property{{"--color-primary", "#fff"}, {"--color-stale", "#000"}})
	v2 := root.Commit([]Property{{"--color-primary", "#111"}})

	assert.Equal(t, uint64(1), v1)
	assert.Equal(t, uint64(2), v2)
	assert.Equal(t, "#111", root.Property("--color-primary"))
	assert.Empty(t, root.Property("--color-stale"))
	assert.Equal(t, ":root {\n  --color-primary: #111;\n}\n", root.CSS())
}

func TestStyleRootObserversSeeCompleteCommit(t *testing.T) {
	t.Parallel()

	root := NewStyleRoot()
	var seen [][]string
	cancel := root.Observe(func(version uint64) {
		values, v := root.Properties("--color-a", "--color-b")
		assert.Equal(t, version, v)
		seen = append(seen, values)
	})

	root.Commit([]Property{{"--color-a", "1"}, {"--color-b", "1"}})
	root.Commit([]Property{{"--color-a", "2"}, {"--color-b", "2"}})
	cancel()
	cancel()
	root.Commit([]Property{{"--color-a", "3"}, {"--color-b", "3"}})

	assert.Equal(t, [][]string{{"1", "1"}, {"2", "2"}}, seen)
	assert.Equal(t, 0, root.observerCount())
}

func TestStyleRootConcurrentReadersNeverSeeMixedPresets(t *testing.T) {
	t.Parallel()

	root := NewStyleRoot()
	root.Commit([]Property{{"--color-a", "x"}, {"--color-b", "x"}})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				values, _ := root.Properties("--color-a", "--color-b")
				if values[0] != values[1] {
					t.Errorf("mixed state observed: %v", values)
					return
				}
			}
		}()
	}
	for i := 0; i < 200; i++ {
		v := "x"
		if i%2 == 0 {
			v = "y"
		}
		root.Commit([]Property{{"--color-a", v}, {"--color-b", v}})
	}
	close(stop)
	wg.Wait()
}

func TestStyleRootTransitionWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	root := NewStyleRoot(WithClock(func() time.Time { return now }), WithTransitionWindow(time.Second))
	assert.False(t, root.Transitioning())

	root.Commit([]Property{{"--color-a", "1"}})
	assert.True(t, root.Transitioning())

	now = now.Add(2 * time.Second)
	assert.False(t, root.Transitioning())

	disabled := NewStyleRoot(WithTransitionWindow(0))
	disabled.Commit([]Property{{"--color-a", "1"}})
	assert.False(t, disabled.Transitioning())
}

func TestSnapshotFingerprintTracksContent(t *testing.T) {
	t.Parallel()

	a := NewStyleRoot()
	b := NewStyleRoot()
	a.Commit([]Property{{"--color-a", "1"}})
	b.Commit([]Property{{"--color-a", "1"}})
	b.Commit([]Property{{"--color-a", "1"}})

	require.Len(t, a.Snapshot().Fingerprint(), 24)
	assert.Equal(t, a.Snapshot().Fingerprint(), b.Snapshot().Fingerprint())

	b.Commit([]Property{{"--color-a", "2"}})
	assert.NotEqual(t, a.Snapshot().Fingerprint(), b.Snapshot().Fingerprint())
}
