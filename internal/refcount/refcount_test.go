package refcount

import (
	"sync"
	"testing"
)

func TestCount_RetainRelease(t *testing.T) {
	var c Count
	c.Init()

	if got := c.Retain(); got != 2 {
		t.Errorf("Retain() = %d, want 2", got)
	}
	if got := c.Release(); got != 1 {
		t.Errorf("Release() = %d, want 1", got)
	}
	if got := c.Release(); got != 0 {
		t.Errorf("Release() = %d, want 0", got)
	}
	if got := c.Release(); got >= 0 {
		t.Errorf("Release() on dead count = %d, want negative", got)
	}
	if got := c.Load(); got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}
}

func TestCount_Concurrent(t *testing.T) {
	var c Count
	c.Init()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Retain()
			c.Release()
		}()
	}
	wg.Wait()

	if got := c.Load(); got != 1 {
		t.Errorf("Load() = %d, want 1", got)
	}
}
