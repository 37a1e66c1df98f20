package databox

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBox_GetSetRemove(t *testing.T) {
	b := New("test")

	if _, ok := b.Get(1); ok {
		t.Error("Get on empty box returned ok")
	}

	b.Set(1, "one")
	b.Set(3, 3.0)
	b.Set(2, []int{2})

	if v, ok := b.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %v, %v", v, ok)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, b.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}

	if !b.Remove(2) {
		t.Error("Remove(2) = false, want true")
	}
	if b.Remove(2) {
		t.Error("second Remove(2) = true, want false")
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}

	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d", b.Len())
	}
}

func TestGetInstance(t *testing.T) {
	a := GetInstance("shared-test")
	b := GetInstance("shared-test")
	if a != b {
		t.Fatal("GetInstance returned different boxes for the same name")
	}
	if a.Name() != "shared-test" {
		t.Errorf("Name() = %q", a.Name())
	}

	if !Drop("shared-test") {
		t.Error("Drop = false, want true")
	}
	if GetInstance("shared-test") == a {
		t.Error("GetInstance after Drop returned the dropped box")
	}
	Drop("shared-test")
}

func TestGetInstance_Concurrent(t *testing.T) {
	defer Drop("concurrent")

	boxes := make([]*Box, 50)
	var wg sync.WaitGroup
	for i := range boxes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			boxes[i] = GetInstance("concurrent")
			boxes[i].Set(i, i)
		}(i)
	}
	wg.Wait()

	for _, b := range boxes[1:] {
		if b != boxes[0] {
			t.Fatal("concurrent GetInstance produced distinct boxes")
		}
	}
	if boxes[0].Len() != 50 {
		t.Errorf("Len() = %d, want 50", boxes[0].Len())
	}
}
