package registry

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/resource"
)

func TestPersistent_InsertGetRemove(t *testing.T) {
	p := NewPersistent[int](resource.KindBuffer)
	h := resource.NewPersistentHandle(resource.KindBuffer, 0, 1, resource.FlagNone)

	p.Insert(h, 42)
	got, ok := p.Get(h)
	if !ok || got != 42 {
		t.Fatalf("Get() = (%d, %v), want (42, true)", got, ok)
	}

	removed, ok := p.Remove(h)
	if !ok || removed != 42 {
		t.Fatalf("Remove() = (%d, %v), want (42, true)", removed, ok)
	}
	if _, ok := p.Get(h); ok {
		t.Error("Get() after Remove should miss")
	}
}

func TestPersistent_StaleGenerationMisses(t *testing.T) {
	p := NewPersistent[string](resource.KindHeap)
	h1 := resource.NewPersistentHandle(resource.KindHeap, 0, 1, resource.FlagNone)
	p.Insert(h1, "v1")

	p.Remove(h1)
	h2 := resource.NewPersistentHandle(resource.KindHeap, 0, 2, resource.FlagNone)
	p.Insert(h2, "v2")

	if _, ok := p.Get(h1); ok {
		t.Error("a stale handle must not resolve after its slot is reused with a new generation")
	}
	got, ok := p.Get(h2)
	if !ok || got != "v2" {
		t.Errorf("Get(h2) = (%q, %v), want (\"v2\", true)", got, ok)
	}
}

func TestPersistent_ForEach(t *testing.T) {
	p := NewPersistent[int](resource.KindBuffer)
	p.Insert(resource.NewPersistentHandle(resource.KindBuffer, 0, 1, resource.FlagNone), 1)
	p.Insert(resource.NewPersistentHandle(resource.KindBuffer, 1, 1, resource.FlagNone), 2)

	sum := 0
	p.ForEach(func(h resource.Handle, v int) bool {
		sum += v
		return true
	})
	if sum != 3 {
		t.Errorf("sum = %d, want 3", sum)
	}
}
