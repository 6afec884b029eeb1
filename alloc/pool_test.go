package alloc

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/resource"
)

func TestPool_CollectMissThenHitAfterDeposit(t *testing.T) {
	p := NewPool()

	if _, ok := p.Collect("buffer:128"); ok {
		t.Fatal("expected a miss on an empty pool")
	}

	p.Deposit("buffer:128", resource.Backing{Kind: resource.BackingBuffer, Offset: 64})

	b, ok := p.Collect("buffer:128")
	if !ok {
		t.Fatal("expected a hit after deposit")
	}
	if b.Offset != 64 {
		t.Errorf("Offset = %d, want 64", b.Offset)
	}

	if _, ok := p.Collect("buffer:128"); ok {
		t.Error("expected the deposited entry to be consumed by the first Collect")
	}
}

func TestPool_CycleDropsOldestBucket(t *testing.T) {
	p := NewPool()
	p.Deposit("texture:256", resource.Backing{Kind: resource.BackingTextureOwned})

	for i := 0; i < ageBuckets; i++ {
		p.Cycle()
	}

	if _, ok := p.Collect("texture:256"); ok {
		t.Error("expected the entry to have aged out after ageBuckets cycles")
	}
}

func TestPool_Stats(t *testing.T) {
	p := NewPool()
	p.Deposit("a", resource.Backing{})
	p.Deposit("b", resource.Backing{})

	stats := p.Stats()
	if stats.CachedCount != 2 {
		t.Errorf("CachedCount = %d, want 2", stats.CachedCount)
	}

	p.Collect("a")
	stats = p.Stats()
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.CachedCount != 1 {
		t.Errorf("CachedCount = %d, want 1", stats.CachedCount)
	}
}
