package alloc

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/fence"
	"github.com/arbor-gfx/rendergraph/hal/noop"
)

func TestHeap_CollectAssignsDistinctAliasIndices(t *testing.T) {
	h := NewHeap(1 << 20)

	_, a1, waits1, err := h.Collect(1024)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(waits1) != 0 {
		t.Errorf("first collect should have no preceding fences, got %d", len(waits1))
	}

	_, a2, _, err := h.Collect(1024)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if a1 == a2 {
		t.Error("two collects must receive distinct alias indices")
	}
}

func TestHeap_DepositEvictsOlderFences(t *testing.T) {
	h := NewHeap(1 << 20)
	reg := fence.NewRegistry(&noop.Device{})

	_, a1, _, err := h.Collect(1024)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	f1, err := reg.Acquire(fence.Key{Queue: 0, Encoder: 0}, 1, 1)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	h.Deposit(a1, f1)

	_, a2, waits, err := h.Collect(1024)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(waits) != 1 || waits[0] != f1 {
		t.Fatalf("expected a2 (%d) to wait on f1, got %d fences", a2, len(waits))
	}

	f2, err := reg.Acquire(fence.Key{Queue: 0, Encoder: 1}, 2, 2)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	h.Deposit(a2, f2)

	// f1's alias index is now older than a2's deposit, so it must be evicted.
	_, _, waits2, err := h.Collect(1024)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for _, f := range waits2 {
		if f == f1 {
			t.Error("evicted fence f1 should not appear in a later collect's wait set")
		}
	}
}

func TestHeap_GrowsWhenExceedingSize(t *testing.T) {
	h := NewHeap(1024)
	_, _, _, err := h.Collect(2048)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if h.Stats().CurrentSize < 2048 {
		t.Errorf("CurrentSize = %d, want >= 2048", h.Stats().CurrentSize)
	}
	if h.Stats().GrowCount != 1 {
		t.Errorf("GrowCount = %d, want 1", h.Stats().GrowCount)
	}
}

func TestHeap_EndFrameTracksHighWaterMark(t *testing.T) {
	h := NewHeap(1 << 20)
	if _, _, _, err := h.Collect(4096); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	h.EndFrame(4)
	if hw := h.Stats().HighWaterMark; hw != 4096 {
		t.Errorf("HighWaterMark = %d, want 4096", hw)
	}
}
