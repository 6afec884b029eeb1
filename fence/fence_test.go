package fence

import (
	"testing"

	"github.com/arbor-gfx/rendergraph/hal/noop"
)

func TestRegistry_AcquireCreatesAndRetireRecycles(t *testing.T) {
	r := NewRegistry(&noop.Device{})

	key := Key{Queue: 0, Encoder: 1}
	f, err := r.Acquire(key, 10, 10)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if f.State() != StatePending {
		t.Errorf("State() = %v, want pending", f.State())
	}
	if r.PendingCount() != 1 || r.FreeCount() != 0 {
		t.Fatalf("pending=%d free=%d, want 1/0", r.PendingCount(), r.FreeCount())
	}

	r.Retire(10)
	if r.PendingCount() != 0 || r.FreeCount() != 1 {
		t.Fatalf("after retire: pending=%d free=%d, want 0/1", r.PendingCount(), r.FreeCount())
	}
	if f.State() != StateFree {
		t.Errorf("State() after retire = %v, want free", f.State())
	}
}

func TestRegistry_RetireOnlyCompletedCommandBuffers(t *testing.T) {
	r := NewRegistry(&noop.Device{})

	_, err := r.Acquire(Key{Queue: 0, Encoder: 0}, 5, 5)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	_, err = r.Acquire(Key{Queue: 0, Encoder: 1}, 9, 9)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	r.Retire(5)
	if r.PendingCount() != 1 {
		t.Fatalf("PendingCount() = %d, want 1 (the cb=9 fence still pending)", r.PendingCount())
	}
	if r.FreeCount() != 1 {
		t.Fatalf("FreeCount() = %d, want 1", r.FreeCount())
	}
}

func TestRegistry_AcquireReusesFreedFence(t *testing.T) {
	r := NewRegistry(&noop.Device{})

	key := Key{Queue: 0, Encoder: 0}
	first, err := r.Acquire(key, 1, 1)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	r.Retire(1)

	second, err := r.Acquire(Key{Queue: 1, Encoder: 0}, 2, 2)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if first != second {
		t.Error("expected the freed fence to be reused rather than a new one created")
	}
}

func TestRegistry_Destroy(t *testing.T) {
	r := NewRegistry(&noop.Device{})
	if _, err := r.Acquire(Key{Queue: 0, Encoder: 0}, 1, 1); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	r.Destroy()
	if r.PendingCount() != 0 || r.FreeCount() != 0 {
		t.Error("Destroy should clear both pools")
	}
}
