package resource

import "testing"

func TestHandle_PersistentVsTransient(t *testing.T) {
	p := NewPersistentHandle(KindBuffer, 3, 1, FlagNone)
	if !p.IsPersistent() {
		t.Error("expected persistent handle")
	}
	if p.Index() != 3 {
		t.Errorf("Index() = %d, want 3", p.Index())
	}

	tr := NewTransientHandle(KindTexture, 7, 2, FlagHistoryBuffer)
	if tr.IsPersistent() {
		t.Error("expected transient handle")
	}
	if tr.TransientIndex() != 7 {
		t.Errorf("TransientIndex() = %d, want 7", tr.TransientIndex())
	}
	if !tr.Flags().Has(FlagHistoryBuffer) {
		t.Error("expected FlagHistoryBuffer to be set")
	}
}

func TestHandle_IsValid(t *testing.T) {
	if (Handle{}).IsValid() {
		t.Error("zero Handle must not be valid")
	}
	h := NewPersistentHandle(KindHeap, 0, 1, FlagNone)
	if !h.IsValid() {
		t.Error("handle with kind and non-zero generation should be valid")
	}
}

func TestHandle_KindNeverAliasesAcrossKinds(t *testing.T) {
	a := NewPersistentHandle(KindBuffer, 1, 1, FlagNone)
	b := NewPersistentHandle(KindTexture, 1, 1, FlagNone)
	if a == b {
		t.Error("handles of different kinds sharing an index must not compare equal")
	}
}

func TestFlags_Has(t *testing.T) {
	f := FlagPersistent | FlagWindowHandle
	if !f.Has(FlagPersistent) {
		t.Error("expected FlagPersistent to be set")
	}
	if f.Has(FlagHistoryBuffer) {
		t.Error("did not expect FlagHistoryBuffer to be set")
	}
	if !f.Has(FlagPersistent | FlagWindowHandle) {
		t.Error("expected both flags set")
	}
}
