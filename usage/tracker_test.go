package usage

import "testing"

func TestTracker_PreviousWrite(t *testing.T) {
	tr := NewTracker()
	tr.Append(Record{PassIndex: 0, Type: ShaderWrite, Range: FullResource()})
	tr.Append(Record{PassIndex: 2, Type: ShaderRead, Range: FullResource()})

	rec, ok := tr.PreviousWrite(2, FullResource())
	if !ok {
		t.Fatal("expected a previous write before pass 2")
	}
	if rec.PassIndex != 0 {
		t.Errorf("PreviousWrite pass index = %d, want 0", rec.PassIndex)
	}

	if _, ok := tr.PreviousWrite(0, FullResource()); ok {
		t.Error("expected no previous write before pass 0")
	}
}

func TestTracker_PreviousRead(t *testing.T) {
	tr := NewTracker()
	tr.Append(Record{PassIndex: 0, Type: ShaderRead, Range: FullResource()})
	tr.Append(Record{PassIndex: 1, Type: ShaderWrite, Range: FullResource()})

	rec, ok := tr.PreviousRead(1, FullResource())
	if !ok {
		t.Fatal("expected a previous read before pass 1")
	}
	if rec.PassIndex != 0 {
		t.Errorf("PreviousRead pass index = %d, want 0", rec.PassIndex)
	}
}

func TestTracker_SubresourceIsolation(t *testing.T) {
	tr := NewTracker()
	tr.Append(Record{PassIndex: 0, Type: ShaderWrite, Range: TextureRange(0, 0, 0, 0)})

	if _, ok := tr.PreviousWrite(5, TextureRange(1, 1, 0, 0)); ok {
		t.Error("a write to mip 0 must not be visible to a query against mip 1")
	}
	if _, ok := tr.PreviousWrite(5, TextureRange(0, 0, 0, 0)); !ok {
		t.Error("a write to mip 0 must be visible to a query against the same mip")
	}
}

func TestTracker_ChunkBoundary(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < chunkSize*3+7; i++ {
		tr.Append(Record{PassIndex: i, Type: ShaderRead, Range: FullResource()})
	}
	if tr.Len() != chunkSize*3+7 {
		t.Fatalf("Len() = %d, want %d", tr.Len(), chunkSize*3+7)
	}
	last := tr.At(tr.Len() - 1)
	if last.PassIndex != chunkSize*3+6 {
		t.Errorf("last record pass index = %d, want %d", last.PassIndex, chunkSize*3+6)
	}
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Append(Record{PassIndex: 0, Type: ShaderRead, Range: FullResource()})
	tr.Reset()
	if tr.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", tr.Len())
	}
	if _, ok := tr.PreviousRead(100, FullResource()); ok {
		t.Error("a reset tracker should report no previous usage")
	}
}
