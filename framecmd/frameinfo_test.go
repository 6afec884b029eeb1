package framecmd

import "testing"

func TestBuild_CommandBufferCount(t *testing.T) {
	passes := []PassRecord{
		{Index: 0, Kind: PassCompute},
		{Index: 1, Kind: PassDraw, RenderTarget: rt(32, 32)},
	}
	info := Build(passes, 10)
	if info.FrameBaseIndex != 10 {
		t.Errorf("FrameBaseIndex = %d, want 10", info.FrameBaseIndex)
	}
	if got := info.CommandBufferCount(); got != 1 {
		t.Errorf("CommandBufferCount() = %d, want 1", got)
	}
	if len(info.Encoders) != 2 {
		t.Fatalf("len(Encoders) = %d, want 2", len(info.Encoders))
	}
}

func TestBuild_EmptyFrame(t *testing.T) {
	info := Build(nil, 0)
	if info.CommandBufferCount() != 0 {
		t.Errorf("CommandBufferCount() = %d, want 0 for an empty frame", info.CommandBufferCount())
	}
	if len(info.Encoders) != 0 {
		t.Errorf("len(Encoders) = %d, want 0", len(info.Encoders))
	}
}
