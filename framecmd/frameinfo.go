package framecmd

// FrameCommandInfo is the encoder-assignment result handed to the
// resource-command generator and the assembler: the encoder list plus the
// global command-buffer index range this frame consumed and the per-queue
// wait indices each encoder must satisfy before it may be submitted.
type FrameCommandInfo struct {
	Encoders        []Encoder
	FrameBaseIndex  int
	NextGlobalIndex int
}

// Build runs Assign over passes and wraps the result in a FrameCommandInfo.
func Build(passes []PassRecord, frameBaseIndex int) FrameCommandInfo {
	encoders, next := Assign(passes, frameBaseIndex)
	return FrameCommandInfo{
		Encoders:        encoders,
		FrameBaseIndex:  frameBaseIndex,
		NextGlobalIndex: next,
	}
}

// CommandBufferCount reports how many distinct global command-buffer
// indices this frame produced.
func (f FrameCommandInfo) CommandBufferCount() int {
	return f.NextGlobalIndex - f.FrameBaseIndex
}
