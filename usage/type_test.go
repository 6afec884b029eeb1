package usage

import "testing"

func TestType_IsReadOnly(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want bool
	}{
		{"shader read is read-only", ShaderRead, true},
		{"input attachment is read-only", InputAttachment, true},
		{"vertex buffer is read-only", VertexBuffer, true},
		{"shader write is write", ShaderWrite, false},
		{"color attachment is write", ColorAttachment, false},
		{"cpu write is write", CPUWrite, false},
		{"combined read-only", ShaderRead | VertexBuffer, true},
		{"read + write", ShaderRead | ShaderWrite, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.IsReadOnly(); got != tt.want {
				t.Errorf("Type(%d).IsReadOnly() = %v, want %v", tt.typ, got, tt.want)
			}
		})
	}
}

func TestType_IsCompatible(t *testing.T) {
	if !Type(0).IsCompatible(ShaderWrite) {
		t.Error("empty usage should be compatible with anything")
	}
	if !ShaderRead.IsCompatible(VertexBuffer) {
		t.Error("two read-only usages should be compatible")
	}
	if ShaderWrite.IsCompatible(ColorAttachment) {
		t.Error("two distinct write usages should not be compatible")
	}
	if !ShaderWrite.IsCompatible(ShaderWrite) {
		t.Error("identical write usage should be compatible with itself")
	}
}

func TestType_IsCPUOnly(t *testing.T) {
	if !CPURead.IsCPUOnly() {
		t.Error("CPURead should be CPU-only")
	}
	if !(CPURead | CPUWrite).IsCPUOnly() {
		t.Error("CPURead|CPUWrite should be CPU-only")
	}
	if (CPURead | ShaderRead).IsCPUOnly() {
		t.Error("CPURead|ShaderRead should not be CPU-only")
	}
	if Type(0).IsCPUOnly() {
		t.Error("empty usage should not be CPU-only")
	}
}
