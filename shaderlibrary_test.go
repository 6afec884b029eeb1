package rendergraph

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/naga/ir"
)

const testWGSLCompute = `
@compute @workgroup_size(8, 8, 1)
fn cs_main(@builtin(global_invocation_id) id: vec3<u32>) {
}
`

func writeShaderFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "shader.wgsl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write shader file: %v", err)
	}
	return path
}

func TestOpenShaderLibrary_ReflectsEntryPoints(t *testing.T) {
	path := writeShaderFile(t, testWGSLCompute)
	lib, err := OpenShaderLibrary(path)
	if err != nil {
		t.Fatalf("OpenShaderLibrary: %v", err)
	}
	ep, ok := lib.Function("cs_main")
	if !ok {
		t.Fatalf("expected entry point cs_main to be reflected")
	}
	if ep.Stage != ir.StageCompute {
		t.Errorf("Stage = %v, want StageCompute", ep.Stage)
	}
	if ep.Workgroup != [3]uint32{8, 8, 1} {
		t.Errorf("Workgroup = %v, want [8 8 1]", ep.Workgroup)
	}
}

func TestOpenShaderLibrary_InvalidSourceReturnsReloadError(t *testing.T) {
	path := writeShaderFile(t, "not valid wgsl {{{")
	_, err := OpenShaderLibrary(path)
	if !IsShaderReloadFailureError(err) {
		t.Fatalf("expected *ShaderReloadFailureError, got %v (%T)", err, err)
	}
}

func TestShaderLibrary_MaybeReloadSkipsWhenUnchanged(t *testing.T) {
	path := writeShaderFile(t, testWGSLCompute)
	lib, err := OpenShaderLibrary(path)
	if err != nil {
		t.Fatalf("OpenShaderLibrary: %v", err)
	}
	reloaded, err := lib.MaybeReload()
	if err != nil {
		t.Fatalf("MaybeReload: %v", err)
	}
	if reloaded {
		t.Errorf("expected no reload when mtime is unchanged")
	}
}

func TestShaderLibrary_MaybeReloadPicksUpChange(t *testing.T) {
	path := writeShaderFile(t, testWGSLCompute)
	lib, err := OpenShaderLibrary(path)
	if err != nil {
		t.Fatalf("OpenShaderLibrary: %v", err)
	}

	updated := `
@compute @workgroup_size(4, 4, 4)
fn cs_main(@builtin(global_invocation_id) id: vec3<u32>) {
}
`
	future := time.Now().Add(time.Second)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite shader file: %v", err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	reloaded, err := lib.MaybeReload()
	if err != nil {
		t.Fatalf("MaybeReload: %v", err)
	}
	if !reloaded {
		t.Fatalf("expected reload after mtime advanced")
	}
	ep, ok := lib.Function("cs_main")
	if !ok {
		t.Fatalf("expected entry point cs_main after reload")
	}
	if ep.Workgroup != [3]uint32{4, 4, 4} {
		t.Errorf("Workgroup after reload = %v, want [4 4 4]", ep.Workgroup)
	}
}

func TestShaderLibrary_FailedReloadKeepsPreviousModule(t *testing.T) {
	path := writeShaderFile(t, testWGSLCompute)
	lib, err := OpenShaderLibrary(path)
	if err != nil {
		t.Fatalf("OpenShaderLibrary: %v", err)
	}

	future := time.Now().Add(time.Second)
	if err := os.WriteFile(path, []byte("broken {{{"), 0o644); err != nil {
		t.Fatalf("rewrite shader file: %v", err)
	}
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	reloaded, err := lib.MaybeReload()
	if !reloaded {
		t.Fatalf("expected a reload attempt")
	}
	if !IsShaderReloadFailureError(err) {
		t.Fatalf("expected *ShaderReloadFailureError, got %v (%T)", err, err)
	}
	if _, ok := lib.Function("cs_main"); !ok {
		t.Errorf("expected previous entry point to remain after failed reload")
	}
}
