package rendergraph

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

// EntryPoint is the reflection data extracted from a compiled shader
// library's entry points, used to validate a pipeline descriptor against
// the entry point it references, backed by naga's IR rather than
// hand-rolled WGSL parsing.
type EntryPoint struct {
	Name      string
	Stage     ir.Stage
	Workgroup [3]uint32
}

// ShaderLibrary owns the WGSL source loaded from a single path and the naga
// IR reflection data derived from it. It reloads from disk whenever the
// file's modification time advances, keeping the previously loaded module
// active if a reload fails.
type ShaderLibrary struct {
	path string

	mu          sync.RWMutex
	module      *ir.Module
	source      string
	entryPoints map[string]EntryPoint
	modTime     time.Time
}

// OpenShaderLibrary parses and lowers the WGSL source at path, returning a
// library ready for Function/Reflect lookups.
func OpenShaderLibrary(path string) (*ShaderLibrary, error) {
	l := &ShaderLibrary{path: path}
	if err := l.load(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *ShaderLibrary) load() error {
	info, err := os.Stat(l.path)
	if err != nil {
		return &ShaderReloadFailureError{Path: l.path, Cause: err}
	}
	src, err := os.ReadFile(l.path)
	if err != nil {
		return &ShaderReloadFailureError{Path: l.path, Cause: err}
	}
	ast, err := naga.Parse(string(src))
	if err != nil {
		return &ShaderReloadFailureError{Path: l.path, Cause: fmt.Errorf("parse WGSL: %w", err)}
	}
	module, err := naga.LowerWithSource(ast, string(src))
	if err != nil {
		return &ShaderReloadFailureError{Path: l.path, Cause: fmt.Errorf("lower WGSL to IR: %w", err)}
	}

	entryPoints := make(map[string]EntryPoint, len(module.EntryPoints))
	for _, ep := range module.EntryPoints {
		entryPoints[ep.Name] = EntryPoint{Name: ep.Name, Stage: ep.Stage, Workgroup: ep.Workgroup}
	}

	l.mu.Lock()
	l.module = module
	l.source = string(src)
	l.entryPoints = entryPoints
	l.modTime = info.ModTime()
	l.mu.Unlock()
	return nil
}

// MaybeReload reloads the library if the backing file's modification time
// has advanced since the last successful load. It reports whether a reload
// was attempted and its error, if any; a failed reload leaves the
// previously loaded module in place.
func (l *ShaderLibrary) MaybeReload() (reloaded bool, err error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return false, &ShaderReloadFailureError{Path: l.path, Cause: err}
	}
	l.mu.RLock()
	stale := info.ModTime().After(l.modTime)
	l.mu.RUnlock()
	if !stale {
		return false, nil
	}
	if err := l.load(); err != nil {
		return true, err
	}
	return true, nil
}

// Module returns the current naga IR module, for compilation by a hal
// backend's CreateShaderModule.
func (l *ShaderLibrary) Module() *ir.Module {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.module
}

// Source returns the WGSL source text currently loaded.
func (l *ShaderLibrary) Source() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.source
}

// Function looks up an entry point by name, used to validate a pipeline
// descriptor against the entry point it references.
func (l *ShaderLibrary) Function(name string) (EntryPoint, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ep, ok := l.entryPoints[name]
	return ep, ok
}

// Reflect returns every entry point's reflection data, keyed by name.
func (l *ShaderLibrary) Reflect() map[string]EntryPoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]EntryPoint, len(l.entryPoints))
	for k, v := range l.entryPoints {
		out[k] = v
	}
	return out
}
