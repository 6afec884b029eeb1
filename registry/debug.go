package registry

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/arbor-gfx/rendergraph/resource"
)

// debugMode gates resource-leak tracking: materialising then disposing a
// persistent resource should leave the registry in its initial state, with
// no leaked native handles, and this is how that property is made
// observable. Zero overhead when disabled.
var debugMode atomic.Bool

var tracked struct {
	mu    sync.Mutex
	items map[resource.Handle]resource.Kind
}

func init() {
	tracked.items = make(map[resource.Handle]resource.Kind)
}

// SetDebugMode enables or disables persistent-resource leak tracking.
func SetDebugMode(enabled bool) { debugMode.Store(enabled) }

// DebugMode reports whether leak tracking is enabled.
func DebugMode() bool { return debugMode.Load() }

// trackHandle records a persistent resource's materialisation.
func trackHandle(h resource.Handle) {
	if !debugMode.Load() {
		return
	}
	tracked.mu.Lock()
	tracked.items[h] = h.Kind()
	tracked.mu.Unlock()
}

// untrackHandle records a persistent resource's disposal.
func untrackHandle(h resource.Handle) {
	if !debugMode.Load() {
		return
	}
	tracked.mu.Lock()
	delete(tracked.items, h)
	tracked.mu.Unlock()
}

// LeakReport summarizes unreleased persistent resources.
type LeakReport struct {
	Count int
	Kinds map[string]int
}

func (r *LeakReport) String() string {
	if r.Count == 0 {
		return "no resource leaks detected"
	}
	s := fmt.Sprintf("%d unreleased resource(s):", r.Count)
	names := make([]string, 0, len(r.Kinds))
	for name := range r.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s += fmt.Sprintf(" %s=%d", name, r.Kinds[name])
	}
	return s
}

// ReportLeaks returns a snapshot of unreleased persistent resources, or nil
// if none are outstanding. Only meaningful when DebugMode is enabled.
func ReportLeaks() *LeakReport {
	if !debugMode.Load() {
		return nil
	}
	tracked.mu.Lock()
	defer tracked.mu.Unlock()

	if len(tracked.items) == 0 {
		return nil
	}
	kinds := make(map[string]int)
	for _, k := range tracked.items {
		kinds[k.String()]++
	}
	return &LeakReport{Count: len(tracked.items), Kinds: kinds}
}

// ResetLeakTracker clears all tracked handles; intended for test cleanup.
func ResetLeakTracker() {
	tracked.mu.Lock()
	tracked.items = make(map[resource.Handle]resource.Kind)
	tracked.mu.Unlock()
}
