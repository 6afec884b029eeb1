package alloc

import (
	"sync"

	"github.com/arbor-gfx/rendergraph/resource"
)

// ageBuckets is the number of frames a deposited resource survives in a Pool
// before being dropped: a frame-rotated pool partitioned into age buckets,
// adapted here from raw device memory blocks to whole descriptor-keyed
// resources.
const ageBuckets = 3

// PoolStats snapshots a Pool's occupancy.
type PoolStats struct {
	CachedCount int
	Hits        uint64
	Misses      uint64
}

// Pool is a per-descriptor-kind LRU cache of recently deposited resources,
// keyed by an opaque descriptor signature the caller computes (so the same
// Pool type serves buffers, textures, or any other collectible kind).
type Pool struct {
	mu      sync.Mutex
	buckets [ageBuckets]map[string][]resource.Backing
	stats   PoolStats
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.buckets {
		p.buckets[i] = make(map[string][]resource.Backing)
	}
	return p
}

// Collect returns the oldest cached Backing matching key, if any, removing
// it from the pool. A cache miss is not an error: the caller must
// materialise a new resource.
func (p *Pool) Collect(key string) (resource.Backing, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := ageBuckets - 1; i >= 0; i-- {
		list := p.buckets[i][key]
		if len(list) == 0 {
			continue
		}
		b := list[len(list)-1]
		p.buckets[i][key] = list[:len(list)-1]
		p.stats.Hits++
		return b, true
	}
	p.stats.Misses++
	return resource.Backing{}, false
}

// Deposit returns a Backing to the pool's current (youngest) bucket.
func (p *Pool) Deposit(key string, b resource.Backing) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buckets[0][key] = append(p.buckets[0][key], b)
}

// Cycle advances the age buckets by one frame, dropping whatever is left in
// the oldest bucket. It returns the dropped backings so the caller can
// destroy their native objects.
func (p *Pool) Cycle() []resource.Backing {
	p.mu.Lock()
	defer p.mu.Unlock()

	var dropped []resource.Backing
	for _, list := range p.buckets[ageBuckets-1] {
		dropped = append(dropped, list...)
	}
	for i := ageBuckets - 1; i > 0; i-- {
		p.buckets[i] = p.buckets[i-1]
	}
	p.buckets[0] = make(map[string][]resource.Backing)
	return dropped
}

// Stats returns a snapshot of the pool's cache effectiveness.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	stats := p.stats
	for _, bucket := range p.buckets {
		for _, list := range bucket {
			stats.CachedCount += len(list)
		}
	}
	return stats
}
