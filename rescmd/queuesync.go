package rescmd

import (
	"sync"

	"github.com/arbor-gfx/rendergraph/framecmd"
	"github.com/arbor-gfx/rendergraph/resource"
)

// queueStamp is the command-buffer index a queue had reached the last time
// it touched a resource.
type queueStamp struct {
	queue uint32
	index uint64
}

// QueueSync tracks, per persistent resource, the last command-buffer index
// each queue signalled after writing or reading it. A Generator consults it
// when a pass touches a resource that a different queue touched more
// recently, and stamps the consuming encoder's QueueCommandWaitIndices with
// the value that queue's completion event must reach first. Share one
// QueueSync across every Context whose queues may read or write the same
// persistent resources; a Context with no shared resources can use its own.
type QueueSync struct {
	mu     sync.Mutex
	writer map[resource.Handle]queueStamp
	reader map[resource.Handle][]queueStamp
}

// NewQueueSync returns an empty cross-queue tracker.
func NewQueueSync() *QueueSync {
	return &QueueSync{
		writer: make(map[resource.Handle]queueStamp),
		reader: make(map[resource.Handle][]queueStamp),
	}
}

// waitsFor returns the stamps a queue other than self must wait for before
// touching h: the last writer (always) and, if forWrite, every reader since
// that write too (write-after-read).
func (s *QueueSync) waitsFor(h resource.Handle, self uint32, forWrite bool) []queueStamp {
	s.mu.Lock()
	defer s.mu.Unlock()

	var waits []queueStamp
	if w, ok := s.writer[h]; ok && w.queue != self {
		waits = append(waits, w)
	}
	if forWrite {
		for _, r := range s.reader[h] {
			if r.queue != self {
				waits = append(waits, r)
			}
		}
	}
	return waits
}

// recordRead appends a read stamp for h on queue self at commandBufferIndex.
func (s *QueueSync) recordRead(h resource.Handle, self uint32, commandBufferIndex uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reader[h] = append(s.reader[h], queueStamp{queue: self, index: commandBufferIndex})
}

// recordWrite stamps h as last written by queue self at commandBufferIndex,
// clearing the reader stamps a subsequent write already waited on.
func (s *QueueSync) recordWrite(h resource.Handle, self uint32, commandBufferIndex uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writer[h] = queueStamp{queue: self, index: commandBufferIndex}
	delete(s.reader, h)
}

// stampWait merges wait's index into enc's QueueCommandWaitIndices, keeping
// the larger value if the queue already has an entry.
func stampWait(enc *framecmd.Encoder, wait queueStamp) {
	if enc.QueueCommandWaitIndices == nil {
		return
	}
	if cur, ok := enc.QueueCommandWaitIndices[wait.queue]; !ok || wait.index > cur {
		enc.QueueCommandWaitIndices[wait.queue] = wait.index
	}
}
