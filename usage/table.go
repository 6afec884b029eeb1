package usage

// Table holds one Tracker per dense tracker Index, growing on demand,
// generalized from a single resource kind to every kind sharing the dense
// Index space.
type Table struct {
	trackers []*Tracker
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Get returns the Tracker for index, creating it on first access.
func (t *Table) Get(index Index) *Tracker {
	t.ensureSize(int(index) + 1)
	if t.trackers[index] == nil {
		t.trackers[index] = NewTracker()
	}
	return t.trackers[index]
}

// Record appends r to the tracker for index.
func (t *Table) Record(index Index, r Record) {
	t.Get(index).Append(r)
}

// Reset clears every tracked resource's usage list, keeping slot capacity
// for the next frame.
func (t *Table) Reset() {
	for _, tr := range t.trackers {
		if tr != nil {
			tr.Reset()
		}
	}
}

func (t *Table) ensureSize(size int) {
	for len(t.trackers) < size {
		t.trackers = append(t.trackers, nil)
	}
}
