package poster

import (
	"sync"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
)

// Library is the append-only revision history of generated posters. Insertion
// order is creation order; records are never removed or reordered. The
// library itself is unbounded, so a long session accumulates every generated
// image in memory. The active-selection cursor lives with the session, not
// here.
type Library struct {
	mu      sync.RWMutex
	records []domain.PosterRecord
	byID    map[string]int
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{byID: make(map[string]int)}
}

// Append registers a new record at the end of the history.
func (l *Library) Append(record domain.PosterRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byID[record.ID] = len(l.records)
	l.records = append(l.records, record)
}

// Get returns the record with the given id.
func (l *Library) Get(id string) (domain.PosterRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx, ok := l.byID[id]
	if !ok {
		return domain.PosterRecord{}, false
	}
	return l.records[idx], true
}

// Snapshot returns the records in creation order.
func (l *Library) Snapshot() []domain.PosterRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.PosterRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports how many records the library holds.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
