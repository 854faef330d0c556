// Package journal provides an undo log for in-memory state that must roll
// back together with a failed marketplace operation.
package journal

import "sync"

// Journal records undo closures. Checkpoint marks a position; RevertTo runs
// the closures recorded after it in reverse order.
type Journal struct {
	mu      sync.Mutex
	entries []func()
}

// Record appends undo. Callers record the inverse of a change right after
// making it.
func (j *Journal) Record(undo func()) {
	j.mu.Lock()
	j.entries = append(j.entries, undo)
	j.mu.Unlock()
}

// Checkpoint returns the current position.
func (j *Journal) Checkpoint() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// RevertTo undoes every change recorded after checkpoint.
func (j *Journal) RevertTo(checkpoint int) {
	j.mu.Lock()
	if checkpoint < 0 {
		checkpoint = 0
	}
	if checkpoint >= len(j.entries) {
		j.mu.Unlock()
		return
	}
	undo := j.entries[checkpoint:]
	j.entries = j.entries[:checkpoint]
	j.mu.Unlock()

	for i := len(undo) - 1; i >= 0; i-- {
		undo[i]()
	}
}

// Len returns the number of recorded changes.
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// Commit forgets the changes recorded after checkpoint. They can no longer
// be reverted.
func (j *Journal) Commit(checkpoint int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if checkpoint < 0 {
		checkpoint = 0
	}
	if checkpoint >= len(j.entries) {
		return
	}
	clear(j.entries[checkpoint:])
	j.entries = j.entries[:checkpoint]
	if checkpoint == 0 {
		j.entries = nil
	}
}
