// Package livesync maintains an ordered in-memory copy of one logical
// collection: an initial snapshot plus a stream of insert/update/delete
// events, with optimistic local writes merged in. The chat websocket
// session keeps its conversation in a View; the same type serves any
// collection with an int64 key and a timestamp ordering field.
package livesync

import (
	"sort"
	"sync"
	"time"
)

// View is a consistent, time-ordered list for one collection.
//
// Rows are identified by keyOf and ordered ascending by timeOf. memberOf is
// the collection's membership predicate; events for rows outside it are
// ignored so a shared feed never leaks unrelated rows into the view.
//
// Provisional rows (local optimistic writes) get negative keys from an
// internal counter. Store-assigned keys are always positive, so
// de-duplication by key can never confuse a provisional row with a
// persisted one.
type View[T any] struct {
	mu       sync.Mutex
	keyOf    func(T) int64
	timeOf   func(T) time.Time
	memberOf func(T) bool

	rows     []T
	nextTemp int64
	closed   bool
}

func NewView[T any](keyOf func(T) int64, timeOf func(T) time.Time, memberOf func(T) bool) *View[T] {
	if memberOf == nil {
		memberOf = func(T) bool { return true }
	}
	return &View[T]{
		keyOf:    keyOf,
		timeOf:   timeOf,
		memberOf: memberOf,
		nextTemp: -1,
	}
}

// SetSnapshot replaces the view's contents with the initial fetch, sorted
// ascending. Rows failing the membership predicate are dropped.
func (v *View[T]) SetSnapshot(rows []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	kept := make([]T, 0, len(rows))
	for _, r := range rows {
		if v.memberOf(r) {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return v.timeOf(kept[i]).Before(v.timeOf(kept[j]))
	})
	v.rows = kept
}

// ApplyInsert merges a feed INSERT. Duplicate keys are ignored, so an event
// echoing a row already present (or already applied once) is a no-op.
// Reports whether the row was added.
func (v *View[T]) ApplyInsert(row T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || !v.memberOf(row) {
		return false
	}
	if v.indexOf(v.keyOf(row)) >= 0 {
		return false
	}
	v.insertSorted(row)
	return true
}

// ApplyUpdate replaces the row with the same key in place. A missing key is
// treated as a missed insert and merged like one.
func (v *View[T]) ApplyUpdate(row T) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || !v.memberOf(row) {
		return false
	}
	if i := v.indexOf(v.keyOf(row)); i >= 0 {
		v.rows[i] = row
		return true
	}
	v.insertSorted(row)
	return true
}

// ApplyDelete removes the row with the given key, if present.
func (v *View[T]) ApplyDelete(key int64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return false
	}
	i := v.indexOf(key)
	if i < 0 {
		return false
	}
	v.rows = append(v.rows[:i], v.rows[i+1:]...)
	return true
}

// AppendProvisional adds a locally-constructed row before the store has
// confirmed it. build receives the allocated temporary key (always
// negative) and returns the row to show. Returns the temporary key, or 0
// if the view is closed.
func (v *View[T]) AppendProvisional(build func(tempKey int64) T) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return 0
	}
	temp := v.nextTemp
	v.nextTemp--
	v.insertSorted(build(temp))
	return temp
}

// ResolveProvisional swaps the provisional row for the authoritative one
// after the store confirms the write. If the feed already delivered the
// authoritative row, the provisional copy is simply dropped.
func (v *View[T]) ResolveProvisional(tempKey int64, row T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if i := v.indexOf(tempKey); i >= 0 {
		v.rows = append(v.rows[:i], v.rows[i+1:]...)
	}
	if v.indexOf(v.keyOf(row)) >= 0 {
		return
	}
	if v.memberOf(row) {
		v.insertSorted(row)
	}
}

// DropProvisional removes a provisional row after its write failed.
func (v *View[T]) DropProvisional(tempKey int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	if i := v.indexOf(tempKey); i >= 0 {
		v.rows = append(v.rows[:i], v.rows[i+1:]...)
	}
}

// Items returns a copy of the current ordered list.
func (v *View[T]) Items() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

func (v *View[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.rows)
}

// Close marks the view dead. Every mutator becomes a no-op, so a late
// fetch or feed event arriving after screen teardown cannot touch state
// nobody is watching.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
}

func (v *View[T]) indexOf(key int64) int {
	for i := range v.rows {
		if v.keyOf(v.rows[i]) == key {
			return i
		}
	}
	return -1
}

// insertSorted appends when the row belongs at the tail (the common,
// append-mostly case) and falls back to a sorted insert for out-of-order
// timestamps.
func (v *View[T]) insertSorted(row T) {
	t := v.timeOf(row)
	if n := len(v.rows); n == 0 || !t.Before(v.timeOf(v.rows[n-1])) {
		v.rows = append(v.rows, row)
		return
	}
	i := sort.Search(len(v.rows), func(i int) bool {
		return v.timeOf(v.rows[i]).After(t)
	})
	v.rows = append(v.rows, row)
	copy(v.rows[i+1:], v.rows[i:])
	v.rows[i] = row
}
