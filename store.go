package shoebox

import (
	"fmt"
	"sort"
	"sync"

	"github.com/roach88/shoebox/record"
)

// seqStart is where the identifier sequence begins. The first id ever
// issued is seqStart+1.
const seqStart = 100

// Store owns the memory mapping and the identifier sequence. Construct
// one with New and pass it to whoever needs it; there is no
// package-level instance.
//
// A single mutex keeps the memory and the sequence mutually consistent,
// so every operation is atomic on its own. Nothing spans operations.
type Store struct {
	mu     sync.Mutex
	memory map[string][]map[string]any
	lastID int64
}

// New creates an empty store with the sequence at its starting position.
func New() *Store {
	return &Store{
		memory: make(map[string][]map[string]any),
		lastID: seqStart,
	}
}

// nextID advances the shared sequence and returns the fresh identifier.
// Callers must hold mu.
func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

// LastID reports the highest identifier issued so far, or the sequence
// start when none have been. The sequence only grows; Reset does not
// rewind it.
func (s *Store) LastID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastID
}

// Reset discards every collection when confirm is true and reports
// whether the wipe happened. Any other argument leaves the store
// untouched. The identifier sequence survives either way, so later
// inserts continue above everything ever issued.
func (s *Store) Reset(confirm bool) bool {
	if !confirm {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memory = make(map[string][]map[string]any)
	return true
}

// Types returns the names of all collections currently present, sorted.
// A collection emptied by removals is still present; only Reset or a
// seed makes names disappear.
func (s *Store) Types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.memory))
	for name := range s.memory {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many records the named collection holds, zero when it
// is absent.
func (s *Store) Len(typ string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.memory[typ])
}

// Dump returns a deep copy of the entire memory, keyed by collection
// name with records in insertion order. Empty collections appear as
// empty lists.
func (s *Store) Dump() map[string][]map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]map[string]any, len(s.memory))
	for name, coll := range s.memory {
		recs := make([]map[string]any, len(coll))
		for i, rec := range coll {
			recs[i] = mustClone(rec)
		}
		out[name] = recs
	}
	return out
}

// mustClone copies a record that already lives in the store. Stored
// records passed through record.Clone on the way in, so a second clone
// cannot fail.
func mustClone(rec map[string]any) map[string]any {
	out, err := record.CloneMap(rec)
	if err != nil {
		panic(fmt.Sprintf("stored record failed to clone: %v", err))
	}
	return out
}
