package shoebox

import "github.com/roach88/shoebox/record"

// Insert deep-copies element into the named collection and assigns it
// the next identifier from the shared sequence. The collection is
// created on first use. The returned record is itself a copy, detached
// from stored state.
//
// Fails with CodeInvalidElement when element is nil or not plain data,
// CodeIDAlreadySet when element carries an "id" key (whatever its
// value), and CodeInvalidType when typ is empty.
func (s *Store) Insert(typ string, element map[string]any) (map[string]any, error) {
	if element == nil {
		return nil, newInvalidElementError(typ, nil)
	}
	if _, ok := element[record.IDKey]; ok {
		return nil, newIDAlreadySetError(typ)
	}
	if typ == "" {
		return nil, newInvalidTypeError()
	}

	stored, err := record.CloneMap(element)
	if err != nil {
		return nil, newInvalidElementError(typ, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored[record.IDKey] = s.nextID()
	s.memory[typ] = append(s.memory[typ], stored)
	return mustClone(stored), nil
}

// Replace swaps the record addressed by (typ, id) for a deep copy of
// element, keeping its position in the collection. The stored copy's id
// is forced to the addressed id. Returns the record as it was
// immediately before the swap.
//
// Fails with CodeInvalidElement when element is nil or not plain data,
// CodeNotFound when nothing matches the address, and CodeIDMismatch
// when element's id is absent or not numerically equal to the addressed
// id. The stored record is untouched on every failure.
func (s *Store) Replace(typ string, id int64, element map[string]any) (map[string]any, error) {
	if element == nil {
		return nil, newInvalidElementError(typ, nil)
	}

	incoming, err := record.CloneMap(element)
	if err != nil {
		return nil, newInvalidElementError(typ, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(typ, id)
	if !ok {
		return nil, newNotFoundError(typ, id)
	}
	got, ok := record.ReadID(incoming)
	if !ok || got != id {
		return nil, newIDMismatchError(typ, id)
	}

	incoming[record.IDKey] = id
	prior := s.memory[typ][i]
	s.memory[typ][i] = incoming
	// The store just gave up its only reference to prior, so it crosses
	// the boundary without another copy.
	return prior, nil
}

// Remove deletes the record addressed by (typ, id), closing the gap so
// later records shift down one position. Returns the removed record.
// The collection stays present even when this empties it.
//
// Fails with CodeNotFound when nothing matches the address.
func (s *Store) Remove(typ string, id int64) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(typ, id)
	if !ok {
		return nil, newNotFoundError(typ, id)
	}

	coll := s.memory[typ]
	removed := coll[i]
	s.memory[typ] = append(coll[:i], coll[i+1:]...)
	return removed, nil
}
