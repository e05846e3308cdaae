package shoebox

import "github.com/roach88/shoebox/record"

// Select resolves a lookup with an untyped identifier, the lenient form
// used at external boundaries: numbers and base-10 numeric strings
// filter by id, anything else means the whole collection. The result is
// a single record or a record list accordingly.
//
// Select never errors. Absence reads as found=false, not as a failure.
func (s *Store) Select(typ string, id any) (any, bool) {
	if n, ok := record.CoerceID(id); ok {
		rec, found := s.SelectByID(typ, n)
		if !found {
			return nil, false
		}
		return rec, true
	}
	recs, found := s.SelectAll(typ)
	if !found {
		return nil, false
	}
	return recs, true
}

// SelectByID returns a deep copy of the record with the given id, or
// found=false when the collection is absent or nothing matches.
func (s *Store) SelectByID(typ string, id int64) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.indexOf(typ, id)
	if !ok {
		return nil, false
	}
	return mustClone(s.memory[typ][i]), true
}

// SelectAll returns deep copies of the collection's records in
// insertion order. An absent collection and one emptied by removals
// both read as found=false.
func (s *Store) SelectAll(typ string) ([]map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.memory[typ]
	if len(coll) == 0 {
		return nil, false
	}
	out := make([]map[string]any, len(coll))
	for i, rec := range coll {
		out[i] = mustClone(rec)
	}
	return out, true
}

// indexOf finds the position of the record with the given id, scanning
// in insertion order. Callers must hold mu.
func (s *Store) indexOf(typ string, id int64) (int, bool) {
	for i, rec := range s.memory[typ] {
		if got, ok := record.ReadID(rec); ok && got == id {
			return i, true
		}
	}
	return 0, false
}
