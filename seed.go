package shoebox

import "github.com/roach88/shoebox/record"

// Seed wipes memory and loads the default data set: two tweets by two
// users, wired together through four freshly issued identifiers. On a
// new store that yields tweets 101 and 102 referencing users 103 and
// 104; after earlier activity the ids land higher but the references
// stay consistent, because the sequence never rewinds.
//
// Fails with CodeSeedConflict when a "tweets" collection is already
// present, even one emptied by removals, leaving memory untouched. A
// successful seed clears every other collection too.
func (s *Store) Seed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.memory["tweets"]; ok {
		return newSeedConflictError()
	}

	tweet1 := s.nextID()
	tweet2 := s.nextID()
	user1 := s.nextID()
	user2 := s.nextID()

	s.memory = map[string][]map[string]any{
		"tweets": {
			{record.IDKey: tweet1, "user_id": user1, "message": "hello world"},
			{record.IDKey: tweet2, "user_id": user2, "message": "nothing up my sleeve"},
		},
		"users": {
			{record.IDKey: user1, "name": "Ada", "handle": "@ada"},
			{record.IDKey: user2, "name": "Grace", "handle": "@grace"},
		},
	}
	return nil
}
