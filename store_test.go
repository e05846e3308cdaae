package shoebox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewStoresAreIndependent(t *testing.T) {
	a := New()
	b := New()

	if _, err := a.Insert("tweets", map[string]any{"message": "first"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	if got := a.Len("tweets"); got != 1 {
		t.Errorf("a.Len(tweets) = %d, want 1", got)
	}
	if got := b.Len("tweets"); got != 0 {
		t.Errorf("b.Len(tweets) = %d, want 0", got)
	}
	if got := b.LastID(); got != 100 {
		t.Errorf("b.LastID() = %d, want 100", got)
	}
}

func TestSequenceIsSharedAcrossCollections(t *testing.T) {
	s := New()

	tweet, err := s.Insert("tweets", map[string]any{"message": "hi"})
	if err != nil {
		t.Fatalf("Insert(tweets) failed: %v", err)
	}
	user, err := s.Insert("users", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("Insert(users) failed: %v", err)
	}

	if got := tweet["id"]; got != int64(101) {
		t.Errorf("first id = %v, want 101", got)
	}
	if got := user["id"]; got != int64(102) {
		t.Errorf("second id = %v, want 102", got)
	}
	if got := s.LastID(); got != 102 {
		t.Errorf("LastID() = %d, want 102", got)
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	s := New()
	if _, err := s.Insert("tweets", map[string]any{"message": "keep"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	if s.Reset(false) {
		t.Error("Reset(false) = true, want false")
	}
	if got := s.Len("tweets"); got != 1 {
		t.Errorf("Len(tweets) after declined reset = %d, want 1", got)
	}
}

func TestResetWipesMemoryButNotSequence(t *testing.T) {
	s := New()
	if _, err := s.Insert("tweets", map[string]any{"message": "gone"}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	if !s.Reset(true) {
		t.Fatal("Reset(true) = false, want true")
	}
	if got := s.Types(); len(got) != 0 {
		t.Errorf("Types() after reset = %v, want none", got)
	}

	rec, err := s.Insert("tweets", map[string]any{"message": "next"})
	if err != nil {
		t.Fatalf("Insert() after reset failed: %v", err)
	}
	if got := rec["id"]; got != int64(102) {
		t.Errorf("id after reset = %v, want 102", got)
	}
}

func TestTypesAreSorted(t *testing.T) {
	s := New()
	for _, typ := range []string{"users", "tweets", "drafts"} {
		if _, err := s.Insert(typ, map[string]any{"n": 1}); err != nil {
			t.Fatalf("Insert(%s) failed: %v", typ, err)
		}
	}

	want := []string{"drafts", "tweets", "users"}
	if diff := cmp.Diff(want, s.Types()); diff != "" {
		t.Errorf("Types() mismatch (-want +got):\n%s", diff)
	}
}

func TestTypesKeepEmptiedCollections(t *testing.T) {
	s := New()
	rec, err := s.Insert("tweets", map[string]any{"message": "only"})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if _, err := s.Remove("tweets", rec["id"].(int64)); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	want := []string{"tweets"}
	if diff := cmp.Diff(want, s.Types()); diff != "" {
		t.Errorf("Types() mismatch (-want +got):\n%s", diff)
	}
	if got := s.Len("tweets"); got != 0 {
		t.Errorf("Len(tweets) = %d, want 0", got)
	}
}

func TestDumpIsDeepCopy(t *testing.T) {
	s := New()
	if _, err := s.Insert("tweets", map[string]any{"message": "original", "tags": []any{"a"}}); err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}

	dump := s.Dump()
	dump["tweets"][0]["message"] = "mutated"
	dump["tweets"][0]["tags"].([]any)[0] = "z"

	rec, found := s.SelectByID("tweets", 101)
	if !found {
		t.Fatal("SelectByID(tweets, 101) found = false, want true")
	}
	if got := rec["message"]; got != "original" {
		t.Errorf("stored message = %v, want original", got)
	}
	if got := rec["tags"].([]any)[0]; got != "a" {
		t.Errorf("stored tag = %v, want a", got)
	}
}

func TestDumpIncludesEmptiedCollections(t *testing.T) {
	s := New()
	rec, err := s.Insert("tweets", map[string]any{"message": "fleeting"})
	if err != nil {
		t.Fatalf("Insert() failed: %v", err)
	}
	if _, err := s.Remove("tweets", rec["id"].(int64)); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}

	dump := s.Dump()
	coll, ok := dump["tweets"]
	if !ok {
		t.Fatal("Dump() is missing the emptied tweets collection")
	}
	if len(coll) != 0 {
		t.Errorf("dumped tweets has %d records, want 0", len(coll))
	}
}
