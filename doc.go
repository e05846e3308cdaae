// Package shoebox is a tiny in-memory object store: one mapping from
// collection name ("type") to an ordered list of records, with
// identifiers issued by a single shared sequence.
//
// # Data Model
//
//   - A record is a map[string]any of plain data (see the record package).
//   - "id" is the one reserved field: a positive int64 the store assigns
//     on insert and callers never choose.
//   - Collections appear on first insert and keep insertion order;
//     replace preserves position, remove closes the gap.
//
// # Identifier Sequence
//
// One counter feeds every collection. It starts at 100, so the first id
// ever issued is 101, and it never rewinds - not even Reset touches it.
// Ids are therefore unique across the whole store for the life of the
// process, as long as ids are never supplied on insert (which Insert
// rejects).
//
// # Copying Discipline
//
// Every record crossing the API is a deep, independent copy in both
// directions: callers cannot reach stored state through results, and
// later mutation of arguments cannot reach it either. record.Clone is
// the single gate; it also normalizes numbers and rejects cycles.
//
// # Locking
//
// A single mutex guards the memory and the sequence together, making
// each operation atomic. There is nothing beyond that: no transactions
// spanning operations, no persistence, no queries beyond id lookup.
package shoebox
