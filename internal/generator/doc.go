// Package generator derives a deduplicated, length-ordered list of candidate
// passwords from a handful of personal facts.
//
// A generation call runs these stages in a fixed order, all feeding one
// growing candidate set:
//
//  1. seeds from names, the birthdate and keywords
//  2. cross-combinations (name×date, name×keyword)
//  3. optional mutation passes: numeric suffixes and years, special-character
//     bracketing, capitalization, leet substitutions
//  4. finalization: stable sort by length, ties kept in first-seen order
//
// Every mutation pass iterates a snapshot of the set taken when the pass
// starts, so a pass never consumes what it produced itself. Passes still
// compound across each other.
//
// The numeric pass appends every year from 1970 through Clock.Year(), so
// output is deterministic only for a fixed clock. Pin it with WithClock.
//
// The set can grow very quickly with many keywords and all passes enabled.
// WithMaxCandidates bounds it; Generate then fails with ErrLimitExceeded
// instead of exhausting memory.
package generator
