// Package fcdict implements a front-coded dictionary over sequences of
// integer term ids, sorted lexicographically. It is the core data
// structure behind a query-completion engine: given a vocabulary that
// has already mapped raw string tokens to integer term ids, the
// dictionary stores the sorted completions compactly and answers exact
// lookups, prefix-range lookups, and id-to-completion extraction without
// per-call allocation beyond a small decode scratch buffer.
package fcdict

import "math"

// MaxTerms bounds how many terms a single completion may hold. It must
// fit a single byte, since both lcp and suffix length are stored as one
// byte each in the delta records.
const MaxTerms = 255

// Term is a 32-bit vocabulary identifier assigned upstream of this
// package (see pkg/vocabulary). Term sequences are sorted using
// unsigned order.
type Term = uint32

// InvalidTermID is the reserved maximum term id, used as a boundary
// sentinel by LocatePrefixRange's a==b trick. It must compare greater
// than every legitimate term id, which is guaranteed by using the
// maximum representable uint32.
const InvalidTermID Term = math.MaxUint32

// InvalidID is returned by Locate when the query is not present.
const InvalidID uint64 = math.MaxUint64

// Completion is an ordered, non-empty sequence of term ids, already
// stripped of any caller-side terminator convention.
type Completion []Term
