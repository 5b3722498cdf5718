package fcdict

// Compare returns -1, 0 or +1 comparing a and b lexicographically by
// unsigned term id, then by length (a shorter sequence that matches the
// other's prefix sorts before it).
func Compare(a, b []Term) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// ComparePrefix compares a against b, but only considers the first n
// terms of b as the probe window. If a matches that window entirely
// (even if a has more terms beyond it), the two compare equal: this is
// what lets a bucket header longer than a query prefix still count as
// "starting with" that prefix.
//
// When b itself is shorter than n, there is no window to cap against,
// so this degrades to an ordinary full comparison between a and b,
// with the usual shorter-sorts-first tie-break.
func ComparePrefix(a, b []Term, n int) int {
	m := n
	cappedByWindow := true
	if len(b) < n {
		m = len(b)
		cappedByWindow = false
	}
	limit := m
	if len(a) < limit {
		limit = len(a)
	}
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < m:
		return -1
	case len(a) == m:
		return 0
	case cappedByWindow:
		return 0
	default:
		return 1
	}
}
