package fcdict

// PointerTable is random access over a monotone non-decreasing sequence
// of 64-bit offsets. Headers and bucket byte spans are both addressed
// through this interface, so the dictionary's pointer storage can be a
// plain slice or a compressed encoding without changing any caller.
type PointerTable interface {
	// Len returns the number of stored offsets.
	Len() int
	// At returns the offset at position i. i must be < Len().
	At(i int) uint64
	// Bytes returns the in-memory footprint of the table.
	Bytes() int
}

// PlainPointerTable is the default, uncompressed PointerTable: a bare
// slice of offsets.
type PlainPointerTable []uint64

// Len implements PointerTable.
func (p PlainPointerTable) Len() int { return len(p) }

// At implements PointerTable.
func (p PlainPointerTable) At(i int) uint64 { return p[i] }

// Bytes implements PointerTable.
func (p PlainPointerTable) Bytes() int { return len(p) * 8 }
