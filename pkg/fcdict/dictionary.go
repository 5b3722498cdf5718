package fcdict

// Dictionary is the sealed, immutable front-coded dictionary. Every
// field is read-only after Build returns one; any number of goroutines
// may call Locate, LocatePrefix, LocatePrefixRange and Extract on the
// same *Dictionary concurrently without synchronisation, as long as
// each caller uses its own output/scratch buffers.
type Dictionary struct {
	size       uint64
	bucketSize int // B
	headers    []Term
	buckets    []byte
	headerPtrs PointerTable // |H| = K+1, indexes into headers
	bucketPtrs PointerTable // |P| = K+1, indexes into buckets
}

// Size returns N, the number of stored completions.
func (d *Dictionary) Size() uint64 { return d.size }

// Buckets returns K, the number of buckets.
func (d *Dictionary) Buckets() int { return d.headerPtrs.Len() - 1 }

// BucketSize returns the total number of completions in bucket b
// (header included). All buckets but the last hold exactly B+1;
// the last holds whatever remains of N.
func (d *Dictionary) BucketSize(b int) int {
	k := d.Buckets()
	if b != k-1 {
		return d.bucketSize + 1
	}
	return int(d.size) - (k-1)*(d.bucketSize+1)
}

// deltaCount is the number of non-header delta records in bucket b.
func (d *Dictionary) deltaCount(b int) int {
	return d.BucketSize(b) - 1
}

// Header returns a view into bucket b's header completion.
func (d *Dictionary) Header(b int) []Term {
	begin := d.headerPtrs.At(b)
	end := d.headerPtrs.At(b + 1)
	return d.headers[begin:end]
}

// bucketByteStart returns the offset of bucket b's first delta record
// in the flat bucket byte array.
func (d *Dictionary) bucketByteStart(b int) int {
	return int(d.bucketPtrs.At(b))
}

// Bytes returns the dictionary's approximate in-memory footprint.
func (d *Dictionary) Bytes() int {
	return 8 + d.headerPtrs.Bytes() + d.bucketPtrs.Bytes() +
		len(d.headers)*4 + len(d.buckets)
}

// decodeAt decodes one delta record starting at byte offset cursor,
// writing its suffix terms into out[lcp:lcp+sufLen]. out must already
// hold the previous completion in [0:lcp). It returns the lcp length,
// suffix length, and the number of bytes consumed.
func (d *Dictionary) decodeAt(cursor int, out []Term) (lcp, sufLen, consumed int) {
	lcp = int(d.buckets[cursor])
	sufLen = int(d.buckets[cursor+1])
	base := cursor + 2
	for i := 0; i < sufLen; i++ {
		off := base + i*4
		out[lcp+i] = Term(d.buckets[off]) | Term(d.buckets[off+1])<<8 |
			Term(d.buckets[off+2])<<16 | Term(d.buckets[off+3])<<24
	}
	return lcp, sufLen, 2 + sufLen*4
}
