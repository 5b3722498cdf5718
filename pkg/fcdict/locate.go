package fcdict

// noOffset marks "not present in this bucket" for the in-bucket scans;
// it is distinct from InvalidID since callers add it to a bucket base.
const noOffset = ^uint64(0)

// locateBucket performs a three-way binary search over headers: it
// returns the bucket whose header exactly equals t
// (isHeader=true), or the greatest bucket whose header sorts before t
// (isHeader=false). bucketID is -1 if t sorts before every header.
func (d *Dictionary) locateBucket(t []Term) (bucketID int, isHeader bool) {
	lo, hi := 0, d.Buckets()-1
	mi, cmp := 0, 0
	for lo <= hi {
		mi = (lo + hi) / 2
		cmp = Compare(d.Header(mi), t)
		switch {
		case cmp > 0:
			hi = mi - 1
		case cmp < 0:
			lo = mi + 1
		default:
			return mi, true
		}
	}
	if cmp < 0 {
		return mi, false
	}
	return mi - 1, false
}

// Locate returns the 0-based id of the completion exactly equal to t,
// or InvalidID if t is not stored.
func (d *Dictionary) Locate(t []Term) uint64 {
	if d.size == 0 {
		return InvalidID
	}
	bucketID, isHeader := d.locateBucket(t)
	if bucketID < 0 {
		return InvalidID
	}
	base := uint64(bucketID) * uint64(d.bucketSize+1)
	if isHeader {
		return base
	}
	offset := d.locateInBucket(t, bucketID)
	if offset == noOffset {
		return InvalidID
	}
	return base + offset
}

// locateInBucket scans bucket b's deltas for an exact match of t,
// stopping as soon as a reconstructed completion sorts past t.
func (d *Dictionary) locateInBucket(t []Term, b int) uint64 {
	var scratch [MaxTerms]Term
	copy(scratch[:], d.Header(b))
	cursor := d.bucketByteStart(b)
	n := d.deltaCount(b)
	for i := 1; i <= n; i++ {
		lcp, sufLen, consumed := d.decodeAt(cursor, scratch[:])
		l := lcp + sufLen
		switch Compare(t, scratch[:l]) {
		case 0:
			return uint64(i)
		case -1:
			return noOffset
		}
		cursor += consumed
	}
	return noOffset
}
