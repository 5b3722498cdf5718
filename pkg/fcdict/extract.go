package fcdict

import "fmt"

// Extract reconstructs the completion stored at id into out, which must
// be sized at least MaxTerms, and returns its term count. It performs
// no allocation.
func (d *Dictionary) Extract(id uint64, out []Term) (int, error) {
	if id >= d.size {
		return 0, fmt.Errorf("fcdict: id %d out of range [0, %d)", id, d.size)
	}
	stride := uint64(d.bucketSize + 1)
	b := int(id / stride)
	k := int(id % stride)

	n := copy(out, d.Header(b))
	if k == 0 {
		return n, nil
	}

	cursor := d.bucketByteStart(b)
	strLen := n
	for i := 0; i < k; i++ {
		lcp, sufLen, consumed := d.decodeAt(cursor, out)
		strLen = lcp + sufLen
		cursor += consumed
	}
	return strLen, nil
}
