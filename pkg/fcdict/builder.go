package fcdict

import (
	"github.com/charmbracelet/log"
)

// Source produces completions in strictly increasing lexicographic
// order, each paired with a caller-assigned doc id. It is the seam
// replacing the upstream ".mapped" file of the original dictionary:
// how a sorted stream of (completion, docID) pairs is produced is
// entirely the caller's concern (see pkg/vocabulary for one producer).
type Source interface {
	// Next returns the next completion and its doc id, or ok=false
	// once the source is exhausted.
	Next() (completion []Term, docID uint64, ok bool)
}

// BuildParams configures a dictionary build.
type BuildParams struct {
	// NumCompletions is N, the exact number of records Source must
	// produce.
	NumCompletions uint64
	// BucketSize is B: non-final buckets hold B+1 completions.
	BucketSize int
	// Compact selects EliasFanoPointerTable over PlainPointerTable for
	// the header and bucket pointer arrays.
	Compact bool
	// Logger receives build progress. A nil Logger builds silently.
	Logger *log.Logger
}

// Build consumes src and produces a sealed Dictionary plus the doc id
// sidecar. It fails fast with one of ErrSourceExhausted,
// ErrOrderViolation or ErrLengthExceeded (each wrapped in a *BuildError)
// the moment an invariant breaks; no partial dictionary is observable.
func Build(src Source, params BuildParams) (*Dictionary, []uint64, error) {
	if params.BucketSize < 1 {
		params.BucketSize = 1
	}
	n := params.NumCompletions
	b1 := uint64(params.BucketSize + 1)
	k := (n + b1 - 1) / b1
	if n == 0 {
		k = 0
	}

	if params.Logger != nil {
		params.Logger.Infof("building fcdict: %d completions, bucket size %d, %d buckets", n, params.BucketSize, k)
	}

	headerPtrs := make([]uint64, 1, k+1)
	bucketPtrs := make([]uint64, 1, k+1)
	headers := make([]Term, 0, n)
	buckets := make([]byte, 0, n*4)
	docIDs := make([]uint64, 0, n)

	var consumed uint64
	var prev Completion
	for bucket := uint64(0); bucket < k; bucket++ {
		header, docID, ok := src.Next()
		if !ok {
			return nil, nil, &BuildError{Err: ErrSourceExhausted, Index: consumed}
		}
		if len(header) == 0 || len(header) > MaxTerms {
			return nil, nil, &BuildError{Err: ErrLengthExceeded, Index: consumed, TermCount: len(header)}
		}
		if bucket > 0 && Compare(prev, header) >= 0 {
			return nil, nil, &BuildError{Err: ErrOrderViolation, Index: consumed, Completion: append(Completion(nil), header...)}
		}
		headers = append(headers, header...)
		headerPtrs = append(headerPtrs, uint64(len(headers)))
		docIDs = append(docIDs, docID)
		consumed++

		total := params.BucketSize + 1
		if bucket == k-1 {
			total = int(n) - int(bucket)*(params.BucketSize+1)
		}

		prev = append(prev[:0], header...)
		for i := 0; i < total-1; i++ {
			curr, docID, ok := src.Next()
			if !ok {
				return nil, nil, &BuildError{Err: ErrSourceExhausted, Index: consumed}
			}
			if len(curr) == 0 || len(curr) > MaxTerms {
				return nil, nil, &BuildError{Err: ErrLengthExceeded, Index: consumed, TermCount: len(curr)}
			}
			lcp := commonPrefixLen(prev, curr)
			if Compare(prev, curr) >= 0 {
				return nil, nil, &BuildError{Err: ErrOrderViolation, Index: consumed, Completion: append(Completion(nil), curr...)}
			}
			sufLen := len(curr) - lcp
			buckets = append(buckets, byte(lcp), byte(sufLen))
			for _, t := range curr[lcp:] {
				buckets = append(buckets, byte(t), byte(t>>8), byte(t>>16), byte(t>>24))
			}
			docIDs = append(docIDs, docID)
			consumed++
			prev = append(prev[:0], curr...)
		}
		bucketPtrs = append(bucketPtrs, uint64(len(buckets)))
	}

	var hp, bp PointerTable
	if params.Compact {
		efh, err := NewEliasFanoPointerTable(headerPtrs)
		if err != nil {
			return nil, nil, err
		}
		efb, err := NewEliasFanoPointerTable(bucketPtrs)
		if err != nil {
			return nil, nil, err
		}
		hp, bp = efh, efb
	} else {
		hp, bp = PlainPointerTable(headerPtrs), PlainPointerTable(bucketPtrs)
	}

	if params.Logger != nil {
		params.Logger.Infof("fcdict build done: %d completions, %d header words, %d bucket bytes", n, len(headers), len(buckets))
	}

	d := &Dictionary{
		size:       n,
		bucketSize: params.BucketSize,
		headers:    headers,
		buckets:    buckets,
		headerPtrs: hp,
		bucketPtrs: bp,
	}
	return d, docIDs, nil
}

// commonPrefixLen returns the number of leading terms a and b share.
func commonPrefixLen(a, b []Term) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
