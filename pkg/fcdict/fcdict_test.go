package fcdict

import (
	"testing"
)

// record is a (completion, docID) pair, used to build in-memory test
// sources without needing pkg/vocabulary.
type record struct {
	completion []Term
	docID      uint64
}

// sliceSource is the simplest possible Source: a fixed, pre-sorted
// slice walked in order.
type sliceSource struct {
	records []record
	pos     int
}

func newSliceSource(records []record) *sliceSource {
	return &sliceSource{records: records}
}

func (s *sliceSource) Next() ([]Term, uint64, bool) {
	if s.pos >= len(s.records) {
		return nil, 0, false
	}
	r := s.records[s.pos]
	s.pos++
	return r.completion, r.docID, true
}

// worked corpus: B=2, N=7, bucket sizes 3,3,1.
func workedCorpus() []record {
	return []record{
		{[]Term{10, 20}, 0},
		{[]Term{10, 21}, 1},
		{[]Term{10, 30}, 2},
		{[]Term{11, 5, 7}, 3},
		{[]Term{11, 5, 8}, 4},
		{[]Term{11, 6}, 5},
		{[]Term{12}, 6},
	}
}

func buildWorked(t *testing.T) *Dictionary {
	t.Helper()
	recs := workedCorpus()
	d, docIDs, err := Build(newSliceSource(recs), BuildParams{
		NumCompletions: uint64(len(recs)),
		BucketSize:     2,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, id := range docIDs {
		if id != uint64(i) {
			t.Fatalf("docIDs[%d] = %d, want %d", i, id, i)
		}
	}
	return d
}

func TestWorkedExample(t *testing.T) {
	d := buildWorked(t)

	if got := d.Size(); got != 7 {
		t.Fatalf("Size() = %d, want 7", got)
	}
	if got := d.Buckets(); got != 3 {
		t.Fatalf("Buckets() = %d, want 3", got)
	}
	wantSizes := []int{3, 3, 1}
	for b, want := range wantSizes {
		if got := d.BucketSize(b); got != want {
			t.Errorf("BucketSize(%d) = %d, want %d", b, got, want)
		}
	}

	t.Run("locate", func(t *testing.T) {
		cases := []struct {
			query []Term
			want  uint64
		}{
			{[]Term{10, 21}, 1},
			{[]Term{10, 22}, InvalidID},
			{[]Term{12}, 6},
			{[]Term{9}, InvalidID},
			{[]Term{13}, InvalidID},
		}
		for _, c := range cases {
			if got := d.Locate(c.query); got != c.want {
				t.Errorf("Locate(%v) = %v, want %v", c.query, got, c.want)
			}
		}
	})

	t.Run("locate_prefix", func(t *testing.T) {
		cases := []struct {
			prefix     []Term
			begin, end uint64
		}{
			{[]Term{10}, 0, 2},
			{[]Term{11, 5}, 3, 4},
			{[]Term{12}, 6, 6},
			{[]Term{11}, 3, 5},
		}
		for _, c := range cases {
			begin, end := d.LocatePrefix(c.prefix)
			if begin != c.begin || end != c.end {
				t.Errorf("LocatePrefix(%v) = [%d,%d], want [%d,%d]", c.prefix, begin, end, c.begin, c.end)
			}
		}
	})

	t.Run("locate_prefix_empty", func(t *testing.T) {
		begin, end := d.LocatePrefix(nil)
		if begin != 0 || end != 6 {
			t.Errorf("LocatePrefix(nil) = [%d,%d], want [0,6]", begin, end)
		}
	})

	t.Run("locate_prefix_range", func(t *testing.T) {
		cases := []struct {
			prefix     []Term
			a, b       Term
			begin, end uint64
		}{
			{[]Term{11}, 5, 6, 3, 6},
			{[]Term{11}, 5, 5, 3, 5},
		}
		for _, c := range cases {
			begin, end := d.LocatePrefixRange(c.prefix, c.a, c.b)
			if begin != c.begin || end != c.end {
				t.Errorf("LocatePrefixRange(%v,[%d,%d]) = [%d,%d), want [%d,%d)",
					c.prefix, c.a, c.b, begin, end, c.begin, c.end)
			}
		}
	})

	t.Run("extract", func(t *testing.T) {
		var buf [MaxTerms]Term
		n, err := d.Extract(5, buf[:])
		if err != nil {
			t.Fatalf("Extract(5): %v", err)
		}
		want := []Term{11, 6}
		if n != len(want) {
			t.Fatalf("Extract(5) length = %d, want %d", n, len(want))
		}
		for i, term := range want {
			if buf[i] != term {
				t.Errorf("Extract(5)[%d] = %d, want %d", i, buf[i], term)
			}
		}
	})
}

// TestRoundTrip checks property 1: locate(extract(i)) == i for all i.
func TestRoundTrip(t *testing.T) {
	d := buildWorked(t)
	var buf [MaxTerms]Term
	for i := uint64(0); i < d.Size(); i++ {
		n, err := d.Extract(i, buf[:])
		if err != nil {
			t.Fatalf("Extract(%d): %v", i, err)
		}
		got := d.Locate(buf[:n])
		if got != i {
			t.Errorf("Locate(Extract(%d)) = %d, want %d", i, got, i)
		}
	}
}

// TestOrderPreservation checks property 2.
func TestOrderPreservation(t *testing.T) {
	d := buildWorked(t)
	var a, b [MaxTerms]Term
	for i := uint64(0); i < d.Size()-1; i++ {
		na, _ := d.Extract(i, a[:])
		nb, _ := d.Extract(i+1, b[:])
		if Compare(a[:na], b[:nb]) >= 0 {
			t.Errorf("extract(%d) does not sort before extract(%d)", i, i+1)
		}
	}
}

// TestPrefixCompletenessAndTightness checks properties 3 and 4 against
// every non-empty prefix of every stored completion.
func TestPrefixCompletenessAndTightness(t *testing.T) {
	d := buildWorked(t)
	var buf [MaxTerms]Term
	for i := uint64(0); i < d.Size(); i++ {
		n, _ := d.Extract(i, buf[:])
		completion := append(Completion(nil), buf[:n]...)
		for plen := 1; plen <= len(completion); plen++ {
			prefix := completion[:plen]
			begin, end := d.LocatePrefix(prefix)
			if !(begin <= i && i <= end) {
				t.Fatalf("LocatePrefix(%v) = [%d,%d] does not contain %d", prefix, begin, end, i)
			}
			for j := uint64(0); j < d.Size(); j++ {
				var other [MaxTerms]Term
				on, _ := d.Extract(j, other[:])
				startsWith := ComparePrefix(other[:on], prefix, len(prefix)) == 0
				inRange := j >= begin && j <= end
				if startsWith != inRange {
					t.Fatalf("completion %d (%v) startsWith(%v)=%v but inRange(%v)=%v",
						j, other[:on], prefix, startsWith, [2]uint64{begin, end}, inRange)
				}
			}
		}
	}
}

// TestLocateSoundness checks property 5: any query not stored returns
// InvalidID.
func TestLocateSoundness(t *testing.T) {
	d := buildWorked(t)
	notStored := [][]Term{
		{9},
		{10, 20, 1},
		{10, 22},
		{11, 5, 6},
		{11, 5, 7, 0},
		{13},
		{255},
	}
	for _, q := range notStored {
		if got := d.Locate(q); got != InvalidID {
			t.Errorf("Locate(%v) = %d, want InvalidID", q, got)
		}
	}
}

func TestBoundaries(t *testing.T) {
	d := buildWorked(t)

	t.Run("below_all_headers", func(t *testing.T) {
		begin, end := d.LocatePrefix([]Term{1})
		if begin <= end {
			t.Errorf("LocatePrefix([1]) = [%d,%d], want empty", begin, end)
		}
	})

	t.Run("above_all_completions", func(t *testing.T) {
		begin, end := d.LocatePrefix([]Term{99})
		if begin <= end {
			t.Errorf("LocatePrefix([99]) = [%d,%d], want empty", begin, end)
		}
	})

	t.Run("singleton_dictionary", func(t *testing.T) {
		recs := []record{{[]Term{42, 7}, 0}}
		d, docIDs, err := Build(newSliceSource(recs), BuildParams{NumCompletions: 1, BucketSize: 2})
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if d.Size() != 1 || d.Buckets() != 1 || d.BucketSize(0) != 1 {
			t.Fatalf("singleton dictionary shape wrong: size=%d buckets=%d bucketSize=%d", d.Size(), d.Buckets(), d.BucketSize(0))
		}
		if len(docIDs) != 1 || docIDs[0] != 0 {
			t.Fatalf("docIDs = %v, want [0]", docIDs)
		}
		if got := d.Locate([]Term{42, 7}); got != 0 {
			t.Fatalf("Locate([42,7]) = %d, want 0", got)
		}
	})

	t.Run("a_greater_than_b_is_empty", func(t *testing.T) {
		begin, end := d.LocatePrefixRange([]Term{11}, 6, 5)
		if begin < end {
			t.Errorf("LocatePrefixRange with a>b = [%d,%d), want empty", begin, end)
		}
	})
}

func TestBucketSumAndPointers(t *testing.T) {
	d := buildWorked(t)

	var sum int
	for b := 0; b < d.Buckets(); b++ {
		sum += d.BucketSize(b)
	}
	if sum != int(d.Size()) {
		t.Errorf("bucket size sum = %d, want %d", sum, d.Size())
	}

	for b := 0; b < d.Buckets(); b++ {
		if h0, h1 := d.headerPtrs.At(b), d.headerPtrs.At(b+1); h0 >= h1 {
			t.Errorf("header pointers not strictly increasing at bucket %d: %d, %d", b, h0, h1)
		}
		p0, p1 := d.bucketPtrs.At(b), d.bucketPtrs.At(b+1)
		if (d.deltaCount(b) > 0 && p0 >= p1) || (d.deltaCount(b) == 0 && p0 != p1) {
			t.Errorf("bucket pointers wrong at bucket %d (%d deltas): %d, %d", b, d.deltaCount(b), p0, p1)
		}
	}
}

func TestMaxTermsBoundary(t *testing.T) {
	max := make([]Term, MaxTerms)
	for i := range max {
		max[i] = Term(i)
	}
	tooLong := make([]Term, MaxTerms+1)
	for i := range tooLong {
		tooLong[i] = Term(i)
	}

	t.Run("at_max_terms_accepted", func(t *testing.T) {
		recs := []record{{max, 0}}
		_, _, err := Build(newSliceSource(recs), BuildParams{NumCompletions: 1, BucketSize: 2})
		if err != nil {
			t.Fatalf("Build with MaxTerms completion: %v", err)
		}
	})

	t.Run("over_max_terms_rejected", func(t *testing.T) {
		recs := []record{{tooLong, 0}}
		_, _, err := Build(newSliceSource(recs), BuildParams{NumCompletions: 1, BucketSize: 2})
		if err == nil {
			t.Fatal("Build with MaxTerms+1 completion: want error, got nil")
		}
	})
}
