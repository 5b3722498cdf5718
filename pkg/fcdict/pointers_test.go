package fcdict

import "testing"

func TestEliasFanoMatchesPlain(t *testing.T) {
	values := []uint64{0, 3, 3, 7, 8, 20, 21, 21, 50}
	plain := PlainPointerTable(values)
	ef, err := NewEliasFanoPointerTable(values)
	if err != nil {
		t.Fatalf("NewEliasFanoPointerTable: %v", err)
	}
	if ef.Len() != plain.Len() {
		t.Fatalf("Len() = %d, want %d", ef.Len(), plain.Len())
	}
	for i := 0; i < plain.Len(); i++ {
		if got, want := ef.At(i), plain.At(i); got != want {
			t.Errorf("At(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestEliasFanoRejectsNonMonotone(t *testing.T) {
	_, err := NewEliasFanoPointerTable([]uint64{0, 5, 3})
	if err == nil {
		t.Fatal("want error for non-monotone input, got nil")
	}
}

// TestBuildCompactMatchesPlain checks that Compact and non-Compact
// builds of the same corpus answer identically.
func TestBuildCompactMatchesPlain(t *testing.T) {
	recs := workedCorpus()
	plainDict, _, err := Build(newSliceSource(recs), BuildParams{
		NumCompletions: uint64(len(recs)),
		BucketSize:     2,
	})
	if err != nil {
		t.Fatalf("Build (plain): %v", err)
	}
	compactDict, _, err := Build(newSliceSource(recs), BuildParams{
		NumCompletions: uint64(len(recs)),
		BucketSize:     2,
		Compact:        true,
	})
	if err != nil {
		t.Fatalf("Build (compact): %v", err)
	}

	var a, b [MaxTerms]Term
	for id := uint64(0); id < plainDict.Size(); id++ {
		na, _ := plainDict.Extract(id, a[:])
		nb, _ := compactDict.Extract(id, b[:])
		if Compare(a[:na], b[:nb]) != 0 {
			t.Errorf("Extract(%d) plain=%v compact=%v", id, a[:na], b[:nb])
		}
	}
	for _, q := range [][]Term{{10}, {11}, {11, 5}, {12}} {
		if plainDict.Locate(q) != compactDict.Locate(q) {
			t.Errorf("Locate(%v) differs between plain and compact builds", q)
		}
		pb, pe := plainDict.LocatePrefix(q)
		cb, ce := compactDict.LocatePrefix(q)
		if pb != cb || pe != ce {
			t.Errorf("LocatePrefix(%v) plain=[%d,%d] compact=[%d,%d]", q, pb, pe, cb, ce)
		}
	}
}
