package fcdict

import (
	"testing"

	"golang.org/x/sync/errgroup"
)

// TestConcurrentReaders drives many goroutines against one sealed
// Dictionary at once, each with its own scratch buffers, to exercise
// the no-shared-state guarantee that makes concurrent reads safe
// without synchronisation.
func TestConcurrentReaders(t *testing.T) {
	d := buildWorked(t)

	queries := []Completion{
		{10, 20}, {10, 21}, {10, 30},
		{11, 5, 7}, {11, 5, 8}, {11, 6}, {12},
	}

	var g errgroup.Group
	for worker := 0; worker < 64; worker++ {
		worker := worker
		g.Go(func() error {
			var buf [MaxTerms]Term
			for round := 0; round < 200; round++ {
				q := queries[(worker+round)%len(queries)]
				id := d.Locate(q)
				if id == InvalidID {
					t.Errorf("worker %d: Locate(%v) unexpectedly missing", worker, q)
					continue
				}
				n, err := d.Extract(id, buf[:])
				if err != nil {
					t.Errorf("worker %d: Extract(%d): %v", worker, id, err)
					continue
				}
				if Compare(buf[:n], q) != 0 {
					t.Errorf("worker %d: Extract(Locate(%v)) = %v, want %v", worker, q, buf[:n], q)
				}
				begin, end := d.LocatePrefix(q[:1])
				if begin > end {
					t.Errorf("worker %d: LocatePrefix(%v) empty, want non-empty", worker, q[:1])
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}

// TestConcurrentBuilders seals several independent dictionaries from
// the same corpus in parallel, checking that Build holds no state
// across calls.
func TestConcurrentBuilders(t *testing.T) {
	var g errgroup.Group
	g.SetLimit(8)
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			recs := workedCorpus()
			d, _, err := Build(newSliceSource(recs), BuildParams{
				NumCompletions: uint64(len(recs)),
				BucketSize:     2,
			})
			if err != nil {
				return err
			}
			if d.Size() != 7 {
				t.Errorf("concurrent build: Size() = %d, want 7", d.Size())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
