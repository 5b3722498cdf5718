package server

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/front-coded/fcdict/pkg/fcdict"
	"github.com/front-coded/fcdict/pkg/vocabulary"
)

func testDict(t *testing.T) (*fcdict.Dictionary, []uint64, *vocabulary.Vocabulary) {
	t.Helper()

	phrases := []vocabulary.Phrase{
		{Words: []string{"new", "york"}, DocID: 100},
		{Words: []string{"new", "york", "city"}, DocID: 101},
		{Words: []string{"new", "zealand"}, DocID: 102},
		{Words: []string{"paris"}, DocID: 103},
	}
	vocab := vocabulary.New()
	src, err := vocabulary.NewPhraseSource(vocab, phrases)
	if err != nil {
		t.Fatalf("NewPhraseSource: %v", err)
	}
	dict, docIDs, err := fcdict.Build(src, fcdict.BuildParams{
		NumCompletions: uint64(src.Len()),
		BucketSize:     2,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return dict, docIDs, vocab
}

func roundTrip(t *testing.T, req QueryRequest) QueryResponse {
	t.Helper()
	dict, docIDs, vocab := testDict(t)

	var in bytes.Buffer
	if err := msgpack.NewEncoder(&in).Encode(req); err != nil {
		t.Fatalf("encoding request: %v", err)
	}

	var out bytes.Buffer
	srv := New(dict, docIDs, vocab, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var resp QueryResponse
	if err := msgpack.NewDecoder(&out).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func TestExactQuery(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "exact", Words: []string{"new", "york"}})
	if resp.Count != 1 || resp.Hits[0].DocID != 100 {
		t.Fatalf("got %+v", resp)
	}
}

func TestExactQueryMiss(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "exact", Words: []string{"tokyo"}})
	if resp.Count != 0 {
		t.Fatalf("got %+v, want a miss", resp)
	}
}

func TestPrefixQuery(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "prefix", Words: []string{"new"}})
	if resp.Count != 3 {
		t.Fatalf("Count = %d, want 3: %+v", resp.Count, resp)
	}
}

func TestPrefixQueryLimit(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "prefix", Words: []string{"new"}, Limit: 1})
	if resp.Count != 1 {
		t.Fatalf("Count = %d, want 1: %+v", resp.Count, resp)
	}
}

func TestExtractQuery(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "extract", TermID: 0})
	if resp.Count != 1 {
		t.Fatalf("got %+v", resp)
	}
}

func TestUnknownOp(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "bogus"})
	if resp.Error == "" {
		t.Fatalf("expected an error response, got %+v", resp)
	}
}

func TestUnknownToken(t *testing.T) {
	resp := roundTrip(t, QueryRequest{ID: "1", Op: "exact", Words: []string{"atlantis"}})
	if resp.Error == "" {
		t.Fatalf("expected an error response, got %+v", resp)
	}
}
