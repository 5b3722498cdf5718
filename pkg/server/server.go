package server

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/front-coded/fcdict/pkg/fcdict"
	"github.com/front-coded/fcdict/pkg/vocabulary"
)

// Server answers QueryRequest messages against a sealed dictionary, its
// doc id sidecar, and its vocabulary, over any pair of io.Reader/io.Writer.
type Server struct {
	dict   *fcdict.Dictionary
	docIDs []uint64
	vocab  *vocabulary.Vocabulary
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// New creates a query server reading requests from r and writing
// responses to w, both msgpack-encoded. docIDs is the sidecar Build
// returned alongside dict, indexed by completion id.
func New(dict *fcdict.Dictionary, docIDs []uint64, vocab *vocabulary.Vocabulary, r io.Reader, w io.Writer) *Server {
	return &Server{
		dict:   dict,
		docIDs: docIDs,
		vocab:  vocab,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start reads requests until EOF or a decode error, replying to each in
// turn. It returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	for {
		var req QueryRequest
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req QueryRequest) {
	switch req.Op {
	case "exact":
		s.handleExact(req)
	case "prefix":
		s.handlePrefix(req)
	case "range":
		s.handleRange(req)
	case "extract":
		s.handleExtract(req)
	case "stats":
		s.handleStats(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %q", req.Op))
	}
}

// extractHit reconstructs the completion and doc id at id into a Hit.
// It returns false, logging nothing itself, if id is out of range.
func (s *Server) extractHit(id uint64) (Hit, bool) {
	var scratch [fcdict.MaxTerms]fcdict.Term
	n, err := s.dict.Extract(id, scratch[:])
	if err != nil {
		return Hit{}, false
	}
	words, err := s.vocab.Decode(scratch[:n])
	if err != nil {
		log.Errorf("Decoding completion %d: %v", id, err)
		return Hit{}, false
	}
	var docID uint64
	if id < uint64(len(s.docIDs)) {
		docID = s.docIDs[id]
	}
	return Hit{Words: words, DocID: docID}, true
}

func (s *Server) handleExact(req QueryRequest) {
	completion, err := s.vocab.Encode(req.Words)
	if err != nil {
		s.sendError(req.ID, err.Error())
		return
	}

	start := time.Now()
	id := s.dict.Locate(completion)
	elapsed := time.Since(start)

	if id == fcdict.InvalidID {
		s.sendResponse(QueryResponse{ID: req.ID, Count: 0, TimeTaken: elapsed.Microseconds()})
		return
	}
	hit, ok := s.extractHit(id)
	if !ok {
		s.sendError(req.ID, "internal decode error")
		return
	}
	s.sendResponse(QueryResponse{ID: req.ID, Hits: []Hit{hit}, Count: 1, TimeTaken: elapsed.Microseconds()})
}

func (s *Server) handlePrefix(req QueryRequest) {
	prefix, err := s.vocab.Encode(req.Words)
	if err != nil {
		s.sendError(req.ID, err.Error())
		return
	}

	start := time.Now()
	begin, end := s.dict.LocatePrefix(prefix)
	hits, ok := s.collect(begin, end, req.Limit)
	elapsed := time.Since(start)
	if !ok {
		s.sendError(req.ID, "internal decode error")
		return
	}

	s.sendResponse(QueryResponse{ID: req.ID, Hits: hits, Count: len(hits), TimeTaken: elapsed.Microseconds()})
}

func (s *Server) handleRange(req QueryRequest) {
	if len(req.Words) == 0 || req.RangeLo == "" || req.RangeHi == "" {
		s.sendError(req.ID, "range query requires words, lo and hi")
		return
	}
	prefix, err := s.vocab.Encode(req.Words)
	if err != nil {
		s.sendError(req.ID, err.Error())
		return
	}
	lo, ok := s.vocab.Lookup(req.RangeLo)
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("unknown token %q", req.RangeLo))
		return
	}
	hi, ok := s.vocab.Lookup(req.RangeHi)
	if !ok {
		s.sendError(req.ID, fmt.Sprintf("unknown token %q", req.RangeHi))
		return
	}

	start := time.Now()
	begin, end := s.dict.LocatePrefixRange(prefix, lo, hi)
	var hits []Hit
	if end > begin {
		hits, ok = s.collect(begin, end-1, req.Limit)
		if !ok {
			s.sendError(req.ID, "internal decode error")
			return
		}
	}
	elapsed := time.Since(start)

	s.sendResponse(QueryResponse{ID: req.ID, Hits: hits, Count: len(hits), TimeTaken: elapsed.Microseconds()})
}

func (s *Server) handleExtract(req QueryRequest) {
	start := time.Now()
	hit, ok := s.extractHit(req.TermID)
	elapsed := time.Since(start)

	if !ok {
		s.sendResponse(QueryResponse{ID: req.ID, Count: 0, TimeTaken: elapsed.Microseconds()})
		return
	}
	s.sendResponse(QueryResponse{ID: req.ID, Hits: []Hit{hit}, Count: 1, TimeTaken: elapsed.Microseconds()})
}

func (s *Server) handleStats(req QueryRequest) {
	s.sendResponse(StatsResponse{
		ID:          req.ID,
		Completions: s.dict.Size(),
		Buckets:     s.dict.Buckets(),
		VocabSize:   s.vocab.Len(),
		BytesOnDisk: s.dict.Bytes(),
	})
}

// collect turns an inclusive id range into Hits, honoring limit (0 means
// unlimited). It returns ok=false if decoding any completion fails.
func (s *Server) collect(begin, end uint64, limit int) ([]Hit, bool) {
	if begin > end {
		return []Hit{}, true
	}
	var hits []Hit
	for id := begin; id <= end; id++ {
		if limit > 0 && len(hits) >= limit {
			break
		}
		hit, ok := s.extractHit(id)
		if !ok {
			return nil, false
		}
		hits = append(hits, hit)
	}
	return hits, true
}

func (s *Server) sendResponse(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string) {
	s.sendResponse(QueryResponse{ID: id, Error: message})
}
