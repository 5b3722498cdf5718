package vocabulary

import (
	"sort"

	"github.com/front-coded/fcdict/pkg/fcdict"
)

// Phrase is one candidate completion before encoding: a sequence of
// vocabulary words plus the caller's own document identifier.
type Phrase struct {
	Words []string
	DocID uint64
}

type encoded struct {
	completion fcdict.Completion
	docID      uint64
}

// PhraseSource encodes a batch of phrases against a Vocabulary, sorts
// them into the strictly increasing order fcdict.Build requires, drops
// exact duplicates, and walks the result as an fcdict.Source.
type PhraseSource struct {
	records []encoded
	pos     int
}

// NewPhraseSource encodes every phrase, assigning fresh vocabulary ids
// to any word not already known. The resulting source produces exactly
// len(result) completions once duplicates are removed; call Len to get
// that count before passing it as BuildParams.NumCompletions.
func NewPhraseSource(v *Vocabulary, phrases []Phrase) (*PhraseSource, error) {
	var all []string
	for _, p := range phrases {
		all = append(all, p.Words...)
	}
	v.Assign(all)

	records := make([]encoded, 0, len(phrases))
	for _, p := range phrases {
		c, err := v.Encode(p.Words)
		if err != nil {
			return nil, err
		}
		records = append(records, encoded{completion: c, docID: p.DocID})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return fcdict.Compare(records[i].completion, records[j].completion) < 0
	})

	deduped := records[:0]
	for i, r := range records {
		if i > 0 && fcdict.Compare(records[i-1].completion, r.completion) == 0 {
			continue
		}
		deduped = append(deduped, r)
	}

	return &PhraseSource{records: deduped}, nil
}

// Len returns the number of completions this source will produce.
func (s *PhraseSource) Len() int { return len(s.records) }

// Next implements fcdict.Source.
func (s *PhraseSource) Next() ([]fcdict.Term, uint64, bool) {
	if s.pos >= len(s.records) {
		return nil, 0, false
	}
	r := s.records[s.pos]
	s.pos++
	return r.completion, r.docID, true
}
