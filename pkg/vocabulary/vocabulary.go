// Package vocabulary maps vocabulary tokens (raw string terms) to the
// integer term ids that pkg/fcdict stores. This mapping, and the
// upstream file that feeds sorted completions to a builder, are a
// separate concern from the dictionary itself; this package is one
// concrete way to produce them.
package vocabulary

import (
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/front-coded/fcdict/pkg/fcdict"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Vocabulary assigns each distinct token a stable term id. Ids follow
// sorted string order within one Assign call, so a vocabulary filled by
// a single Assign makes a phrase's term-id sequence sort the same way
// its word sequence would; words added by a later Assign get ids after
// every existing one. Lookups in both directions go through a
// Patricia trie, chosen for the same prefix-oriented access pattern
// the original word-completion trie used.
type Vocabulary struct {
	byWord *patricia.Trie
	byTerm []string
}

// New returns an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{byWord: patricia.NewTrie()}
}

// Assign adds every distinct word in words to the vocabulary that is
// not already present, renumbering nothing: existing terms keep their
// ids, and new words are appended in sorted order starting at the
// current vocabulary size. Call it once with the full token set before
// encoding any phrase, or incrementally as new tokens are discovered.
func (v *Vocabulary) Assign(words []string) {
	seen := make(map[string]bool, len(words))
	var fresh []string
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		if _, ok := v.Lookup(w); ok {
			continue
		}
		fresh = append(fresh, w)
	}
	sort.Strings(fresh)
	for _, w := range fresh {
		id := fcdict.Term(len(v.byTerm))
		v.byTerm = append(v.byTerm, w)
		v.byWord.Insert(patricia.Prefix(w), id)
	}
}

// Lookup returns the term id assigned to word, if any.
func (v *Vocabulary) Lookup(word string) (fcdict.Term, bool) {
	item := v.byWord.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	return item.(fcdict.Term), true
}

// Word returns the token assigned to id, if any.
func (v *Vocabulary) Word(id fcdict.Term) (string, bool) {
	if id >= fcdict.Term(len(v.byTerm)) {
		return "", false
	}
	return v.byTerm[id], true
}

// Len returns the number of distinct tokens in the vocabulary.
func (v *Vocabulary) Len() int { return len(v.byTerm) }

// Encode turns a phrase into the term-id completion fcdict stores.
// Every word must already be in the vocabulary.
func (v *Vocabulary) Encode(words []string) (fcdict.Completion, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("vocabulary: empty phrase")
	}
	out := make(fcdict.Completion, len(words))
	for i, w := range words {
		id, ok := v.Lookup(w)
		if !ok {
			return nil, fmt.Errorf("vocabulary: unknown token %q", w)
		}
		out[i] = id
	}
	return out, nil
}

// Decode reverses Encode, reconstructing the phrase behind a
// completion extracted from a dictionary.
func (v *Vocabulary) Decode(ids []fcdict.Term) ([]string, error) {
	out := make([]string, len(ids))
	for i, id := range ids {
		w, ok := v.Word(id)
		if !ok {
			return nil, fmt.Errorf("vocabulary: unknown term id %d", id)
		}
		out[i] = w
	}
	return out, nil
}

// Marshal encodes the vocabulary's id assignment as a portable msgpack
// blob. Only byTerm needs persisting: Unmarshal rebuilds the trie from
// it, and ids are exactly byTerm's indices.
func (v *Vocabulary) Marshal() ([]byte, error) {
	return msgpack.Marshal(v.byTerm)
}

// Unmarshal decodes a blob produced by Marshal into a fresh Vocabulary.
func Unmarshal(blob []byte) (*Vocabulary, error) {
	var words []string
	if err := msgpack.Unmarshal(blob, &words); err != nil {
		return nil, fmt.Errorf("vocabulary: unmarshal: %w", err)
	}
	v := New()
	v.byTerm = words
	for i, w := range words {
		v.byWord.Insert(patricia.Prefix(w), fcdict.Term(i))
	}
	return v, nil
}
