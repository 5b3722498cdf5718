// Package cli provides an interactive line-at-a-time query loop over a
// sealed dictionary, for debugging and manual exploration.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/front-coded/fcdict/pkg/fcdict"
	"github.com/front-coded/fcdict/pkg/vocabulary"
)

// InputHandler reads whitespace-separated prefixes from stdin and
// prints the matching completions from a sealed dictionary.
type InputHandler struct {
	dict         *fcdict.Dictionary
	docIDs       []uint64
	vocab        *vocabulary.Vocabulary
	suggestLimit int
	requestCount int
}

// NewInputHandler creates a REPL handler bound to a sealed dictionary.
func NewInputHandler(dict *fcdict.Dictionary, docIDs []uint64, vocab *vocabulary.Vocabulary, limit int) *InputHandler {
	return &InputHandler{dict: dict, docIDs: docIDs, vocab: vocab, suggestLimit: limit}
}

// Start begins the REPL loop, prompting for input and reading a line
// from stdin until an error (including EOF) terminates it.
func (h *InputHandler) Start() error {
	log.Print("fcdict CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a prefix and press Enter (Ctrl+D to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput encodes a whitespace-separated prefix, runs LocatePrefix
// against it, and prints the matching completions.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	words := strings.Fields(line)

	prefix, err := h.vocab.Encode(words)
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	start := time.Now()
	begin, end := h.dict.LocatePrefix(prefix)
	elapsed := time.Since(start)

	if begin > end {
		log.Warnf("No completions for prefix: %q", line)
		return
	}

	count := int(end - begin + 1)
	log.Printf("Found %d completions for %q in %v:", count, line, elapsed)

	var scratch [fcdict.MaxTerms]fcdict.Term
	shown := 0
	for id := begin; id <= end; id++ {
		if h.suggestLimit > 0 && shown >= h.suggestLimit {
			break
		}
		n, err := h.dict.Extract(id, scratch[:])
		if err != nil {
			log.Errorf("Extracting id %d: %v", id, err)
			continue
		}
		out, err := h.vocab.Decode(scratch[:n])
		if err != nil {
			log.Errorf("Decoding id %d: %v", id, err)
			continue
		}
		clWords := fmt.Sprintf("\033[38;5;75m%s\033[0m", strings.Join(out, " "))
		log.Printf("%2d. %-40s (doc: %d)", shown+1, clWords, h.docID(id))
		shown++
	}
}

func (h *InputHandler) docID(id uint64) uint64 {
	if id < uint64(len(h.docIDs)) {
		return h.docIDs[id]
	}
	return 0
}
