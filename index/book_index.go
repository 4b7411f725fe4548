// Package index holds the inverted indices built over one book: the word
// index, the lemma index and the word-to-lemma map. All three are
// append-only during a run; insertion order within every occurrence list
// equals the traversal order of documents, paragraphs and word tokens.
package index

import (
	"github.com/lectorlabs/lector/model"
)

// BookIndex owns the three index structures for a single pipeline run.
// It is not safe for concurrent use; the pipeline feeds it from a single
// goroutine in strict traversal order.
type BookIndex struct {
	Words       map[string][]model.WordOccurrence
	Lemmas      map[string][]model.LemmaOccurrence
	WordToLemma map[string]string

	// LemmaConflicts counts surface forms whose lemma resolution changed
	// between occurrences. The mapping keeps the last-seen lemma; the
	// counter only surfaces the ambiguity.
	LemmaConflicts int

	wordOrder  []string
	lemmaOrder []string
}

// NewBookIndex returns an empty index set for a fresh run.
func NewBookIndex() *BookIndex {
	return &BookIndex{
		Words:       make(map[string][]model.WordOccurrence),
		Lemmas:      make(map[string][]model.LemmaOccurrence),
		WordToLemma: make(map[string]string),
	}
}

// Add records one word occurrence in all three indices. word and lemma must
// already be lowercased; original keeps the surface casing from the text.
func (bi *BookIndex) Add(word, lemma, original, paragraphID, file string, position int) {
	if _, seen := bi.Words[word]; !seen {
		bi.wordOrder = append(bi.wordOrder, word)
	}
	bi.Words[word] = append(bi.Words[word], model.WordOccurrence{
		ParagraphID: paragraphID,
		Position:    position,
		File:        file,
		Original:    original,
		Lemma:       lemma,
	})

	if _, seen := bi.Lemmas[lemma]; !seen {
		bi.lemmaOrder = append(bi.lemmaOrder, lemma)
	}
	bi.Lemmas[lemma] = append(bi.Lemmas[lemma], model.LemmaOccurrence{
		ParagraphID: paragraphID,
		Position:    position,
		File:        file,
		Word:        word,
		Original:    original,
	})

	if prev, ok := bi.WordToLemma[word]; ok && prev != lemma {
		bi.LemmaConflicts++
	}
	bi.WordToLemma[word] = lemma
}

// WordsInOrder returns every indexed surface form in first-seen order.
func (bi *BookIndex) WordsInOrder() []string {
	out := make([]string, len(bi.wordOrder))
	copy(out, bi.wordOrder)
	return out
}

// LemmasInOrder returns every indexed lemma in first-seen order.
func (bi *BookIndex) LemmasInOrder() []string {
	out := make([]string, len(bi.lemmaOrder))
	copy(out, bi.lemmaOrder)
	return out
}

// WordOccurrenceCount is the total number of recorded occurrences across
// the word index. It always equals LemmaOccurrenceCount.
func (bi *BookIndex) WordOccurrenceCount() int {
	total := 0
	for _, occs := range bi.Words {
		total += len(occs)
	}
	return total
}

// LemmaOccurrenceCount is the total number of recorded occurrences across
// the lemma index.
func (bi *BookIndex) LemmaOccurrenceCount() int {
	total := 0
	for _, occs := range bi.Lemmas {
		total += len(occs)
	}
	return total
}
