// Package annotate rewrites text blocks into annotated markup: every word
// token becomes an inline marker carrying its surface form, lemma and
// position, while everything between tokens is copied through verbatim.
// Each annotated word is also recorded in the book's inverted indices.
package annotate

import (
	"fmt"
	"strings"

	"github.com/lectorlabs/lector/index"
	"github.com/lectorlabs/lector/services"
)

// Annotator drives the tokenizer over text blocks and feeds the index. It
// carries no per-paragraph state; the caller threads the word-position
// counter so that one paragraph split across several text nodes still gets
// a single continuous position sequence.
type Annotator struct {
	tokenizer services.Tokenizer
	index     *index.BookIndex
}

// New creates an annotator writing into idx.
func New(tok services.Tokenizer, idx *index.BookIndex) (*Annotator, error) {
	if tok == nil {
		return nil, fmt.Errorf("tokenizer cannot be nil")
	}
	if idx == nil {
		return nil, fmt.Errorf("book index cannot be nil")
	}
	return &Annotator{tokenizer: tok, index: idx}, nil
}

// Annotate rewrites one standalone text block, starting word positions at
// zero. Re-running it on the same text re-appends occurrences; callers run
// it exactly once per block per pipeline run.
func (a *Annotator) Annotate(text, paragraphID, file string) string {
	out, _ := a.AnnotateAt(text, paragraphID, file, 0)
	return out
}

// AnnotateAt rewrites one text block with word positions starting at
// startPos and returns the annotated markup together with the next unused
// position. Text with no word tokens comes back unchanged.
func (a *Annotator) AnnotateAt(text, paragraphID, file string, startPos int) (string, int) {
	runes := []rune(text)
	tokens := a.tokenizer.Tokenize(text)

	var out strings.Builder
	last := 0
	position := startPos

	for _, tok := range tokens {
		if tok.Start > last {
			out.WriteString(string(runes[last:tok.Start]))
		}
		if tok.IsWord {
			word := strings.ToLower(tok.Surface)
			lemma := strings.ToLower(tok.Lemma)
			out.WriteString(marker(word, lemma, paragraphID, position, tok.Surface))
			a.index.Add(word, lemma, tok.Surface, paragraphID, file, position)
			position++
		} else {
			out.WriteString(tok.Surface)
		}
		last = tok.Start + tok.Length
	}
	if last < len(runes) {
		out.WriteString(string(runes[last:]))
	}
	return out.String(), position
}

// marker renders the positional word marker. The attribute set is a fixed
// contract consumed by the front-end word-interaction script and must not
// change shape.
func marker(word, lemma, paragraphID string, position int, original string) string {
	return fmt.Sprintf(
		`<span class="word" data-word="%s" data-lemma="%s" data-paragraph-id="%s" data-position="%d">%s</span>`,
		word, lemma, paragraphID, position, original,
	)
}
