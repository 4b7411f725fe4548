// Package services defines the interfaces that connect the pipeline to its
// collaborators: the book container and the linguistic tokenizer.
package services

// Token is one span of input text as reported by a tokenizer. Offsets are
// measured in codepoints into the tokenized text; spans are disjoint and
// strictly increasing.
type Token struct {
	Surface string // literal text of the span
	Start   int    // codepoint offset of the first rune
	Length  int    // span length in codepoints
	IsWord  bool   // true for word tokens, false for punctuation and digits
	Lemma   string // dictionary form; meaningful only when IsWord is true
}

// Tokenizer splits raw text into an ordered token sequence. Text between
// tokens (typically whitespace) is not reported; callers reconstruct it
// from the offsets.
type Tokenizer interface {
	Tokenize(text string) []Token
}

// ItemType classifies a container resource.
type ItemType int

const (
	ItemOther ItemType = iota
	ItemDocument
	ItemImage
	ItemStylesheet
	ItemNavigation
)

// Item is one resource inside a book container. Content returns the full
// resource bytes; implementations may cache them.
type Item struct {
	ID        string
	Name      string
	MediaType string
	Type      ItemType
	Content   func() ([]byte, error)
}

// Container exposes an already-loaded e-book: its resources, reading order
// and metadata. Metadata lookups return every matching value, empty when
// the field is absent.
type Container interface {
	Items() []Item
	Spine() []Item
	Metadata(namespace, name string) []string
}
