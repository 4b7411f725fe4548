package model

// WordOccurrence records one instance of a surface form at a specific
// position in the book. The word index stores these under the lowercased
// surface form; Lemma carries the dictionary form resolved for this
// occurrence.
type WordOccurrence struct {
	ParagraphID string `json:"paragraph_id"`
	Position    int    `json:"position"`
	File        string `json:"file"`
	Original    string `json:"original"`
	Lemma       string `json:"lemma"`
}

// LemmaOccurrence is the lemma index's projection of the same logical
// occurrence: keyed by lemma, it carries the lowercased surface form
// instead.
type LemmaOccurrence struct {
	ParagraphID string `json:"paragraph_id"`
	Position    int    `json:"position"`
	File        string `json:"file"`
	Word        string `json:"word"`
	Original    string `json:"original"`
}
