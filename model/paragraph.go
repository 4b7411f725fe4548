package model

// Paragraph describes one paragraph-like block of a content document.
// ID is "<file>_<index>" and is unique within a processing run. Paragraphs
// are created once during document assembly and never mutated afterwards.
type Paragraph struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	File    string   `json:"file"`
	Index   int      `json:"paragraph"`
	Context string   `json:"context"`
	Classes []string `json:"classes"`
}
