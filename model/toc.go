package model

// SectionType classifies a book section as narrative or supporting content.
type SectionType string

const (
	SectionFrontMatter SectionType = "front_matter"
	SectionChapter     SectionType = "chapter"
	SectionBackMatter  SectionType = "back_matter"
)

// TOCEntry is one classified entry of the table of contents. Order is the
// zero-based rank in whichever extraction path produced the entry.
type TOCEntry struct {
	Title string      `json:"title"`
	Href  string      `json:"href"`
	ID    string      `json:"id"`
	Order int         `json:"order"`
	Type  SectionType `json:"type"`
}
