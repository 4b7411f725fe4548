package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// BookInfo is the identity of a processed book, derived once from container
// metadata. Missing metadata resolves to the Unknown defaults rather than
// failing the run.
type BookInfo struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Language string `json:"language"`
}

var (
	nonWordRunRegex    = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	spaceUnderunRegex  = regexp.MustCompile(`[\s_]+`)
	repeatedHyphenRuns = regexp.MustCompile(`-+`)
)

// BookID derives a URL/path-safe identifier from a book title: lowercased,
// punctuation removed, whitespace and underscores collapsed to hyphens.
// An empty or all-punctuation title falls back to "book".
func BookID(title string) string {
	id := strings.ToLower(strings.TrimSpace(title))
	id = nonWordRunRegex.ReplaceAllString(id, "")
	id = spaceUnderunRegex.ReplaceAllString(id, "-")
	id = repeatedHyphenRuns.ReplaceAllString(id, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return "book"
	}
	return id
}

// WordFamily groups every surface form sharing one lemma, with aggregate
// counts. Families are rebuilt wholesale from the lemma index, never
// maintained incrementally.
type WordFamily struct {
	Forms            []string `json:"forms"`
	TotalOccurrences int      `json:"total_occurrences"`
	UniqueForms      int      `json:"unique_forms"`
}

// FrequencyEntry is one (key, count) pair of a frequency ranking. It
// marshals as a two-element JSON array to match the exported artifact
// layout.
type FrequencyEntry struct {
	Key   string
	Count int
}

func (f FrequencyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{f.Key, f.Count})
}

func (f *FrequencyEntry) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &f.Key); err != nil {
		return fmt.Errorf("frequency entry key: %w", err)
	}
	if err := json.Unmarshal(raw[1], &f.Count); err != nil {
		return fmt.Errorf("frequency entry count: %w", err)
	}
	return nil
}
