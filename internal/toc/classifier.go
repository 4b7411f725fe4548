// Package toc extracts and classifies a book's table of contents, either
// from a navigation document (NCX or HTML nav) or, failing that, from the
// document spine.
package toc

import (
	"strings"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/model"
)

// rule pairs a predicate with the section type it implies. Rules run in
// fixed precedence order; the first match wins.
type rule struct {
	matches func(fileName, title string) bool
	result  model.SectionType
}

// Classifier maps a section's file name and title to its section type.
type Classifier struct {
	rules []rule
	cfg   *config.Settings
}

// NewClassifier builds the rule table from the configured keyword sets.
// Precedence: front-matter filename keyword, back-matter filename keyword,
// exact front-matter title, chapter filename pattern, default chapter.
func NewClassifier(cfg *config.Settings) *Classifier {
	cls := cfg.Classification
	return &Classifier{
		cfg: cfg,
		rules: []rule{
			{matchesAnyKeyword(cls.FrontMatterKeywords), model.SectionFrontMatter},
			{matchesAnyKeyword(cls.BackMatterKeywords), model.SectionBackMatter},
			{matchesTitle(cls.FrontMatterTitles), model.SectionFrontMatter},
			{matchesAnyKeyword(cls.ChapterPatterns), model.SectionChapter},
		},
	}
}

// Classify returns the section type for a file name and title. Matching is
// case-insensitive; sections matching no rule default to chapter.
func (c *Classifier) Classify(fileName, title string) model.SectionType {
	fileLower := strings.ToLower(fileName)
	titleLower := strings.ToLower(strings.TrimSpace(title))
	for _, r := range c.rules {
		if r.matches(fileLower, titleLower) {
			return r.result
		}
	}
	return model.SectionChapter
}

// FormatChapterTitle rewrites purely numeric chapter titles as
// "<ChapterWord> <number>" for the book's language. Non-numeric titles pass
// through unchanged.
func (c *Classifier) FormatChapterTitle(title, language string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || !isDigits(trimmed) {
		return title
	}
	return c.cfg.ChapterWord(language) + " " + trimmed
}

func matchesAnyKeyword(keywords []string) func(fileName, title string) bool {
	return func(fileName, _ string) bool {
		for _, kw := range keywords {
			if strings.Contains(fileName, kw) {
				return true
			}
		}
		return false
	}
}

func matchesTitle(titles []string) func(fileName, title string) bool {
	return func(_, title string) bool {
		for _, t := range titles {
			if title == t {
				return true
			}
		}
		return false
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
