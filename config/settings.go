// Package config provides configuration for the book processing pipeline:
// section classification keyword sets, per-language chapter words, the
// presentation and script references injected into annotated documents,
// and the output directory layout.
package config

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClassificationSettings drives the section classifier. Keyword matches are
// substring matches against the lowercased file name; title matches are
// exact matches against the lowercased title.
type ClassificationSettings struct {
	FrontMatterKeywords []string `yaml:"front_matter_keywords"`
	BackMatterKeywords  []string `yaml:"back_matter_keywords"`
	FrontMatterTitles   []string `yaml:"front_matter_titles"`
	ChapterPatterns     []string `yaml:"chapter_patterns"`
}

// LanguageSettings holds per-language presentation words.
type LanguageSettings struct {
	ChapterWord string `yaml:"chapter_word"`
}

// OutputSettings is the directory layout of a processed edition. All paths
// are relative to Dir.
type OutputSettings struct {
	Dir          string `yaml:"dir"`
	DocumentsDir string `yaml:"documents_dir"`
	ImagesDir    string `yaml:"images_dir"`
	StylesDir    string `yaml:"styles_dir"`
	DataDir      string `yaml:"data_dir"`
	BooksDir     string `yaml:"books_dir"`
}

// Settings is the root pipeline configuration.
type Settings struct {
	Classification       ClassificationSettings      `yaml:"classification"`
	Languages            map[string]LanguageSettings `yaml:"languages"`
	DefaultLanguage      string                      `yaml:"default_language"`
	Stylesheets          []string                    `yaml:"stylesheets"`
	Scripts              []string                    `yaml:"scripts"`
	ContextSnippetLength int                         `yaml:"context_snippet_length"`
	Output               OutputSettings              `yaml:"output"`
}

// Default returns the built-in configuration, tuned for Spanish-language
// learner editions.
func Default() *Settings {
	s := &Settings{}
	s.ApplyDefaults()
	return s
}

// Load reads settings from a YAML file. A missing file yields the defaults;
// a present file is merged over them.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	s := &Settings{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	s.ApplyDefaults()
	return s, nil
}

// ApplyDefaults fills every unset field with the built-in value.
func (s *Settings) ApplyDefaults() {
	if len(s.Classification.FrontMatterKeywords) == 0 {
		s.Classification.FrontMatterKeywords = []string{
			"cubierta", "titulo", "autor", "dedicatoria", "sinopsis", "info",
			"cover", "title", "author", "dedication", "preface", "introduction",
		}
	}
	if len(s.Classification.BackMatterKeywords) == 0 {
		s.Classification.BackMatterKeywords = []string{
			"notas", "notes", "bibliography", "index", "appendix", "glossary",
		}
	}
	if len(s.Classification.FrontMatterTitles) == 0 {
		s.Classification.FrontMatterTitles = []string{
			"presentación", "mapa", "introduction", "preface", "foreword", "map",
		}
	}
	if len(s.Classification.ChapterPatterns) == 0 {
		s.Classification.ChapterPatterns = []string{"section", "chapter", "cap", "ch"}
	}
	if len(s.Languages) == 0 {
		s.Languages = map[string]LanguageSettings{
			"es": {ChapterWord: "Capítulo"},
			"en": {ChapterWord: "Chapter"},
			"fr": {ChapterWord: "Chapitre"},
		}
	}
	if s.DefaultLanguage == "" {
		s.DefaultLanguage = "en"
	}
	if len(s.Stylesheets) == 0 {
		s.Stylesheets = []string{
			"../styles/style.css",
			"../styles/interactive.css",
			"../styles/chapter-navigation.css",
		}
	}
	if len(s.Scripts) == 0 {
		s.Scripts = []string{
			"../js/word-interaction.js",
			"../js/chapter-navigation.js",
		}
	}
	if s.ContextSnippetLength == 0 {
		s.ContextSnippetLength = 100
	}
	if s.Output.Dir == "" {
		s.Output.Dir = "."
	}
	if s.Output.DocumentsDir == "" {
		s.Output.DocumentsDir = "documents"
	}
	if s.Output.ImagesDir == "" {
		s.Output.ImagesDir = "images"
	}
	if s.Output.StylesDir == "" {
		s.Output.StylesDir = "styles"
	}
	if s.Output.DataDir == "" {
		s.Output.DataDir = "data"
	}
	if s.Output.BooksDir == "" {
		s.Output.BooksDir = "book"
	}
}

// Validate reports configuration problems as human-readable messages.
func (s *Settings) Validate() []string {
	var problems []string
	if _, ok := s.Languages[s.DefaultLanguage]; !ok {
		problems = append(problems, "default_language '"+s.DefaultLanguage+"' has no entry in languages")
	}
	for code, lang := range s.Languages {
		if strings.TrimSpace(lang.ChapterWord) == "" {
			problems = append(problems, "language '"+code+"' has an empty chapter_word")
		}
	}
	for _, group := range []struct {
		name   string
		values []string
	}{
		{"front_matter_keywords", s.Classification.FrontMatterKeywords},
		{"back_matter_keywords", s.Classification.BackMatterKeywords},
		{"front_matter_titles", s.Classification.FrontMatterTitles},
		{"chapter_patterns", s.Classification.ChapterPatterns},
	} {
		for _, v := range group.values {
			if strings.TrimSpace(v) == "" {
				problems = append(problems, "empty value in "+group.name)
			}
		}
	}
	if s.ContextSnippetLength < 0 {
		problems = append(problems, "context_snippet_length cannot be negative")
	}
	return problems
}

// ChapterWord returns the chapter word for a language code, falling back to
// the default language, then to "Chapter".
func (s *Settings) ChapterWord(lang string) string {
	if l, ok := s.Languages[lang]; ok && l.ChapterWord != "" {
		return l.ChapterWord
	}
	if l, ok := s.Languages[s.DefaultLanguage]; ok && l.ChapterWord != "" {
		return l.ChapterWord
	}
	return "Chapter"
}

// KnownLanguage reports whether the pipeline has settings for a language.
func (s *Settings) KnownLanguage(lang string) bool {
	_, ok := s.Languages[lang]
	return ok
}
