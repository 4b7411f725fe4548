// Package words serves word lookups over the exported index artifacts. A
// service is a read-only snapshot: it loads the JSON artifacts once at
// startup and answers every request from memory.
package words

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lectorlabs/lector/internal/errors"
	"github.com/lectorlabs/lector/internal/persistence"
	"github.com/lectorlabs/lector/model"
)

// Context is everything known about one word: its lemma, the other surface
// forms of its family, and example paragraphs drawn from the book.
type Context struct {
	Word             string   `json:"word"`
	Lemma            string   `json:"lemma"`
	WordForms        []string `json:"word_forms"`
	Examples         []string `json:"examples"`
	TotalOccurrences int      `json:"total_occurrences"`
}

// Service answers word context lookups from loaded index artifacts.
type Service struct {
	wordIndex   map[string][]model.WordOccurrence
	lemmaIndex  map[string][]model.LemmaOccurrence
	wordToLemma map[string]string
	families    map[string]model.WordFamily
	paragraphs  map[string]model.Paragraph
	log         *slog.Logger
}

// Load reads the index artifacts from dataDir. A missing artifact file is
// tolerated with a warning so the server can start against an empty
// library; any other read error is fatal.
func Load(dataDir string) (*Service, error) {
	s := &Service{
		wordIndex:   map[string][]model.WordOccurrence{},
		lemmaIndex:  map[string][]model.LemmaOccurrence{},
		wordToLemma: map[string]string{},
		families:    map[string]model.WordFamily{},
		paragraphs:  map[string]model.Paragraph{},
		log:         slog.Default().With("component", "words"),
	}

	for _, artifact := range []struct {
		name   string
		target interface{}
	}{
		{"word_index.json", &s.wordIndex},
		{"lemma_index.json", &s.lemmaIndex},
		{"word_to_lemma.json", &s.wordToLemma},
		{"word_families.json", &s.families},
		{"paragraphs.json", &s.paragraphs},
	} {
		path := filepath.Join(dataDir, artifact.name)
		if err := persistence.LoadJSON(path, artifact.target); err != nil {
			if err == os.ErrNotExist {
				s.log.Warn("artifact missing, starting empty", "path", path)
				continue
			}
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	s.log.Info("word data loaded",
		"words", len(s.wordIndex),
		"lemmas", len(s.lemmaIndex),
		"paragraphs", len(s.paragraphs),
	)
	return s, nil
}

// WordContext assembles the full learning context for a word, with at most
// maxExamples example paragraphs. A word without lemma occurrences returns
// ErrWordNotFound.
func (s *Service) WordContext(word string, maxExamples int) (*Context, error) {
	lemma, ok := s.wordToLemma[word]
	if !ok {
		lemma = word
	}

	forms := []string{word}
	if family, ok := s.families[lemma]; ok && len(family.Forms) > 0 {
		forms = family.Forms
	}

	occurrences := s.lemmaIndex[lemma]
	if len(occurrences) == 0 {
		return nil, errors.NewWordNotFoundError(word)
	}

	examples := s.exampleTexts(occurrences, maxExamples)

	return &Context{
		Word:             word,
		Lemma:            lemma,
		WordForms:        forms,
		Examples:         examples,
		TotalOccurrences: len(occurrences),
	}, nil
}

// exampleTexts resolves occurrence paragraph IDs to paragraph texts,
// deduplicated in first-seen order.
func (s *Service) exampleTexts(occurrences []model.LemmaOccurrence, maxExamples int) []string {
	seen := make(map[string]bool, maxExamples)
	examples := make([]string, 0, maxExamples)
	for _, occurrence := range occurrences {
		if len(examples) >= maxExamples {
			break
		}
		if seen[occurrence.ParagraphID] {
			continue
		}
		seen[occurrence.ParagraphID] = true
		paragraph, ok := s.paragraphs[occurrence.ParagraphID]
		if !ok {
			continue
		}
		text := strings.TrimSpace(paragraph.Text)
		if text == "" {
			continue
		}
		examples = append(examples, text)
	}
	return examples
}

// SystemPrompt renders the immersion tutoring prompt for a word context.
// The prompt is entirely in the target language; the model is instructed to
// open by asking the learner what they think the word means.
func SystemPrompt(ctx *Context) string {
	formsText := ctx.Word
	if len(ctx.WordForms) > 1 {
		formsText = strings.Join(ctx.WordForms, ", ")
	}

	var examples strings.Builder
	for i, example := range ctx.Examples {
		if i > 0 {
			examples.WriteString("\n")
		}
		examples.WriteString("• " + example)
	}

	return fmt.Sprintf(`Soy estudiante de español y estoy aprendiendo por inmersión total. Estoy tratando de entender intuitivamente la palabra "%s" y sus formas (%s) sin recibir definiciones directas en inglés.

Aquí tienes ejemplos de cómo se usa esta palabra en contexto:

%s

Responde SOLAMENTE en español, usando un español sencillo. Aunque puedes ayudarme con explicaciones directas si es necesario, prefiero liderar el descubrimiento. No respondas a estas instrucciones - simplemente pregúntame directamente qué pienso que significa esta palabra "%s".`,
		ctx.Lemma, formsText, examples.String(), ctx.Lemma)
}
