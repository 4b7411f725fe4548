// Package pipeline orchestrates one complete processing run: book identity,
// table-of-contents extraction, document annotation, aggregation and
// artifact export. A run is a synchronous, single-threaded batch transform;
// documents are processed strictly in container traversal order, which is
// what guarantees the ordering invariants of the indices.
package pipeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/index"
	"github.com/lectorlabs/lector/internal/aggregate"
	"github.com/lectorlabs/lector/internal/annotate"
	"github.com/lectorlabs/lector/internal/assemble"
	"github.com/lectorlabs/lector/internal/toc"
	"github.com/lectorlabs/lector/model"
	"github.com/lectorlabs/lector/services"
)

// Result carries everything one run produced. All of it is write-once:
// a new run starts from a fresh Result and fresh indices.
type Result struct {
	RunID          string
	Book           model.BookInfo
	TOC            []model.TOCEntry
	Index          *index.BookIndex
	Paragraphs     map[string]model.Paragraph
	Families       map[string]model.WordFamily
	WordFrequency  []model.FrequencyEntry
	LemmaFrequency []model.FrequencyEntry
	Documents      []assemble.Document
	Images         []services.Item
	Stylesheets    []services.Item
}

// Pipeline processes books with a fixed configuration and tokenizer.
type Pipeline struct {
	cfg       *config.Settings
	tokenizer services.Tokenizer
	log       *slog.Logger
}

// New creates a pipeline.
func New(cfg *config.Settings, tokenizer services.Tokenizer) (*Pipeline, error) {
	if cfg == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if tokenizer == nil {
		return nil, fmt.Errorf("tokenizer cannot be nil")
	}
	return &Pipeline{
		cfg:       cfg,
		tokenizer: tokenizer,
		log:       slog.Default().With("component", "pipeline"),
	}, nil
}

// Run traverses the container once and builds the full result set in
// memory. Individual documents that cannot be decoded are skipped with a
// warning; they never abort the run.
func (p *Pipeline) Run(c services.Container) (*Result, error) {
	result := &Result{
		RunID:      uuid.NewString(),
		Book:       p.bookInfo(c),
		Index:      index.NewBookIndex(),
		Paragraphs: make(map[string]model.Paragraph),
	}
	log := p.log.With("run_id", result.RunID, "book_id", result.Book.ID)
	log.Info("starting run", "title", result.Book.Title, "language", result.Book.Language)

	result.TOC = toc.NewExtractor(p.cfg).Extract(c, result.Book.Language)
	log.Info("table of contents extracted", "entries", len(result.TOC))

	annotator, err := annotate.New(p.tokenizer, result.Index)
	if err != nil {
		return nil, err
	}
	assembler := assemble.New(annotator, p.cfg)

	for _, item := range c.Items() {
		switch item.Type {
		case services.ItemDocument:
			content, err := item.Content()
			if err != nil {
				log.Warn("skipping unreadable document", "name", item.Name, "error", err)
				continue
			}
			doc, err := assembler.Assemble(item.Name, content, result.Book.Title)
			if err != nil {
				log.Warn("skipping document", "name", item.Name, "error", err)
				continue
			}
			for _, paragraph := range doc.Paragraphs {
				result.Paragraphs[paragraph.ID] = paragraph
			}
			result.Documents = append(result.Documents, *doc)
		case services.ItemImage:
			result.Images = append(result.Images, item)
		case services.ItemStylesheet:
			result.Stylesheets = append(result.Stylesheets, item)
		}
	}

	result.Families = aggregate.WordFamilies(result.Index)
	result.WordFrequency = aggregate.WordFrequencies(result.Index)
	result.LemmaFrequency = aggregate.LemmaFrequencies(result.Index)

	log.Info("run complete",
		"documents", len(result.Documents),
		"images", len(result.Images),
		"stylesheets", len(result.Stylesheets),
		"paragraphs", len(result.Paragraphs),
		"unique_words", len(result.Index.Words),
		"unique_lemmas", len(result.Index.Lemmas),
		"occurrences", result.Index.WordOccurrenceCount(),
		"lemma_conflicts", result.Index.LemmaConflicts,
	)
	return result, nil
}

// bookInfo derives the book identity from container metadata, falling back
// to the Unknown defaults when fields are absent.
func (p *Pipeline) bookInfo(c services.Container) model.BookInfo {
	title := firstMetadata(c, "title", "Unknown Title")
	author := firstMetadata(c, "creator", "Unknown Author")
	return model.BookInfo{
		ID:       model.BookID(title),
		Title:    title,
		Author:   author,
		Language: p.detectLanguage(c),
	}
}

// detectLanguage reads the language metadata, keeps the primary subtag and
// falls back to the default language for anything unconfigured.
func (p *Pipeline) detectLanguage(c services.Container) string {
	values := c.Metadata("DC", "language")
	if len(values) == 0 {
		return p.cfg.DefaultLanguage
	}
	code := strings.ToLower(values[0])
	if len(code) > 2 {
		code = code[:2]
	}
	if !p.cfg.KnownLanguage(code) {
		return p.cfg.DefaultLanguage
	}
	return code
}

func firstMetadata(c services.Container, name, fallback string) string {
	values := c.Metadata("DC", name)
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return fallback
	}
	return values[0]
}
