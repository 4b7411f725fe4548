package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/sync/errgroup"

	"github.com/lectorlabs/lector/internal/persistence"
	"github.com/lectorlabs/lector/model"
)

// Export writes every artifact of a completed run under the configured
// output directory. It must only be called with a fully-built Result: a
// partial run must never leave partially-correct index files behind.
func (p *Pipeline) Export(result *Result) error {
	out := p.cfg.Output
	log := p.log.With("run_id", result.RunID, "book_id", result.Book.ID)

	for _, doc := range result.Documents {
		target := filepath.Join(out.Dir, out.DocumentsDir, doc.Name)
		if err := writeFile(target, doc.Content); err != nil {
			return err
		}
	}
	log.Info("documents exported", "count", len(result.Documents))

	for _, img := range result.Images {
		content, err := img.Content()
		if err != nil {
			log.Warn("skipping unreadable image", "name", img.Name, "error", err)
			continue
		}
		if err := writeFile(filepath.Join(out.Dir, out.ImagesDir, path.Base(img.Name)), content); err != nil {
			return err
		}
	}

	for _, sheet := range result.Stylesheets {
		content, err := sheet.Content()
		if err != nil {
			log.Warn("skipping unreadable stylesheet", "name", sheet.Name, "error", err)
			continue
		}
		name := path.Base(sheet.Name)
		if !strings.HasSuffix(name, ".css") {
			name += ".css"
		}
		if err := writeFile(filepath.Join(out.Dir, out.StylesDir, name), content); err != nil {
			return err
		}
	}

	// The indices are frozen at this point, so the independent data
	// artifacts can be written in parallel.
	dataDir := filepath.Join(out.Dir, out.DataDir)
	var g errgroup.Group
	for _, artifact := range []struct {
		name   string
		object interface{}
	}{
		{"word_index.json", result.Index.Words},
		{"lemma_index.json", result.Index.Lemmas},
		{"word_to_lemma.json", result.Index.WordToLemma},
		{"word_families.json", result.Families},
		{"paragraphs.json", result.Paragraphs},
		{"word_frequency.json", result.WordFrequency},
		{"lemma_frequency.json", result.LemmaFrequency},
		{"table_of_contents.json", result.TOC},
	} {
		artifact := artifact
		g.Go(func() error {
			return persistence.SaveJSON(filepath.Join(dataDir, artifact.name), artifact.object)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("data artifacts exported", "dir", dataDir)

	if err := p.writeTOCPage(result); err != nil {
		return err
	}
	log.Info("export complete", "dir", out.Dir)
	return nil
}

// tocPageTemplate is the generated table-of-contents page of a book. The
// TOC data is embedded inline so the page works without a data fetch.
var tocPageTemplate = template.Must(template.New("toc").Parse(`<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Table of Contents</title>
    <link rel="stylesheet" href="../../styles/library.css">
    <link rel="stylesheet" href="../../styles/toc.css">
</head>
<body>
    <header class="toc-header">
        <div class="toc-nav">
            <a href="../../index.html" class="btn btn-secondary">&larr; Library</a>
            <div class="book-title">
                <h1>{{.Title}}</h1>
                <p>{{.Author}}</p>
            </div>
            <div class="reading-stats" id="reading-stats">
                <span id="progress-text">0% complete</span>
            </div>
        </div>
    </header>

    <main class="toc-container">
        <div class="book-cover-section">
            <img src="../../images/cover.jpg" alt="{{.Title}} cover" class="toc-book-cover">
            <div class="book-meta">
                <h2>{{.Title}}</h2>
                <p class="author">{{.Author}}</p>
                <div class="book-stats-detailed">
                    <div class="stat-item">
                        <span class="stat-number" id="chapter-count">{{.ChapterCount}}</span>
                        <span class="stat-label">Chapters</span>
                    </div>
                    <div class="stat-item">
                        <span class="stat-number" id="word-count">{{.WordCount}}</span>
                        <span class="stat-label">Words</span>
                    </div>
                    <div class="stat-item">
                        <span class="stat-number" id="lemma-count">{{.LemmaCount}}</span>
                        <span class="stat-label">Lemmas</span>
                    </div>
                </div>
            </div>
        </div>

        <div class="toc-content">
            <h3>Table of Contents</h3>
            <div class="toc-list" id="toc-list">
                <!-- TOC entries will be loaded here -->
            </div>
        </div>
    </main>

    <script>
        // Embedded TOC data
        const tocData = {{.TOCJSON}};
        const bookId = '{{.BookID}}';
    </script>
    <script src="../../js/toc.js"></script>
</body>
</html>
`))

func (p *Pipeline) writeTOCPage(result *Result) error {
	tocJSON, err := marshalInline(result.TOC)
	if err != nil {
		return fmt.Errorf("failed to embed TOC data: %w", err)
	}

	var page bytes.Buffer
	err = tocPageTemplate.Execute(&page, map[string]interface{}{
		"Title":        result.Book.Title,
		"Author":       result.Book.Author,
		"Language":     result.Book.Language,
		"BookID":       result.Book.ID,
		"ChapterCount": p.chapterCount(result.TOC),
		"WordCount":    len(result.Index.Words),
		"LemmaCount":   len(result.Index.Lemmas),
		"TOCJSON":      tocJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to render TOC page: %w", err)
	}

	target := filepath.Join(p.cfg.Output.Dir, p.cfg.Output.BooksDir, result.Book.ID, "index.html")
	return writeFile(target, page.Bytes())
}

// chapterCount counts the chapters carrying a formatted chapter title, in
// any configured language.
func (p *Pipeline) chapterCount(entries []model.TOCEntry) int {
	count := 0
	for _, entry := range entries {
		if entry.Type != model.SectionChapter {
			continue
		}
		for _, lang := range p.cfg.Languages {
			if strings.HasPrefix(entry.Title, lang.ChapterWord+" ") {
				count++
				break
			}
		}
	}
	return count
}

func marshalInline(v interface{}) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func writeFile(target string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, content, 0644); err != nil { // #nosec G306 -- exported artifacts are world-readable web content
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}
