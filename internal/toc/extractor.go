package toc

import (
	"bytes"
	"encoding/xml"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/internal/errors"
	"github.com/lectorlabs/lector/model"
	"github.com/lectorlabs/lector/services"
)

// NCX document structure: an ordered tree of navigation points, each with a
// label and a target reference.
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

var sectionNumberRegex = regexp.MustCompile(`section(\d+)`)

// Extractor produces the classified table of contents for one book.
type Extractor struct {
	cfg        *config.Settings
	classifier *Classifier
	log        *slog.Logger
}

// NewExtractor creates an extractor using the given settings.
func NewExtractor(cfg *config.Settings) *Extractor {
	return &Extractor{
		cfg:        cfg,
		classifier: NewClassifier(cfg),
		log:        slog.Default().With("component", "toc"),
	}
}

// Extract walks the container's navigation document when one exists, or the
// spine otherwise. A navigation document that fails to parse partway
// discards its partial results and restarts the spine path from order 0.
func (e *Extractor) Extract(c services.Container, language string) []model.TOCEntry {
	nav := findNavigation(c)
	if nav == nil {
		e.log.Info("no navigation document found, using spine order")
		return e.extractFromSpine(c, language)
	}

	entries, err := e.extractFromNavigation(*nav, language)
	if err != nil {
		e.log.Warn("navigation document unusable, falling back to spine order",
			"name", nav.Name, "error", err)
		return e.extractFromSpine(c, language)
	}
	return entries
}

func findNavigation(c services.Container) *services.Item {
	for _, item := range c.Items() {
		if item.Type == services.ItemNavigation {
			nav := item
			return &nav
		}
	}
	return nil
}

// extractFromNavigation parses either NCX (XML navigation points) or HTML
// navigation (anchors inside a toc nav container).
func (e *Extractor) extractFromNavigation(nav services.Item, language string) ([]model.TOCEntry, error) {
	content, err := nav.Content()
	if err != nil {
		return nil, errors.NewNavigationError(nav.Name, err.Error())
	}
	if bytes.Contains(content, []byte("<ncx")) {
		return e.extractFromNCX(nav.Name, content, language)
	}
	return e.extractFromHTMLNav(nav.Name, content, language)
}

func (e *Extractor) extractFromNCX(name string, content []byte, language string) ([]model.TOCEntry, error) {
	var doc ncx
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, errors.NewNavigationError(name, "NCX parse failed: "+err.Error())
	}

	entries := make([]model.TOCEntry, 0)
	var walk func(points []navPoint)
	walk = func(points []navPoint) {
		for _, np := range points {
			title := strings.TrimSpace(np.Label.Text)
			href := np.Content.Src
			if title != "" && href != "" {
				entries = append(entries, e.navEntry(title, href, len(entries), language))
			}
			walk(np.Children)
		}
	}
	walk(doc.NavMap.NavPoints)

	if len(entries) == 0 {
		return nil, errors.NewNavigationError(name, "NCX contains no usable navigation points")
	}
	return entries, nil
}

func (e *Extractor) extractFromHTMLNav(name string, content []byte, language string) ([]model.TOCEntry, error) {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, errors.NewNavigationError(name, "HTML parse failed: "+err.Error())
	}

	container := findTOCNav(doc)
	if container == nil {
		return nil, errors.NewNavigationError(name, "no nav container found")
	}

	entries := make([]model.TOCEntry, 0)
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			href := attrValue(n, "href")
			title := strings.TrimSpace(textContent(n))
			if href != "" && title != "" {
				entries = append(entries, e.navEntry(title, href, len(entries), language))
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(container)

	if len(entries) == 0 {
		return nil, errors.NewNavigationError(name, "nav container holds no anchors")
	}
	return entries, nil
}

// navEntry builds one classified entry from a navigation target. The href
// keeps only the file name (case preserved); the id drops any fragment.
func (e *Extractor) navEntry(title, href string, order int, language string) model.TOCEntry {
	fileName := href
	if idx := strings.LastIndex(fileName, "/"); idx != -1 {
		fileName = fileName[idx+1:]
	}
	id := href
	if idx := strings.Index(id, "#"); idx != -1 {
		id = id[:idx]
	}

	sectionType := e.classifier.Classify(fileName, title)
	if sectionType == model.SectionChapter {
		title = e.classifier.FormatChapterTitle(title, language)
	}

	return model.TOCEntry{
		Title: title,
		Href:  fileName,
		ID:    id,
		Order: order,
		Type:  sectionType,
	}
}

// extractFromSpine derives the table of contents from the document spine:
// one entry per content document, titled from its headings and classified
// by filename heuristics.
func (e *Extractor) extractFromSpine(c services.Container, language string) []model.TOCEntry {
	entries := make([]model.TOCEntry, 0)

	for _, item := range c.Spine() {
		if item.Type != services.ItemDocument {
			continue
		}
		content, err := item.Content()
		if err != nil {
			e.log.Warn("skipping unreadable spine document", "name", item.Name, "error", err)
			continue
		}

		title := probeTitle(content)
		fileName := item.Name
		sectionType := e.classifier.Classify(fileName, "")

		order := len(entries)
		if sectionType == model.SectionChapter {
			title = e.recoverChapterTitle(title, fileName, order, language)
		}
		if title == "" {
			title = titleFromFileName(fileName)
		}

		entries = append(entries, model.TOCEntry{
			Title: title,
			Href:  fileName,
			ID:    item.ID,
			Order: order,
			Type:  sectionType,
		})
	}
	return entries
}

// recoverChapterTitle fills in or normalizes a chapter title derived from
// spine probing: numeric titles get the language's chapter word, and titles
// that are missing or just echo the file name are rebuilt from a
// "section<digits>" file name pattern, else from the 1-based order.
func (e *Extractor) recoverChapterTitle(title, fileName string, order int, language string) string {
	title = e.classifier.FormatChapterTitle(title, language)
	if title != "" && title != fileName {
		return title
	}
	word := e.cfg.ChapterWord(language)
	if m := sectionNumberRegex.FindStringSubmatch(strings.ToLower(fileName)); m != nil {
		if num, err := strconv.Atoi(m[1]); err == nil {
			return word + " " + strconv.Itoa(num)
		}
	}
	return word + " " + strconv.Itoa(order+1)
}

// probeTitle looks for a document title in priority order: first h1, first
// h2, then the page title. A page title containing " - " keeps only the
// last segment.
func probeTitle(content []byte) string {
	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return ""
	}
	if h1 := findElement(doc, "h1"); h1 != nil {
		return strings.TrimSpace(textContent(h1))
	}
	if h2 := findElement(doc, "h2"); h2 != nil {
		return strings.TrimSpace(textContent(h2))
	}
	if titleEl := findElement(doc, "title"); titleEl != nil {
		text := strings.TrimSpace(textContent(titleEl))
		if idx := strings.LastIndex(text, " - "); idx != -1 {
			return strings.TrimSpace(text[idx+len(" - "):])
		}
		return text
	}
	return ""
}

// titleFromFileName turns "section5.xhtml" into "Section5" as a last-resort
// display title.
func titleFromFileName(fileName string) string {
	name := strings.TrimSuffix(strings.TrimSuffix(fileName, ".xhtml"), ".html")
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// findTOCNav prefers a nav element marked epub:type="toc" and falls back to
// the first nav element in the document.
func findTOCNav(doc *html.Node) *html.Node {
	var first, typed *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if typed != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "nav" {
			if first == nil {
				first = n
			}
			if strings.EqualFold(attrValue(n, "epub:type"), "toc") {
				typed = n
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	if typed != nil {
		return typed
	}
	return first
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, name); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var out strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out.String()
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
