// Package assemble rewrites content documents into their annotated form:
// every paragraph's text is run through the annotator, the document head is
// normalized, and the interactivity scripts are appended.
package assemble

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/internal/annotate"
	"github.com/lectorlabs/lector/model"
)

// Document is one assembled output document.
type Document struct {
	Name       string // output file name, always with a markup extension
	Content    []byte
	Paragraphs []model.Paragraph
}

// Assembler rewrites content documents in place. One assembler serves a
// whole run; it holds no per-document state.
type Assembler struct {
	annotator *annotate.Annotator
	cfg       *config.Settings
}

// New creates an assembler writing annotations through annotator.
func New(annotator *annotate.Annotator, cfg *config.Settings) *Assembler {
	return &Assembler{annotator: annotator, cfg: cfg}
}

// Assemble processes one content document: annotates every paragraph block
// in traversal order, normalizes the head section and appends the
// interactivity scripts. bookTitle seeds the page title when the document
// has none.
func (a *Assembler) Assemble(name string, content []byte, bookTitle string) (*Document, error) {
	fileName := path.Base(name)

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", fileName, err)
	}

	paragraphs := a.annotateParagraphs(doc, fileName)
	a.normalizeHead(doc, fileName, bookTitle)
	a.appendScripts(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("failed to render document %s: %w", fileName, err)
	}

	outName := fileName
	if !strings.HasSuffix(outName, ".html") && !strings.HasSuffix(outName, ".xhtml") {
		outName += ".html"
	}

	return &Document{Name: outName, Content: buf.Bytes(), Paragraphs: paragraphs}, nil
}

// annotateParagraphs rewrites the text nodes of every <p> block. The word
// position counter is continuous across all text nodes of one paragraph.
func (a *Assembler) annotateParagraphs(doc *html.Node, fileName string) []model.Paragraph {
	blocks := findAll(doc, "p")
	records := make([]model.Paragraph, 0, len(blocks))

	for i, block := range blocks {
		paragraphID := fmt.Sprintf("%s_%d", fileName, i)
		text := textContent(block)

		records = append(records, model.Paragraph{
			ID:      paragraphID,
			Text:    text,
			File:    fileName,
			Index:   i,
			Context: snippet(text, a.cfg.ContextSnippetLength),
			Classes: strings.Fields(attrValue(block, "class")),
		})

		// Collect first, rewrite after: replacing nodes while walking the
		// tree would skip siblings.
		textNodes := collectTextNodes(block)
		position := 0
		for _, node := range textNodes {
			if strings.TrimSpace(node.Data) == "" {
				continue
			}
			var annotated string
			annotated, position = a.annotator.AnnotateAt(node.Data, paragraphID, fileName, position)
			if annotated == node.Data {
				continue
			}
			replaceWithFragment(node, annotated)
		}
	}
	return records
}

// normalizeHead guarantees exactly one charset declaration, one title and
// the configured stylesheet references, removing any pre-existing ones.
func (a *Assembler) normalizeHead(doc *html.Node, fileName, bookTitle string) {
	head := findFirst(doc, "head")
	if head == nil {
		htmlNode := findFirst(doc, "html")
		if htmlNode == nil {
			return
		}
		head = newElement("head")
		if htmlNode.FirstChild != nil {
			htmlNode.InsertBefore(head, htmlNode.FirstChild)
		} else {
			htmlNode.AppendChild(head)
		}
	}

	for _, link := range findAll(head, "link") {
		if strings.EqualFold(attrValue(link, "rel"), "stylesheet") {
			link.Parent.RemoveChild(link)
		}
	}

	if !hasCharsetMeta(head) {
		meta := newElement("meta", html.Attribute{Key: "charset", Val: "utf-8"})
		if head.FirstChild != nil {
			head.InsertBefore(meta, head.FirstChild)
		} else {
			head.AppendChild(meta)
		}
	}

	if findFirst(head, "title") == nil {
		title := newElement("title")
		baseName := strings.TrimSuffix(strings.TrimSuffix(fileName, ".xhtml"), ".html")
		title.AppendChild(&html.Node{
			Type: html.TextNode,
			Data: bookTitle + " - " + baseName,
		})
		head.AppendChild(title)
	}

	for _, href := range a.cfg.Stylesheets {
		head.AppendChild(newElement("link",
			html.Attribute{Key: "rel", Val: "stylesheet"},
			html.Attribute{Key: "type", Val: "text/css"},
			html.Attribute{Key: "href", Val: href},
		))
	}
}

// appendScripts adds the interactivity script references at the end of the
// body.
func (a *Assembler) appendScripts(doc *html.Node) {
	body := findFirst(doc, "body")
	if body == nil {
		return
	}
	for _, src := range a.cfg.Scripts {
		body.AppendChild(newElement("script", html.Attribute{Key: "src", Val: src}))
	}
}

// replaceWithFragment swaps a text node for the nodes parsed from its
// annotated markup.
func replaceWithFragment(node *html.Node, annotated string) {
	parent := node.Parent
	if parent == nil {
		return
	}
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	fragment, err := html.ParseFragment(strings.NewReader(annotated), context)
	if err != nil {
		return
	}
	for _, child := range fragment {
		parent.InsertBefore(child, node)
	}
	parent.RemoveChild(node)
}

// snippet truncates text to limit runes, marking the cut with an ellipsis.
func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func newElement(name string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
		Attr:     attrs,
	}
}

func findFirst(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, name); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, name string) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == name {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
}

func collectTextNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return out
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

func hasCharsetMeta(head *html.Node) bool {
	for _, meta := range findAll(head, "meta") {
		if attrValue(meta, "charset") != "" {
			return true
		}
	}
	return false
}
