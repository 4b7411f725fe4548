// Package epub adapts an EPUB archive to the services.Container interface.
// All resource content is read eagerly while the archive is open, so the
// returned container is a fully-loaded, immutable snapshot of the book.
package epub

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"

	"github.com/lectorlabs/lector/internal/errors"
	"github.com/lectorlabs/lector/services"
)

// Container is a loaded EPUB book.
type Container struct {
	items    []services.Item
	spine    []services.Item
	metadata map[string][]string
}

// Open reads an EPUB file into memory. Any failure to open or decode the
// archive is fatal: the pipeline must not start from a partially-loaded
// book.
func Open(path string) (*Container, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, errors.NewContainerLoadError(path, err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, errors.NewContainerLoadError(path, errors.ErrNoRootfile)
	}
	book := rc.Rootfiles[0]

	c := &Container{
		metadata: map[string][]string{},
	}
	c.addMetadata("title", book.Title)
	c.addMetadata("creator", book.Creator)
	c.addMetadata("language", book.Language)
	c.addMetadata("identifier", book.Identifier)
	c.addMetadata("publisher", book.Publisher)
	c.addMetadata("description", book.Description)

	spineNames := make(map[string]bool, len(book.Spine.Itemrefs))
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item != nil {
			spineNames[ref.Item.HREF] = true
		}
	}

	byHREF := make(map[string]services.Item, len(book.Manifest.Items))
	for i := range book.Manifest.Items {
		manifestItem := book.Manifest.Items[i]
		content, err := readItem(manifestItem)
		if err != nil {
			return nil, errors.NewContainerLoadError(path,
				fmt.Errorf("failed to read item %s: %w", manifestItem.HREF, err))
		}
		item := services.Item{
			ID:        manifestItem.ID,
			Name:      manifestItem.HREF,
			MediaType: manifestItem.MediaType,
			Type:      classify(manifestItem.HREF, manifestItem.MediaType, spineNames[manifestItem.HREF]),
			Content:   contentFunc(content),
		}
		c.items = append(c.items, item)
		byHREF[item.Name] = item
	}

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		if item, ok := byHREF[ref.Item.HREF]; ok {
			c.spine = append(c.spine, item)
		}
	}

	return c, nil
}

// Items returns every resource of the book in manifest order.
func (c *Container) Items() []services.Item {
	return c.items
}

// Spine returns the book's reading order.
func (c *Container) Spine() []services.Item {
	return c.spine
}

// Metadata returns the values of a Dublin Core field, empty when absent.
// The namespace is accepted for interface symmetry; EPUB book metadata is
// always Dublin Core.
func (c *Container) Metadata(namespace, name string) []string {
	return c.metadata[strings.ToLower(name)]
}

func (c *Container) addMetadata(name, value string) {
	if strings.TrimSpace(value) != "" {
		c.metadata[name] = append(c.metadata[name], value)
	}
}

func readItem(item epub.Item) ([]byte, error) {
	r, err := item.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// contentFunc captures already-read bytes behind the Item content accessor.
func contentFunc(content []byte) func() ([]byte, error) {
	return func() ([]byte, error) {
		return content, nil
	}
}

// classify maps a manifest entry to its resource type. NCX files are the
// navigation document; an out-of-spine XHTML file named nav or toc is
// treated as EPUB 3 navigation.
func classify(href, mediaType string, inSpine bool) services.ItemType {
	switch {
	case mediaType == "application/x-dtbncx+xml":
		return services.ItemNavigation
	case strings.HasPrefix(mediaType, "image/"):
		return services.ItemImage
	case mediaType == "text/css":
		return services.ItemStylesheet
	case mediaType == "application/xhtml+xml" || mediaType == "text/html":
		if !inSpine && looksLikeNav(href) {
			return services.ItemNavigation
		}
		return services.ItemDocument
	default:
		return services.ItemOther
	}
}

func looksLikeNav(href string) bool {
	name := strings.ToLower(href)
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".xhtml"), ".html")
	return name == "nav" || name == "toc" || name == "navigation"
}
