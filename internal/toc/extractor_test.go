package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/model"
	"github.com/lectorlabs/lector/services"
)

// fakeContainer serves hand-built items for extractor tests.
type fakeContainer struct {
	items []services.Item
	spine []services.Item
}

func (f *fakeContainer) Items() []services.Item { return f.items }

func (f *fakeContainer) Spine() []services.Item { return f.spine }

func (f *fakeContainer) Metadata(namespace, name string) []string { return nil }

func staticItem(id, name string, itemType services.ItemType, content string) services.Item {
	return services.Item{
		ID:      id,
		Name:    name,
		Type:    itemType,
		Content: func() ([]byte, error) { return []byte(content), nil },
	}
}

const ncxContent = `<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="n1"><navLabel><text>Cubierta</text></navLabel><content src="Text/cubierta.xhtml"/></navPoint>
    <navPoint id="n2"><navLabel><text>1</text></navLabel><content src="Text/section1.xhtml"/>
      <navPoint id="n3"><navLabel><text>2</text></navLabel><content src="Text/section2.xhtml#start"/></navPoint>
    </navPoint>
    <navPoint id="n4"><navLabel><text>Notas</text></navLabel><content src="Text/notas.xhtml"/></navPoint>
  </navMap>
</ncx>`

func TestExtract_FromNCX(t *testing.T) {
	c := &fakeContainer{
		items: []services.Item{
			staticItem("ncx", "toc.ncx", services.ItemNavigation, ncxContent),
		},
	}

	entries := NewExtractor(config.Default()).Extract(c, "es")

	require.Len(t, entries, 4)

	assert.Equal(t, "Cubierta", entries[0].Title)
	assert.Equal(t, "cubierta.xhtml", entries[0].Href)
	assert.Equal(t, model.SectionFrontMatter, entries[0].Type)

	// Numeric chapter labels get the language's chapter word.
	assert.Equal(t, "Capítulo 1", entries[1].Title)
	assert.Equal(t, model.SectionChapter, entries[1].Type)

	// Nested points flatten in document order; the href keeps the last path
	// segment with its fragment, the id drops the fragment.
	assert.Equal(t, "Capítulo 2", entries[2].Title)
	assert.Equal(t, "section2.xhtml#start", entries[2].Href)
	assert.Equal(t, "Text/section2.xhtml", entries[2].ID)

	assert.Equal(t, "Notas", entries[3].Title)
	assert.Equal(t, model.SectionBackMatter, entries[3].Type)

	for i, entry := range entries {
		assert.Equal(t, i, entry.Order)
	}
}

const htmlNavContent = `<html><body>
<nav epub:type="toc"><ol>
  <li><a href="chap1.xhtml">1</a></li>
  <li><a href="notas.xhtml">Notas finales</a></li>
</ol></nav>
</body></html>`

func TestExtract_FromHTMLNav(t *testing.T) {
	c := &fakeContainer{
		items: []services.Item{
			staticItem("nav", "nav.xhtml", services.ItemNavigation, htmlNavContent),
		},
	}

	entries := NewExtractor(config.Default()).Extract(c, "es")

	require.Len(t, entries, 2)
	assert.Equal(t, "Capítulo 1", entries[0].Title)
	assert.Equal(t, "chap1.xhtml", entries[0].Href)
	assert.Equal(t, model.SectionChapter, entries[0].Type)
	assert.Equal(t, "Notas finales", entries[1].Title)
	assert.Equal(t, model.SectionBackMatter, entries[1].Type)
}

func TestExtract_SpineFallbackWhenNoNavigation(t *testing.T) {
	c := &fakeContainer{
		spine: []services.Item{
			staticItem("cover", "cubierta.xhtml", services.ItemDocument,
				`<html><head><title>Mi Libro - Cubierta</title></head><body><p>x</p></body></html>`),
			staticItem("s5", "section5.xhtml", services.ItemDocument,
				`<html><body><h1>5</h1><p>x</p></body></html>`),
			staticItem("s7", "section7.xhtml", services.ItemDocument,
				`<html><body><p>x</p></body></html>`),
		},
	}

	entries := NewExtractor(config.Default()).Extract(c, "es")

	require.Len(t, entries, 3)

	// Page title keeps only the segment after " - ".
	assert.Equal(t, "Cubierta", entries[0].Title)
	assert.Equal(t, model.SectionFrontMatter, entries[0].Type)

	// Numeric h1 becomes a formatted chapter title.
	assert.Equal(t, "Capítulo 5", entries[1].Title)
	assert.Equal(t, model.SectionChapter, entries[1].Type)

	// No title at all recovers the chapter number from the file name.
	assert.Equal(t, "Capítulo 7", entries[2].Title)

	for i, entry := range entries {
		assert.Equal(t, i, entry.Order)
	}
}

func TestExtract_SpineFallbackNumbersByOrderWithoutFileNameHint(t *testing.T) {
	c := &fakeContainer{
		spine: []services.Item{
			staticItem("a", "body01.xhtml", services.ItemDocument,
				`<html><body><p>x</p></body></html>`),
			staticItem("b", "body02.xhtml", services.ItemDocument,
				`<html><body><p>x</p></body></html>`),
		},
	}

	entries := NewExtractor(config.Default()).Extract(c, "es")

	require.Len(t, entries, 2)
	assert.Equal(t, "Capítulo 1", entries[0].Title)
	assert.Equal(t, "Capítulo 2", entries[1].Title)
}

func TestExtract_BrokenNavigationFallsBackToSpine(t *testing.T) {
	c := &fakeContainer{
		items: []services.Item{
			staticItem("ncx", "toc.ncx", services.ItemNavigation, `<ncx><navMap><navPoint>`),
		},
		spine: []services.Item{
			staticItem("s1", "section1.xhtml", services.ItemDocument,
				`<html><body><h1>1</h1></body></html>`),
		},
	}

	entries := NewExtractor(config.Default()).Extract(c, "es")

	require.Len(t, entries, 1)
	assert.Equal(t, "Capítulo 1", entries[0].Title)
	assert.Equal(t, 0, entries[0].Order, "spine fallback restarts ordering from zero")
}

func TestExtract_NCXWithNoUsablePointsFallsBack(t *testing.T) {
	empty := `<?xml version="1.0"?><ncx xmlns="http://www.daisy.org/z3986/2005/ncx/"><navMap/></ncx>`
	c := &fakeContainer{
		items: []services.Item{
			staticItem("ncx", "toc.ncx", services.ItemNavigation, empty),
		},
		spine: []services.Item{
			staticItem("s1", "section1.xhtml", services.ItemDocument,
				`<html><body><h1>Uno</h1></body></html>`),
		},
	}

	entries := NewExtractor(config.Default()).Extract(c, "es")

	require.Len(t, entries, 1)
	assert.Equal(t, "Uno", entries[0].Title)
}
