package epub

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lectorlabs/lector/services"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		href      string
		mediaType string
		inSpine   bool
		want      services.ItemType
	}{
		{"ncx navigation", "toc.ncx", "application/x-dtbncx+xml", false, services.ItemNavigation},
		{"jpeg image", "Images/cover.jpg", "image/jpeg", false, services.ItemImage},
		{"png image", "img/fig1.png", "image/png", false, services.ItemImage},
		{"stylesheet", "Styles/style.css", "text/css", false, services.ItemStylesheet},
		{"spine document", "Text/section1.xhtml", "application/xhtml+xml", true, services.ItemDocument},
		{"html document", "ch1.html", "text/html", true, services.ItemDocument},
		{"out-of-spine nav.xhtml", "Text/nav.xhtml", "application/xhtml+xml", false, services.ItemNavigation},
		{"out-of-spine toc.html", "toc.html", "text/html", false, services.ItemNavigation},
		{"in-spine nav name stays a document", "Text/nav.xhtml", "application/xhtml+xml", true, services.ItemDocument},
		{"out-of-spine regular document", "Text/extra.xhtml", "application/xhtml+xml", false, services.ItemDocument},
		{"font", "Fonts/serif.ttf", "font/ttf", false, services.ItemOther},
		{"javascript", "js/app.js", "text/javascript", false, services.ItemOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.href, tt.mediaType, tt.inSpine))
		})
	}
}

func TestLooksLikeNav(t *testing.T) {
	assert.True(t, looksLikeNav("nav.xhtml"))
	assert.True(t, looksLikeNav("OEBPS/TOC.xhtml"), "matching is case insensitive")
	assert.True(t, looksLikeNav("oebps/toc.xhtml"))
	assert.True(t, looksLikeNav("navigation.html"))
	assert.False(t, looksLikeNav("navigate.xhtml"))
	assert.False(t, looksLikeNav("chapter-nav-notes.xhtml"))
}

func TestContainerMetadataLookup(t *testing.T) {
	c := &Container{metadata: map[string][]string{}}
	c.addMetadata("title", "El Gran Viaje")
	c.addMetadata("title", "Segundo Título")
	c.addMetadata("creator", "   ")

	assert.Equal(t, []string{"El Gran Viaje", "Segundo Título"}, c.Metadata("DC", "Title"))
	assert.Empty(t, c.Metadata("DC", "creator"), "blank values are not recorded")
	assert.Empty(t, c.Metadata("DC", "publisher"))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open("/no/such/book.epub")
	assert.Error(t, err)
}
