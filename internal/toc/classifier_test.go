package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lectorlabs/lector/config"
	"github.com/lectorlabs/lector/model"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(config.Default())

	tests := []struct {
		name     string
		fileName string
		title    string
		want     model.SectionType
	}{
		{"front matter filename keyword", "cubierta.xhtml", "", model.SectionFrontMatter},
		{"front matter keyword inside filename", "005_dedicatoria.xhtml", "", model.SectionFrontMatter},
		{"back matter filename keyword", "notas_finales.xhtml", "", model.SectionBackMatter},
		{"front matter exact title", "005.xhtml", "Mapa", model.SectionFrontMatter},
		{"front matter title is exact, not substring", "005.xhtml", "Mapa del tesoro", model.SectionChapter},
		{"chapter filename pattern", "section12.xhtml", "", model.SectionChapter},
		{"default is chapter", "body03.xhtml", "El viaje", model.SectionChapter},
		{"case insensitive filename", "CUBIERTA.XHTML", "", model.SectionFrontMatter},
		{"case insensitive title", "005.xhtml", "  MAPA  ", model.SectionFrontMatter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.fileName, tt.title))
		})
	}
}

func TestClassifier_FilenameKeywordBeatsTitle(t *testing.T) {
	classifier := NewClassifier(config.Default())

	// A back-matter filename wins even when the title looks like front matter.
	got := classifier.Classify("notas.xhtml", "mapa")
	assert.Equal(t, model.SectionBackMatter, got)
}

func TestClassifier_FormatChapterTitle(t *testing.T) {
	classifier := NewClassifier(config.Default())

	tests := []struct {
		title    string
		language string
		want     string
	}{
		{"5", "es", "Capítulo 5"},
		{" 12 ", "es", "Capítulo 12"},
		{"3", "en", "Chapter 3"},
		{"7", "fr", "Chapitre 7"},
		{"7", "de", "Chapter 7"}, // unconfigured language falls back to the default
		{"El viaje", "es", "El viaje"},
		{"Capítulo 5", "es", "Capítulo 5"},
		{"", "es", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classifier.FormatChapterTitle(tt.title, tt.language),
			"title %q language %q", tt.title, tt.language)
	}
}
