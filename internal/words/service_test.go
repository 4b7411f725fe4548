package words

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectorlabs/lector/internal/errors"
	"github.com/lectorlabs/lector/internal/persistence"
	"github.com/lectorlabs/lector/model"
)

func writeTestData(t *testing.T) string {
	t.Helper()
	dataDir := t.TempDir()

	lemmaIndex := map[string][]model.LemmaOccurrence{
		"correr": {
			{ParagraphID: "a_0", Position: 2, File: "a", Word: "corre", Original: "corre"},
			{ParagraphID: "a_0", Position: 9, File: "a", Word: "corre", Original: "Corre"},
			{ParagraphID: "b_0", Position: 0, File: "b", Word: "corren", Original: "corren"},
			{ParagraphID: "missing", Position: 1, File: "b", Word: "corre", Original: "corre"},
		},
	}
	wordToLemma := map[string]string{"corre": "correr", "corren": "correr"}
	families := map[string]model.WordFamily{
		"correr": {Forms: []string{"corre", "corren"}, TotalOccurrences: 4, UniqueForms: 2},
	}
	paragraphs := map[string]model.Paragraph{
		"a_0": {ID: "a_0", Text: "El perro corre por el parque.", File: "a"},
		"b_0": {ID: "b_0", Text: "  Los niños corren.  ", File: "b"},
	}

	for name, object := range map[string]interface{}{
		"lemma_index.json":   lemmaIndex,
		"word_to_lemma.json": wordToLemma,
		"word_families.json": families,
		"paragraphs.json":    paragraphs,
		"word_index.json":    map[string][]model.WordOccurrence{},
	} {
		require.NoError(t, persistence.SaveJSON(filepath.Join(dataDir, name), object))
	}
	return dataDir
}

func TestWordContext(t *testing.T) {
	service, err := Load(writeTestData(t))
	require.NoError(t, err)

	ctx, err := service.WordContext("corren", 10)
	require.NoError(t, err)

	assert.Equal(t, "corren", ctx.Word)
	assert.Equal(t, "correr", ctx.Lemma)
	assert.Equal(t, []string{"corre", "corren"}, ctx.WordForms)
	assert.Equal(t, 4, ctx.TotalOccurrences)

	// Examples deduplicate paragraphs, trim whitespace and skip unknown
	// paragraph IDs.
	assert.Equal(t, []string{
		"El perro corre por el parque.",
		"Los niños corren.",
	}, ctx.Examples)
}

func TestWordContext_MaxExamples(t *testing.T) {
	service, err := Load(writeTestData(t))
	require.NoError(t, err)

	ctx, err := service.WordContext("corre", 1)
	require.NoError(t, err)
	assert.Len(t, ctx.Examples, 1)
}

func TestWordContext_UnknownWord(t *testing.T) {
	service, err := Load(writeTestData(t))
	require.NoError(t, err)

	_, err = service.WordContext("inexistente", 10)
	assert.ErrorIs(t, err, errors.ErrWordNotFound)
}

func TestLoad_MissingArtifactsStartEmpty(t *testing.T) {
	service, err := Load(t.TempDir())
	require.NoError(t, err)

	_, err = service.WordContext("cualquiera", 10)
	assert.ErrorIs(t, err, errors.ErrWordNotFound)
}

func TestSystemPrompt(t *testing.T) {
	prompt := SystemPrompt(&Context{
		Word:      "corre",
		Lemma:     "correr",
		WordForms: []string{"corre", "corren"},
		Examples:  []string{"El perro corre.", "Los niños corren."},
	})

	assert.Contains(t, prompt, `la palabra "correr"`)
	assert.Contains(t, prompt, "corre, corren")
	assert.Contains(t, prompt, "• El perro corre.")
	assert.Contains(t, prompt, "• Los niños corren.")
	assert.Contains(t, prompt, "SOLAMENTE en español")
}

func TestSystemPrompt_SingleFormUsesWord(t *testing.T) {
	prompt := SystemPrompt(&Context{
		Word:      "azul",
		Lemma:     "azul",
		WordForms: []string{"azul"},
	})

	assert.Contains(t, prompt, "(azul)")
}
