package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectorlabs/lector/index"
	"github.com/lectorlabs/lector/model"
)

func buildIndex() *index.BookIndex {
	bi := index.NewBookIndex()
	// "correr" family: corre x2, corren x1. "perro" family: perro x2.
	bi.Add("corre", "correr", "corre", "a_0", "a", 0)
	bi.Add("perro", "perro", "perro", "a_0", "a", 1)
	bi.Add("corren", "correr", "corren", "a_1", "a", 0)
	bi.Add("perro", "perro", "Perro", "a_1", "a", 1)
	bi.Add("corre", "correr", "Corre", "b_0", "b", 0)
	return bi
}

func TestWordFamilies(t *testing.T) {
	families := WordFamilies(buildIndex())

	require.Len(t, families, 2)

	correr := families["correr"]
	assert.Equal(t, []string{"corre", "corren"}, correr.Forms, "forms keep first-seen order")
	assert.Equal(t, 3, correr.TotalOccurrences)
	assert.Equal(t, 2, correr.UniqueForms)

	perro := families["perro"]
	assert.Equal(t, []string{"perro"}, perro.Forms)
	assert.Equal(t, 2, perro.TotalOccurrences)
	assert.Equal(t, 1, perro.UniqueForms)
}

func TestWordFamilies_EmptyIndex(t *testing.T) {
	families := WordFamilies(index.NewBookIndex())
	assert.Empty(t, families)
}

func TestWordFrequencies_DescendingByCount(t *testing.T) {
	entries := WordFrequencies(buildIndex())

	require.Len(t, entries, 3)
	assert.Equal(t, model.FrequencyEntry{Key: "corre", Count: 2}, entries[0])
	assert.Equal(t, model.FrequencyEntry{Key: "perro", Count: 2}, entries[1])
	assert.Equal(t, model.FrequencyEntry{Key: "corren", Count: 1}, entries[2])
}

func TestWordFrequencies_TiesKeepFirstSeenOrder(t *testing.T) {
	bi := index.NewBookIndex()
	bi.Add("beta", "beta", "beta", "a_0", "a", 0)
	bi.Add("alfa", "alfa", "alfa", "a_0", "a", 1)
	bi.Add("gamma", "gamma", "gamma", "a_0", "a", 2)

	entries := WordFrequencies(bi)

	require.Len(t, entries, 3)
	assert.Equal(t, "beta", entries[0].Key)
	assert.Equal(t, "alfa", entries[1].Key)
	assert.Equal(t, "gamma", entries[2].Key)
}

func TestLemmaFrequencies(t *testing.T) {
	entries := LemmaFrequencies(buildIndex())

	require.Len(t, entries, 2)
	assert.Equal(t, model.FrequencyEntry{Key: "correr", Count: 3}, entries[0])
	assert.Equal(t, model.FrequencyEntry{Key: "perro", Count: 2}, entries[1])
}
