package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sample.json")
	in := sample{Name: "perro", Count: 3, Tags: []string{"a", "b"}}

	require.NoError(t, SaveJSON(path, in))

	var out sample
	require.NoError(t, LoadJSON(path, &out))
	assert.Equal(t, in, out)
}

func TestSaveJSON_DoesNotEscapeHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markup.json")
	in := map[string]string{"text": `<span class="word">perro</span>`}

	require.NoError(t, SaveJSON(path, in))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<span")
	assert.NotContains(t, string(data), `\u003c`)
}

func TestSaveJSON_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.json")

	require.NoError(t, SaveJSON(path, sample{Name: "first"}))
	require.NoError(t, SaveJSON(path, sample{Name: "second"}))

	var out sample
	require.NoError(t, LoadJSON(path, &out))
	assert.Equal(t, "second", out.Name)
}

func TestLoadJSON_MissingFile(t *testing.T) {
	var out sample
	err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"), &out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadJSON_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	var out sample
	assert.Error(t, LoadJSON(path, &out))
}
