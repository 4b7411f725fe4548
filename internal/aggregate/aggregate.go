// Package aggregate derives word families and frequency rankings from a
// completed index set. Everything here is a pure post-pass: it runs once,
// after the whole document set has been traversed, and never feeds back
// into the indices.
package aggregate

import (
	"sort"

	"github.com/lectorlabs/lector/index"
	"github.com/lectorlabs/lector/model"
)

// WordFamilies rebuilds the family table from the lemma index: for each
// lemma, the distinct surface forms in first-seen order plus aggregate
// counts.
func WordFamilies(idx *index.BookIndex) map[string]model.WordFamily {
	families := make(map[string]model.WordFamily, len(idx.Lemmas))
	for _, lemma := range idx.LemmasInOrder() {
		occurrences := idx.Lemmas[lemma]
		seen := make(map[string]struct{})
		forms := make([]string, 0)
		for _, occ := range occurrences {
			if _, ok := seen[occ.Word]; ok {
				continue
			}
			seen[occ.Word] = struct{}{}
			forms = append(forms, occ.Word)
		}
		families[lemma] = model.WordFamily{
			Forms:            forms,
			TotalOccurrences: len(occurrences),
			UniqueForms:      len(forms),
		}
	}
	return families
}

// WordFrequencies ranks surface forms by occurrence count, descending.
// Ties keep first-seen order.
func WordFrequencies(idx *index.BookIndex) []model.FrequencyEntry {
	entries := make([]model.FrequencyEntry, 0, len(idx.Words))
	for _, word := range idx.WordsInOrder() {
		entries = append(entries, model.FrequencyEntry{Key: word, Count: len(idx.Words[word])})
	}
	sortByCount(entries)
	return entries
}

// LemmaFrequencies ranks lemmas by occurrence count, descending. Ties keep
// first-seen order.
func LemmaFrequencies(idx *index.BookIndex) []model.FrequencyEntry {
	entries := make([]model.FrequencyEntry, 0, len(idx.Lemmas))
	for _, lemma := range idx.LemmasInOrder() {
		entries = append(entries, model.FrequencyEntry{Key: lemma, Count: len(idx.Lemmas[lemma])})
	}
	sortByCount(entries)
	return entries
}

func sortByCount(entries []model.FrequencyEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
}
