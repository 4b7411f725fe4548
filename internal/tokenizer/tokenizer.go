// Package tokenizer provides the in-tree tokenizer used by the annotation
// pipeline. It scans text into word and non-word spans and resolves a
// dictionary form for every word through a rule-based Spanish lemmatizer.
package tokenizer

import (
	"strings"
	"unicode"

	"github.com/lectorlabs/lector/services"
)

// Spanish tokenizes text into alphabetic word runs and non-word runs, with
// suffix-rule lemmatization. It implements services.Tokenizer.
type Spanish struct{}

// NewSpanish returns a tokenizer for Spanish text.
func NewSpanish() *Spanish {
	return &Spanish{}
}

// Tokenize scans text into ordered, non-overlapping tokens. Words are
// maximal runs of letters; runs of other non-space characters (punctuation,
// digits, symbols) are reported as non-word tokens. Whitespace is left to
// the caller as inter-token gaps.
func (s *Spanish) Tokenize(text string) []services.Token {
	runes := []rune(text)
	tokens := make([]services.Token, 0)

	i := 0
	for i < len(runes) {
		switch {
		case unicode.IsLetter(runes[i]):
			start := i
			for i < len(runes) && unicode.IsLetter(runes[i]) {
				i++
			}
			surface := string(runes[start:i])
			tokens = append(tokens, services.Token{
				Surface: surface,
				Start:   start,
				Length:  i - start,
				IsWord:  true,
				Lemma:   Lemma(surface),
			})
		case unicode.IsSpace(runes[i]):
			i++
		default:
			start := i
			for i < len(runes) && !unicode.IsLetter(runes[i]) && !unicode.IsSpace(runes[i]) {
				i++
			}
			tokens = append(tokens, services.Token{
				Surface: string(runes[start:i]),
				Start:   start,
				Length:  i - start,
			})
		}
	}
	return tokens
}

// suffixRule rewrites a word ending into a dictionary-form ending. minStem
// is the minimum rune count that must remain before the suffix for the rule
// to apply; it keeps short function words out of the verb rules.
type suffixRule struct {
	suffix      string
	replacement string
	minStem     int
}

// Rules are tried in order; the first applicable rule wins. The table is an
// approximation of Spanish inflection: regular verb forms fold onto their
// infinitive and plural nouns onto their singular. Forms it cannot resolve
// keep themselves as lemma, which is the safe choice for an index keyed by
// lowercased forms.
var suffixRules = []suffixRule{
	{"aciones", "ación", 2},
	{"ciones", "ción", 2},
	{"ándose", "arse", 2},
	{"iéndose", "irse", 2},
	{"ando", "ar", 2},
	{"iendo", "er", 2},
	{"aban", "ar", 2},
	{"aba", "ar", 2},
	{"aron", "ar", 2},
	{"ieron", "er", 2},
	{"ados", "ar", 2},
	{"adas", "ar", 2},
	{"ado", "ar", 2},
	{"ada", "ar", 2},
	{"idos", "er", 2},
	{"idas", "er", 2},
	{"ido", "er", 2},
	{"ida", "er", 2},
	{"ía", "er", 3},
	{"ces", "z", 2},
	{"es", "", 4},
	{"s", "", 3},
	{"en", "er", 3},
	{"e", "er", 3},
	{"an", "ar", 3},
}

// Lemma resolves the dictionary form of a single word. The word is
// lowercased first; the exception table handles irregular verbs and the
// frequent forms the suffix rules would mangle.
func Lemma(word string) string {
	lower := strings.ToLower(word)
	if lemma, ok := exceptions[lower]; ok {
		return lemma
	}
	runes := []rune(lower)
	for _, rule := range suffixRules {
		suffix := []rune(rule.suffix)
		if len(runes) < len(suffix)+rule.minStem {
			continue
		}
		if !strings.HasSuffix(lower, rule.suffix) {
			continue
		}
		return string(runes[:len(runes)-len(suffix)]) + rule.replacement
	}
	return lower
}
