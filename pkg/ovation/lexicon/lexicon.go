// Package lexicon maps vocabulary variants to canonical forms so that
// keyword matching is not defeated by common aliases ("tv" vs "television").
package lexicon

import "strings"

// Lexicon stores variant -> canonical word mappings.
type Lexicon struct {
	canonical map[string]string
}

// New builds a lexicon from an alias map (variant -> canonical).
// Keys and values are lowercased.
func New(aliases map[string]string) *Lexicon {
	canonical := make(map[string]string, len(aliases))
	for variant, canon := range aliases {
		canonical[strings.ToLower(variant)] = strings.ToLower(canon)
	}
	return &Lexicon{canonical: canonical}
}

// Normalize returns the canonical form of a word, or the word itself
// when no mapping exists. Safe to call on a nil lexicon.
func (l *Lexicon) Normalize(word string) string {
	if l == nil {
		return word
	}
	if canon, ok := l.canonical[strings.ToLower(word)]; ok {
		return canon
	}
	return word
}

// NormalizeAll maps every word in the slice to its canonical form.
func (l *Lexicon) NormalizeAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = l.Normalize(w)
	}
	return out
}
