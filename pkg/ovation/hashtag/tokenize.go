// Package hashtag resolves noisy hashtag variants into canonical
// concepts. It extracts raw tags from messages, parses their casing
// into word chunks and abbreviation candidates, and clusters variants
// by edit distance, abbreviation overlap, and subset/superset shape.
package hashtag

import (
	"regexp"
	"strings"
)

var (
	tagRe       = regexp.MustCompile(`#[A-Za-z0-9]+`)
	truncatedRe = regexp.MustCompile(`#[A-Za-z0-9]+(\.{3}|…)`)

	upperRunRe    = regexp.MustCompile(`[A-Z]+`)
	capWordRe     = regexp.MustCompile(`[A-Z][a-z]+`)
	letterDigitRe = regexp.MustCompile(`([A-Za-z])([0-9])`)
	digitLetterRe = regexp.MustCompile(`([0-9])([A-Za-z])`)
	digitRe       = regexp.MustCompile(`[0-9]`)
	nonAlphaRe    = regexp.MustCompile(`[^A-Za-z]`)
)

// FromText returns every #tag token in a message, with the leading '#'
// removed. Tags truncated by an ellipsis marker are dropped.
func FromText(text string) []string {
	text = truncatedRe.ReplaceAllString(text, "")
	matches := tagRe.FindAllString(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.TrimPrefix(m, "#"))
	}
	return tags
}

// Representation is the casing parse of one hashtag: its lowercase word
// chunks and up to three abbreviation candidates.
type Representation struct {
	Chunks        []string
	Abbreviations []string
}

// splitCased breaks a cased tag into word chunks: a boundary before
// each run of uppercase letters, before each Capitalized word, and
// between letter/digit transitions.
func splitCased(s string) []string {
	s = upperRunRe.ReplaceAllString(s, " $0")
	s = capWordRe.ReplaceAllString(s, " $0")
	s = letterDigitRe.ReplaceAllString(s, "$1 $2")
	s = digitLetterRe.ReplaceAllString(s, "$1 $2")
	return strings.Fields(s)
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return false
		}
		if r >= 'a' && r <= 'z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// SplitCased parses a cased hashtag into lowercase chunks and derives
// abbreviation candidates:
//   - first letter of each chunk, keeping all-uppercase chunks whole so
//     embedded acronyms survive ("OITNBFinale" -> "oitnbf")
//   - the same with digits stripped, when the tag carries non-letters
//   - first letters excluding the final chunk, when that chunk is an
//     all-uppercase trailing acronym ("ReddmayneGG" -> "r")
func SplitCased(cased string) Representation {
	casedChunks := splitCased(cased)

	chunks := make([]string, len(casedChunks))
	var full strings.Builder
	for i, c := range casedChunks {
		chunks[i] = strings.ToLower(c)
		if isAllUpper(c) {
			full.WriteString(chunks[i])
		} else {
			full.WriteByte(chunks[i][0])
		}
	}

	abbrs := []string{full.String()}
	if nonAlphaRe.MatchString(cased) {
		abbrs = append(abbrs, digitRe.ReplaceAllString(abbrs[0], ""))
	}
	if len(casedChunks) > 1 && isAllUpper(casedChunks[len(casedChunks)-1]) {
		var head strings.Builder
		for _, c := range chunks[:len(chunks)-1] {
			head.WriteByte(c[0])
		}
		abbrs = append(abbrs, head.String())
	}

	return Representation{Chunks: chunks, Abbreviations: dedupe(abbrs)}
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
