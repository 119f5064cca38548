package awards

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/config"
)

// patterns holds the compiled win-phrase shapes. All three operate on
// lowercased, cleaned text:
//
//	suffix:      best <words...> <win-verb>        ("best score goes to ...")
//	prefixStart: <win-verb> [modifier] best <words...>
//	prefixEnd:   <win-verb> [modifier] <words...> award
type patterns struct {
	suffix      *regexp.Regexp
	prefixStart *regexp.Regexp
	prefixEnd   *regexp.Regexp
}

// alternation joins a vocabulary into a regex alternation, preserving
// order so that longer entries ("the award for") win over their own
// prefixes ("the").
func alternation(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return strings.Join(quoted, "|")
}

func compilePatterns(cfg config.Awards) (*patterns, error) {
	// apostrophes, ampersands, periods and hyphens stay inside award
	// words ("cecil b. demille", "mini-series")
	const word = `[a-z0-9'&.-]+`

	start := `(?:` + alternation(cfg.StartWords) + `)`
	end := `(?:` + alternation(cfg.EndWords) + `)`
	suffixVerbs := `(?:` + alternation(cfg.SuffixVerbs) + `)`
	prefixVerbs := `(?:` + alternation(cfg.PrefixVerbs) + `)`

	mods := ``
	if len(cfg.PrefixModifiers) > 0 {
		mods = `(?:(?:` + alternation(cfg.PrefixModifiers) + `) )?`
	}

	suffix, err := regexp.Compile(`\b(` + start + `(?: ` + word + `)+?),? ` + suffixVerbs + `\b`)
	if err != nil {
		return nil, fmt.Errorf("compile suffix pattern: %w", err)
	}
	prefixStart, err := regexp.Compile(`\b` + prefixVerbs + ` ` + mods + `(` + start + `(?: ` + word + `)+)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile prefix pattern: %w", err)
	}
	prefixEnd, err := regexp.Compile(`\b` + prefixVerbs + ` ` + mods + `((?:` + word + ` )+?` + end + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile prefix award pattern: %w", err)
	}

	return &patterns{suffix: suffix, prefixStart: prefixStart, prefixEnd: prefixEnd}, nil
}

var danglingWords = map[string]struct{}{
	"at": {}, "for": {}, "a": {}, "an": {}, "or": {}, "and": {},
}

var bareArticles = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
}

// cleanSpan normalizes a captured award-name span. Ceremony-name
// suffixes after " at " are dropped; coordinated spans (" and ") and
// spans that end on a dangling function word or open with a bare
// article are ambiguous and discarded outright.
func cleanSpan(span string) string {
	if i := strings.Index(span, " at "); i >= 0 {
		span = span[:i]
	}
	if strings.Contains(span, " and ") {
		return ""
	}
	words := strings.Fields(span)
	if len(words) == 0 {
		return ""
	}
	if _, ok := danglingWords[words[len(words)-1]]; ok {
		return ""
	}
	if _, ok := bareArticles[words[0]]; ok {
		return ""
	}
	return strings.Join(words, " ")
}
