// Package awards mines candidate award-name phrases from free text.
// Win-indicating patterns ("best score goes to ...", "... wins best
// director") are harvested across the corpus, each captured phrase is
// counted together with its co-occurring canonical hashtags, and two
// consolidation rounds collapse near-duplicates into a ranked list.
package awards

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/hashtag"
	"github.com/ovationhq/ovation/pkg/ovation/lexicon"
	"github.com/ovationhq/ovation/pkg/ovation/normalize"
)

// Candidate is one hypothesized award name: the literal phrase, how
// often a win pattern produced it, and a frequency-counted set of the
// canonical hashtags it appeared alongside.
type Candidate struct {
	Phrase    string
	Frequency int
	Hashtags  map[string]int
}

// Extractor runs the award-name mining passes.
type Extractor struct {
	cfg config.Awards
	lex *lexicon.Lexicon
	pat *patterns
}

// NewExtractor compiles the win-pattern vocabulary from config.
func NewExtractor(cfg config.Awards, lex *lexicon.Lexicon) (*Extractor, error) {
	pat, err := compilePatterns(cfg)
	if err != nil {
		return nil, fmt.Errorf("award extractor: %w", err)
	}
	return &Extractor{cfg: cfg, lex: lex, pat: pat}, nil
}

// Harvest runs pass one over the corpus: every message containing an
// award word is matched against the win patterns (suffix shape first),
// the captured span is cleaned and counted, and the message's canonical
// hashtags are accumulated onto the phrase. Original messages are
// processed before reposts so that repost volume pads frequencies
// without deciding phrase insertion order.
func (e *Extractor) Harvest(msgs []corpus.Message, canon *hashtag.Canonicalizer) []*Candidate {
	byPhrase := make(map[string]*Candidate)
	var order []string

	originals := make([]corpus.Message, 0, len(msgs))
	var reposts []corpus.Message
	for _, m := range msgs {
		if m.IsRetweet() || m.IsQuote() {
			reposts = append(reposts, m)
		} else {
			originals = append(originals, m)
		}
	}

	opts := normalize.DefaultOptions()
	harvest := func(m corpus.Message) {
		lower := strings.ToLower(m.Text)
		if !containsAny(lower, e.cfg.StartWords) && !containsAny(lower, e.cfg.EndWords) {
			return
		}
		span := e.capture(strings.ToLower(normalize.Clean(m.Text, opts)))
		if span == "" {
			return
		}

		cand, ok := byPhrase[span]
		if !ok {
			cand = &Candidate{Phrase: span, Hashtags: make(map[string]int)}
			byPhrase[span] = cand
			order = append(order, span)
		}
		cand.Frequency++
		for _, tag := range hashtag.FromText(m.Text) {
			if parent, ok := canon.Canonical(strings.ToLower(tag)); ok {
				cand.Hashtags[parent]++
			}
		}
	}

	for _, m := range originals {
		harvest(m)
	}
	for _, m := range reposts {
		harvest(m)
	}

	out := make([]*Candidate, len(order))
	for i, phrase := range order {
		out[i] = byPhrase[phrase]
	}
	return out
}

// capture applies the patterns in priority order. The first pattern
// that matches owns the message; a span its cleaner discards does not
// fall through to later patterns.
func (e *Extractor) capture(text string) string {
	for _, re := range []*regexp.Regexp{e.pat.suffix, e.pat.prefixStart, e.pat.prefixEnd} {
		if m := re.FindStringSubmatch(text); m != nil {
			return cleanSpan(m[1])
		}
	}
	return ""
}

// MergeUtterances folds award-shaped hashtag utterances into the
// candidate pool before consolidation, so an award that circulates
// mostly as a hashtag still competes with pattern-harvested phrases.
func MergeUtterances(cands []*Candidate, utts []hashtag.Utterance) []*Candidate {
	for _, u := range utts {
		key := normalize.ToAlphanumeric(u.Top)
		found := false
		for _, cand := range cands {
			if normalize.ToAlphanumeric(cand.Phrase) == key {
				cand.Frequency += u.Total + u.TagTotal
				cand.Hashtags[u.Tag] += u.TagTotal
				found = true
				break
			}
		}
		if !found {
			cands = append(cands, &Candidate{
				Phrase:    u.Top,
				Frequency: u.Total + u.TagTotal,
				Hashtags:  map[string]int{u.Tag: u.TagTotal},
			})
		}
	}
	return cands
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
