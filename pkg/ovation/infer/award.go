// Package infer guesses winners, nominees, hosts and presenters for a
// fixed award list by tallying recognized entities over filtered
// messages. All answers are best-effort; when the corpus offers no
// qualifying evidence the package answers with an explicit sentinel
// instead of omitting the award.
package infer

import (
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/lexicon"
	"github.com/ovationhq/ovation/pkg/ovation/normalize"
)

// functionWords never count as award keywords.
var functionWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "by": {}, "in": {}, "for": {},
	"of": {}, "to": {}, "or": {}, "and": {}, "any": {},
}

// Award is one official award prepared for inference: its normalized
// keyword tokens, whether it goes to a person or a work, and the
// tripwords that flag a message as referring to a sibling award.
type Award struct {
	Name      string
	Keywords  []string
	People    bool
	Tripwords []string
}

// BuildAwards derives keywords and tripwords for the official award
// list. Keywords are lowercased, symbol-stripped, alias-normalized and
// cleared of function words; an award is a "people" award when any
// keyword matches a configured person marker.
func BuildAwards(names []string, lex *lexicon.Lexicon, personMarkers []string) []*Award {
	awards := make([]*Award, 0, len(names))
	for _, name := range names {
		kw := keywords(name, lex)
		awards = append(awards, &Award{
			Name:     name,
			Keywords: kw,
			People:   isPeopleAward(kw, personMarkers),
		})
	}
	for _, a := range awards {
		a.Tripwords = tripwords(a, awards)
	}
	return awards
}

func keywords(name string, lex *lexicon.Lexicon) []string {
	var kw []string
	seen := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(name)) {
		w = normalize.ToAlphanumeric(w)
		if w == "" {
			continue
		}
		if _, ok := functionWords[w]; ok {
			continue
		}
		w = lex.Normalize(w)
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		kw = append(kw, w)
	}
	return kw
}

func isPeopleAward(kw []string, markers []string) bool {
	for _, w := range kw {
		for _, m := range markers {
			if w == m {
				return true
			}
		}
	}
	return false
}

// tripwords collects, for every sibling award whose keyword overlap
// with this one exceeds half of either side's keyword count, the
// sibling keywords this award does not share. Their presence in a
// message argues the message is about the sibling.
func tripwords(a *Award, all []*Award) []string {
	own := make(map[string]struct{}, len(a.Keywords))
	for _, w := range a.Keywords {
		own[w] = struct{}{}
	}

	var trips []string
	seen := make(map[string]struct{})
	for _, b := range all {
		if b == a {
			continue
		}
		overlap := 0
		for _, w := range b.Keywords {
			if _, ok := own[w]; ok {
				overlap++
			}
		}
		if overlap*2 <= len(a.Keywords) && overlap*2 <= len(b.Keywords) {
			continue
		}
		for _, w := range b.Keywords {
			if _, ok := own[w]; ok {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			trips = append(trips, w)
		}
	}
	return trips
}
