package infer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
)

// namePairRe matches a capitalized first-plus-last name pair in the
// original (cased) message text.
var namePairRe = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)

var yearRe = regexp.MustCompile(`\d{4}`)

var hypotheticalMarkers = []string{"?", "last year", "hope", "hoping", "bet", "betting"}

// Hosts predicts the ceremony's hosts: tally capitalized name pairs
// across messages that mention hosting and read as statements about
// this year's event, and return the top two.
func (in *Inferencer) Hosts(msgs []corpus.Message) []string {
	counts := make(map[string]int)
	var order []string
	for _, m := range msgs {
		lower := strings.ToLower(m.Text)
		if !strings.Contains(lower, "host") || !in.reasonable(lower) {
			continue
		}
		for _, name := range namePairRe.FindAllString(m.Text, -1) {
			name = strings.ToLower(name)
			if _, ok := counts[name]; !ok {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	return topRanked(order, counts, 2)
}

// Presenters predicts who presented an award: messages mentioning
// presenting that carry a majority of the award's keywords, tallied
// for person spans, top two.
func (in *Inferencer) Presenters(award *Award, msgs []corpus.Message) ([]string, error) {
	var qual []corpus.Message
	for _, m := range msgs {
		lower := strings.ToLower(m.Text)
		if !strings.Contains(lower, "present") {
			continue
		}
		words := in.messageWords(lower)
		matched := 0
		for _, kw := range award.Keywords {
			if _, ok := words[kw]; ok {
				matched++
			}
		}
		if matched*2 <= len(award.Keywords) {
			continue
		}
		qual = append(qual, m)
	}
	if len(qual) == 0 {
		return nil, nil
	}

	people := &Award{Name: award.Name, Keywords: award.Keywords, People: true}
	order, counts, err := in.tally(people, qual)
	if err != nil {
		return nil, err
	}
	return topRanked(order, counts, 2), nil
}

// reasonable rejects hypothetical messages (questions, hopes, bets)
// and messages reminiscing about other years' ceremonies.
func (in *Inferencer) reasonable(lower string) bool {
	for _, marker := range hypotheticalMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	years := yearRe.FindAllString(lower, -1)
	if len(years) == 0 {
		return true
	}
	this := strconv.Itoa(in.year)
	prev := strconv.Itoa(in.year - 1)
	for _, y := range years {
		if y == this || y == prev {
			return true
		}
	}
	return false
}

// topRanked returns up to k spans by count, ties broken by
// first-encountered order.
func topRanked(order []string, counts map[string]int, k int) []string {
	ranked := append([]string(nil), order...)
	firstSeen := make(map[string]int, len(order))
	for i, span := range order {
		firstSeen[span] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
