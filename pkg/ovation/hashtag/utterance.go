package hashtag

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/normalize"
)

// Utterance records how a canonical hashtag shows up as a natural
// language phrase in free text, with spacing and punctuation resolved.
type Utterance struct {
	Tag      string         // canonical lowercase tag
	Top      string         // most frequent phrase form
	Forms    map[string]int // phrase form -> occurrences
	Total    int            // sum over all forms
	TagTotal int            // occurrences of the tag family as hashtags
}

// UtteranceSet is the result of one corpus scan.
type UtteranceSet struct {
	Awards  []Utterance // award-shaped tags that verify as phrases
	General []Utterance // general concepts corroborated by utterances
}

// ScanUtterances searches the corpus for natural language forms of the
// canonicalizer's concepts. Reposts are skipped so that volume comes
// from unique messages, and only messages mentioning an award word are
// considered. Concepts whose hashtag and utterance rates diverge past
// the keep ratio are dropped as hashtag-only (or text-only) artifacts.
func (p *Parser) ScanUtterances(msgs []corpus.Message, canon *Canonicalizer) UtteranceSet {
	opts := normalize.Options{StripMentions: true, StripLinks: true}

	seen := make(map[string]struct{})
	var filtered []string
	for _, m := range msgs {
		if m.IsQuote() || m.IsRetweet() {
			continue
		}
		t := strings.ToLower(m.Text)
		if !containsAnyOf(t, p.startWords) && !containsAnyOf(t, p.endWords) {
			continue
		}
		t = normalize.Clean(t, opts)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		filtered = append(filtered, t)
	}

	// join once; the per-concept regex then runs over a single string
	joined := " " + strings.Join(filtered, " ~ ") + " "
	reducedParts := make([]string, len(filtered))
	for i, t := range filtered {
		reducedParts[i] = normalize.ToAlphanumeric(t)
	}
	reduced := strings.Join(reducedParts, "~")

	var set UtteranceSet

	for _, ac := range canon.AwardTags() {
		if !strings.Contains(reduced, ac.Key) {
			continue
		}
		forms, total := countUtterances(ac.Key, joined)
		if total == 0 {
			continue
		}
		top := topForm(forms)
		if strings.HasPrefix(top, "best of") {
			continue
		}
		if !hasAnyPrefix(top, p.startWords) && !hasAnySuffix(top, p.endWords) {
			continue
		}
		set.Awards = append(set.Awards, Utterance{
			Tag:      ac.Key,
			Top:      top,
			Forms:    forms,
			Total:    total,
			TagTotal: p.casedTotal(ac.Key),
		})
	}

	for _, gc := range canon.Concepts() {
		if !strings.Contains(reduced, gc.Key) {
			continue
		}
		forms, total := countUtterances(gc.Key, joined)
		if total == 0 {
			continue
		}
		tagTotal := p.casedTotal(append([]string{gc.Key}, gc.Children...)...)
		if total < p.cfg.FrequentUtteranceThreshold && tagTotal < p.cfg.FrequentThreshold {
			continue
		}
		if tagTotal > 0 && total > tagTotal*p.cfg.UtteranceKeepRatio {
			continue
		}
		if tagTotal > (total+1)*p.cfg.UtteranceKeepRatio {
			continue
		}
		set.General = append(set.General, Utterance{
			Tag:      gc.Key,
			Top:      topForm(forms),
			Forms:    forms,
			Total:    total,
			TagTotal: tagTotal,
		})
	}

	sortUtterances(set.Awards)
	sortUtterances(set.General)
	return set
}

// countUtterances matches a tag against text with any spacing or
// symbols allowed between its characters, so "bestdirector" finds
// "best director", "best-director" and "best. director".
func countUtterances(tag string, joined string) (map[string]int, int) {
	var sb strings.Builder
	sb.WriteString(` (`)
	for i := 0; i < len(tag); i++ {
		sb.WriteByte(tag[i])
		if i < len(tag)-1 {
			sb.WriteString(`[^\w~]*`)
		}
	}
	sb.WriteString(`\.?)[.,)(\-"'!:;]? `)
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, 0
	}

	forms := make(map[string]int)
	total := 0
	for _, m := range re.FindAllStringSubmatch(joined, -1) {
		forms[m[1]]++
		total++
	}
	return forms, total
}

// casedTotal sums raw occurrences over every casing of the given
// lowercase tags.
func (p *Parser) casedTotal(tags ...string) int {
	want := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		want[t] = struct{}{}
	}
	total := 0
	for cased, freq := range p.rawCounts {
		if _, ok := want[strings.ToLower(cased)]; ok {
			total += freq
		}
	}
	return total
}

func topForm(forms map[string]int) string {
	best := ""
	bestFreq := -1
	for form, freq := range forms {
		if freq > bestFreq || (freq == bestFreq && form < best) {
			best = form
			bestFreq = freq
		}
	}
	return best
}

func sortUtterances(list []Utterance) {
	sort.SliceStable(list, func(i, j int) bool {
		si, sj := list[i].Total+list[i].TagTotal, list[j].Total+list[j].TagTotal
		if si != sj {
			return si > sj
		}
		return list[i].Tag < list[j].Tag
	})
}

func containsAnyOf(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(s, w+" ") {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, words []string) bool {
	for _, w := range words {
		if strings.HasSuffix(s, " "+w) {
			return true
		}
	}
	return false
}
