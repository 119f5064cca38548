package awards

import (
	"sort"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/hashtag"
	"github.com/ovationhq/ovation/pkg/ovation/normalize"
)

// fillerWords are dropped when computing a phrase's significant
// word-set; they never distinguish one award from another.
var fillerWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "in": {}, "for": {},
	"by": {}, "to": {}, "at": {}, "on": {},
}

// consolidateOptions parameterizes one consolidation round. The
// relaxed round merges on textual equivalence only; the strict round
// adds top-hashtag corroboration floors and subset merging.
type consolidateOptions struct {
	minFrequency int

	// relaxed round
	stopChunks map[string]struct{}

	// strict round
	corroborate     bool
	minTagGlobal    int
	minPhraseTotal  int
	minCoOccurrence int
	tagFrequency    func(tag string) int
}

// Consolidate collapses the harvested candidates into a ranked award
// list: a relaxed round merges textual near-duplicates above the
// capture threshold, then a strict round re-filters against the higher
// threshold with hashtag corroboration. stopChunks come from the
// canonicalizer's ceremony-brand stopwords; tagFrequency resolves a
// canonical hashtag's global occurrence count.
func (e *Extractor) Consolidate(cands []*Candidate, canon *hashtag.Canonicalizer, tagFrequency func(string) int) []*Candidate {
	stopChunks := make(map[string]struct{})
	for _, chunk := range canon.StopwordChunks() {
		stopChunks[chunk] = struct{}{}
	}

	kept := e.consolidate(cands, consolidateOptions{
		minFrequency: e.cfg.CaptureThreshold,
		stopChunks:   stopChunks,
	})
	return e.consolidate(kept, consolidateOptions{
		minFrequency:    e.cfg.FilterThreshold,
		corroborate:     true,
		minTagGlobal:    e.cfg.MinTagGlobal,
		minPhraseTotal:  e.cfg.MinPhraseTotal,
		minCoOccurrence: e.cfg.MinCoOccurrence,
		tagFrequency:    tagFrequency,
	})
}

func (e *Extractor) consolidate(cands []*Candidate, opt consolidateOptions) []*Candidate {
	sortCandidates(cands)

	var kept []*Candidate
	acceptable := make(map[string]struct{})

	for _, cand := range cands {
		if cand.Frequency < opt.minFrequency {
			continue
		}

		if !opt.corroborate {
			if containsStopChunk(cand.Phrase, opt.stopChunks) {
				continue
			}
			cand.Phrase = strings.TrimRight(cand.Phrase, ",.")
		}

		words := e.wordSet(cand.Phrase)
		if !opt.corroborate && len(words) < 2 {
			continue
		}

		if opt.corroborate && !e.corroborated(cand, opt) {
			continue
		}

		merged := false
		for _, acc := range kept {
			accWords := e.wordSet(acc.Phrase)
			if !opt.corroborate {
				if normalize.ToAlphanumeric(cand.Phrase) == normalize.ToAlphanumeric(acc.Phrase) ||
					sameSet(words, accWords) {
					absorb(acc, cand)
					merged = true
					break
				}
				continue
			}

			sub := isSubset(words, accWords)
			sup := isSubset(accWords, words)
			if !sub && !sup {
				continue
			}
			diff := diffKey(words, accWords)
			if !hashtagRelated(cand, acc) {
				// genuinely distinct awards can differ by exactly this
				// word-set from now on
				acceptable[diff] = struct{}{}
				continue
			}
			if sub && !sup {
				if _, ok := acceptable[diff]; !ok {
					// the earlier, more frequent phrase keeps the more
					// specific string; the general variant folds in
					absorb(acc, cand)
					merged = true
					break
				}
			}
			// candidate is the more general superset: both survive
		}
		if !merged {
			kept = append(kept, cand)
		}
	}
	return kept
}

// corroborated applies the strict-round top-hashtag filters: a phrase
// whose hashtag evidence is a single message, a single dominant tag, a
// globally rare tag, or too thin overall is rejected.
func (e *Extractor) corroborated(cand *Candidate, opt consolidateOptions) bool {
	topTag, topCount := topHashtag(cand)
	if topTag == "" || topCount == 1 {
		return false
	}
	if topCount*10 >= cand.Frequency*9 {
		return false
	}
	if opt.tagFrequency != nil && opt.tagFrequency(topTag) < opt.minTagGlobal {
		return false
	}
	if cand.Frequency < opt.minPhraseTotal && topCount < opt.minCoOccurrence {
		return false
	}
	return true
}

// wordSet reduces a phrase to its significant, alias-normalized words.
func (e *Extractor) wordSet(phrase string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(phrase) {
		w = normalize.ToAlphanumeric(w)
		if w == "" {
			continue
		}
		if _, ok := fillerWords[w]; ok {
			continue
		}
		set[e.lex.Normalize(w)] = struct{}{}
	}
	return set
}

// hashtagRelated reports whether two candidates share hashtag evidence:
// the same top tag, or either one's top tag inside the other's set.
func hashtagRelated(a, b *Candidate) bool {
	at, _ := topHashtag(a)
	bt, _ := topHashtag(b)
	if at != "" && at == bt {
		return true
	}
	if _, ok := b.Hashtags[at]; ok && at != "" {
		return true
	}
	if _, ok := a.Hashtags[bt]; ok && bt != "" {
		return true
	}
	return false
}

// topHashtag picks the most frequent co-occurring tag, ties broken
// lexicographically.
func topHashtag(cand *Candidate) (string, int) {
	best := ""
	bestCount := 0
	for tag, count := range cand.Hashtags {
		if count > bestCount || (count == bestCount && (best == "" || tag < best)) {
			best = tag
			bestCount = count
		}
	}
	return best, bestCount
}

func absorb(dst, src *Candidate) {
	dst.Frequency += src.Frequency
	for tag, count := range src.Hashtags {
		dst.Hashtags[tag] += count
	}
}

func containsStopChunk(phrase string, chunks map[string]struct{}) bool {
	padded := " " + phrase + " "
	for chunk := range chunks {
		if strings.Contains(padded, " "+chunk+" ") {
			return true
		}
	}
	return false
}

func sortCandidates(cands []*Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Frequency != cands[j].Frequency {
			return cands[i].Frequency > cands[j].Frequency
		}
		return cands[i].Phrase < cands[j].Phrase
	})
}

func sameSet(a, b map[string]struct{}) bool {
	return len(a) == len(b) && isSubset(a, b)
}

func isSubset(a, b map[string]struct{}) bool {
	for w := range a {
		if _, ok := b[w]; !ok {
			return false
		}
	}
	return true
}

// diffKey is the sorted symmetric word-set difference, used as the
// memory key for acceptable distinguishing variations.
func diffKey(a, b map[string]struct{}) string {
	var diff []string
	for w := range a {
		if _, ok := b[w]; !ok {
			diff = append(diff, w)
		}
	}
	for w := range b {
		if _, ok := a[w]; !ok {
			diff = append(diff, w)
		}
	}
	sort.Strings(diff)
	return strings.Join(diff, " ")
}
