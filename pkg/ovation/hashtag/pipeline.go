package hashtag

import (
	"sort"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/normalize"
)

// Parser orchestrates the hashtag filter pipeline: it aggregates raw
// cased tags across the corpus, then feeds survivors of the frequency,
// length, stopword and ASCII filters into a Canonicalizer.
type Parser struct {
	cfg        config.Hashtags
	startWords []string
	endWords   []string

	rawCounts map[string]int // exact casing -> occurrences
	total     int
}

// NewParser creates a parser with thresholds and the award-shape
// vocabulary from config.
func NewParser(cfg config.Hashtags, awards config.Awards) *Parser {
	return &Parser{
		cfg:        cfg,
		startWords: awards.StartWords,
		endWords:   awards.EndWords,
		rawCounts:  make(map[string]int),
	}
}

// Count tallies every raw hashtag occurrence in the messages, keyed by
// exact casing.
func (p *Parser) Count(msgs []corpus.Message) {
	for _, m := range msgs {
		for _, tag := range FromText(m.Text) {
			p.rawCounts[tag]++
		}
	}
}

// RawCounts exposes the cased-tag frequency table.
func (p *Parser) RawCounts() map[string]int {
	return p.rawCounts
}

// Total returns the number of hashtag occurrences seen so far.
func (p *Parser) Total() int {
	total := 0
	for _, freq := range p.rawCounts {
		total += freq
	}
	return total
}

// uncasedEntry aggregates one lowercase tag over all its casings.
type uncasedEntry struct {
	tag       string
	frequency int
	casings   map[string]int
}

// aggregate folds cased counts into lowercase entries sorted by
// frequency descending (ties lexicographic, for determinism).
func (p *Parser) aggregate() []uncasedEntry {
	byTag := make(map[string]*uncasedEntry)
	p.total = 0
	for cased, freq := range p.rawCounts {
		tag := strings.ToLower(cased)
		e, ok := byTag[tag]
		if !ok {
			e = &uncasedEntry{tag: tag, casings: make(map[string]int)}
			byTag[tag] = e
		}
		e.frequency += freq
		e.casings[cased] += freq
		p.total += freq
	}

	entries := make([]uncasedEntry, 0, len(byTag))
	for _, e := range byTag {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].frequency != entries[j].frequency {
			return entries[i].frequency > entries[j].frequency
		}
		return entries[i].tag < entries[j].tag
	})
	return entries
}

// dominantCasing picks the most frequent casing of a tag (ties
// lexicographic).
func dominantCasing(casings map[string]int) string {
	best := ""
	bestFreq := -1
	for cased, freq := range casings {
		if freq > bestFreq || (freq == bestFreq && cased < best) {
			best = cased
			bestFreq = freq
		}
	}
	return best
}

func (p *Parser) isAwardShaped(tag string) bool {
	for _, w := range p.startWords {
		if strings.HasPrefix(tag, w) {
			return true
		}
	}
	for _, w := range p.endWords {
		if strings.HasSuffix(tag, w) {
			return true
		}
	}
	return false
}

// Canonicalize runs the per-tag decision sequence over the aggregated
// tags in descending frequency order, resolves deferred all-uppercase
// abbreviations, and prunes absorbed concepts.
func (p *Parser) Canonicalize() *Canonicalizer {
	canon := NewCanonicalizer()
	entries := p.aggregate()

	var deferred []Deferred
	for _, e := range entries {
		cased := dominantCasing(e.casings)

		if isAllUpper(cased) {
			// abbreviations resolve after the full concept table exists
			if canon.isStopwordAbbr(e.tag) {
				continue
			}
			if e.frequency < p.cfg.InfrequentThreshold {
				continue
			}
			deferred = append(deferred, Deferred{Tag: e.tag, Frequency: e.frequency})
			continue
		}
		if isAllLower(cased) {
			// mainly-lowercase tags carry no casing signal; treat as noise
			continue
		}

		rep := SplitCased(cased)

		if float64(e.frequency) >= float64(p.total)*p.cfg.StopwordProportion {
			canon.AddStopword(e.tag, rep)
			continue
		}

		if p.isAwardShaped(e.tag) {
			canon.AddAward(e.tag, e.frequency, rep)
			continue
		}

		if e.frequency < p.cfg.InfrequentThreshold {
			continue
		}
		if !normalize.IsASCII(e.tag) {
			continue
		}

		stopworded := false
		for _, chunk := range rep.Chunks {
			if canon.isStopwordChunk(chunk) {
				stopworded = true
				break
			}
		}
		if stopworded || canon.nearStopword(e.tag) {
			continue
		}

		if e.frequency > p.cfg.FrequentThreshold {
			if len(e.tag) < p.cfg.FrequentLenMin {
				continue
			}
		} else if len(e.tag) < p.cfg.InfrequentLenMin {
			continue
		}

		canon.AddGeneral(e.tag, e.frequency, rep)
	}

	canon.ResolveAbbreviations(deferred)
	canon.Finalize()
	return canon
}
