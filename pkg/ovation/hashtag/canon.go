package hashtag

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Concept is one resolved hashtag cluster: a canonical lowercase tag
// plus every variant merged into it.
type Concept struct {
	Key           string
	Frequency     int // aggregate: own tag plus all attached children
	Children      []string
	Abbreviations []string
	Chunks        []string
}

// Canonicalizer clusters lowercase hashtag variants (casing,
// misspelling, abbreviation, subset/superset) into canonical concepts.
// Tags must be added in descending frequency order so that earlier
// entries are always the more frequent parents.
//
// Examples of the linkings it performs:
//   - abbreviation: #oitnb <-> #orangeisthenewblack
//   - edit distance: #keiraknightley <-> #keiraknigthley, #kieraknightley
//   - subset rejection: #amalclooney + #georgeclooney -> drop #clooney
//   - superset linking: #selma <-> #selmamovie, #teamselma, #selma50
type Canonicalizer struct {
	stopwordTags   []string
	stopwordChunks map[string]struct{}
	stopwordAbbrs  []string

	concepts     map[string]*Concept
	conceptOrder []string

	awards     map[string]*Concept
	awardOrder []string

	// parent maps every linked tag to its current canonical key;
	// parentOrder preserves insertion order for deterministic walks.
	parent      map[string]string
	parentOrder []string

	// tagFreq records each tag's own frequency so re-parenting can move
	// exact counts between concepts.
	tagFreq map[string]int
}

// NewCanonicalizer returns an empty canonicalizer.
func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		stopwordChunks: make(map[string]struct{}),
		concepts:       make(map[string]*Concept),
		awards:         make(map[string]*Concept),
		parent:         make(map[string]string),
		tagFreq:        make(map[string]int),
	}
}

// AddStopword registers an overly generic tag; its chunks and
// abbreviations poison future overlap checks.
func (c *Canonicalizer) AddStopword(tag string, rep Representation) {
	c.stopwordTags = append(c.stopwordTags, tag)
	for _, chunk := range rep.Chunks {
		c.stopwordChunks[chunk] = struct{}{}
	}
	c.stopwordAbbrs = append(c.stopwordAbbrs, rep.Abbreviations...)
}

// AddAward registers an award-shaped tag. Award tags bypass
// canonicalization entirely; they are only used later for coarse
// phrase verification.
func (c *Canonicalizer) AddAward(tag string, freq int, rep Representation) {
	if _, ok := c.awards[tag]; ok {
		return
	}
	c.tagFreq[tag] = freq
	c.awards[tag] = &Concept{
		Key:           tag,
		Frequency:     freq,
		Abbreviations: append([]string(nil), rep.Abbreviations...),
		Chunks:        append([]string(nil), rep.Chunks...),
	}
	c.awardOrder = append(c.awardOrder, tag)
}

// AddGeneral offers a surviving tag to the concept table. If linking
// declines to absorb it, the tag becomes a brand-new concept and its
// own parent.
func (c *Canonicalizer) AddGeneral(tag string, freq int, rep Representation) {
	c.tagFreq[tag] = freq
	if !c.attemptLinking(tag, freq, rep) {
		return
	}
	c.concepts[tag] = &Concept{
		Key:           tag,
		Frequency:     freq,
		Abbreviations: dedupe(append([]string(nil), rep.Abbreviations...)),
		Chunks:        append([]string(nil), rep.Chunks...),
	}
	c.conceptOrder = append(c.conceptOrder, tag)
	c.setParent(tag, tag)
}

// editTolerance is the Levenshtein allowance for a tag of this length.
func editTolerance(tag string) int {
	switch {
	case len(tag) < 7:
		return 1
	case len(tag) < 13:
		return 2
	default:
		return 3
	}
}

func (c *Canonicalizer) setParent(tag, parentKey string) {
	if _, ok := c.parent[tag]; !ok {
		c.parentOrder = append(c.parentOrder, tag)
	}
	c.parent[tag] = parentKey
}

// attachChild links a tag under a canonical concept, accumulating its
// frequency and any new abbreviations into the parent.
func (c *Canonicalizer) attachChild(tag string, freq int, abbrs []string, parentKey string) {
	c.setParent(tag, parentKey)
	p := c.concepts[parentKey]
	p.Children = append(p.Children, tag)
	p.Frequency += freq
	for _, a := range abbrs {
		if a != "" && !containsStr(p.Abbreviations, a) {
			p.Abbreviations = append(p.Abbreviations, a)
		}
	}
}

// absorbConcept merges a weaker concept (and all of its children) into
// the winner, re-pointing every moved tag and transferring counts.
func (c *Canonicalizer) absorbConcept(key, winnerKey string) {
	loser := c.concepts[key]
	winner := c.concepts[winnerKey]

	moved := append(append([]string(nil), loser.Children...), key)
	for _, t := range moved {
		winner.Children = append(winner.Children, t)
		winner.Frequency += c.tagFreq[t]
		c.parent[t] = winnerKey
	}
	for _, a := range loser.Abbreviations {
		if !containsStr(winner.Abbreviations, a) {
			winner.Abbreviations = append(winner.Abbreviations, a)
		}
	}

	delete(c.concepts, key)
	c.conceptOrder = removeStr(c.conceptOrder, key)
}

// attemptLinking runs the three linking rules in order: edit distance
// with abbreviation overlap, superset attachment, subset attachment.
// It returns true when the tag passed every check and should become a
// new concept; false when it was absorbed or rejected.
func (c *Canonicalizer) attemptLinking(tag string, freq int, rep Representation) bool {
	tol := editTolerance(tag)

	var closeParents []string
	seen := make(map[string]struct{})
	for _, t := range c.parentOrder {
		if levenshtein.ComputeDistance(tag, t) > tol {
			continue
		}
		p := c.parent[t]
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		closeParents = append(closeParents, p)
	}

	var closeFiltered []string
	for _, p := range closeParents {
		pc, ok := c.concepts[p]
		if !ok {
			continue
		}
		if anyOverlap(rep.Abbreviations, pc.Abbreviations) {
			closeFiltered = append(closeFiltered, p)
		}
	}

	if len(closeFiltered) > 0 {
		winner := closeFiltered[0]
		if len(closeFiltered) > 1 {
			// triangulated misspelling: several close parents collapse
			// into the single most frequent one
			for _, p := range closeFiltered[1:] {
				if c.concepts[p].Frequency > c.concepts[winner].Frequency {
					winner = p
				}
			}
			for _, p := range closeFiltered {
				if p != winner {
					c.absorbConcept(p, winner)
				}
			}
		}
		c.attachChild(tag, freq, rep.Abbreviations, winner)
		return false
	}

	// superset relation: an existing tag contains every chunk of the
	// candidate, or contains the candidate outright. A bare surname
	// like #george matching several full names is ambiguous: reject.
	var supers []string
	seen = make(map[string]struct{})
	for _, t := range c.parentOrder {
		if !chunksInside(rep.Chunks, t) && !strings.Contains(t, tag) {
			continue
		}
		p := c.parent[t]
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		supers = append(supers, p)
	}
	if len(supers) == 1 {
		c.attachChild(tag, freq, rep.Abbreviations, supers[0])
		return false
	}
	if len(supers) > 1 {
		return false
	}

	// subset relation: the candidate contains every chunk of an
	// existing concept, or contains an existing tag outright.
	// With several matches (#accesshollywood vs #access + #hollywood)
	// the candidate is left unlinked and never becomes a concept.
	var subs []string
	seen = make(map[string]struct{})
	for _, k := range c.conceptOrder {
		if chunksInside(c.concepts[k].Chunks, tag) {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				subs = append(subs, k)
			}
		}
	}
	for _, t := range c.parentOrder {
		if !strings.Contains(tag, t) {
			continue
		}
		p := c.parent[t]
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		subs = append(subs, p)
	}
	if len(subs) == 1 {
		c.attachChild(tag, freq, rep.Abbreviations, subs[0])
		return false
	}
	if len(subs) > 1 {
		return false
	}

	return true
}

// Deferred is an all-uppercase tag held back for abbreviation
// resolution after the main per-tag loop.
type Deferred struct {
	Tag       string
	Frequency int
}

// ResolveAbbreviations links deferred all-uppercase tags to the concept
// whose abbreviation list contains them. Stopword abbreviations are
// stripped first (so #rdjgg resolves via "rdj"); residuals under three
// characters, ambiguous matches and no-matches are dropped.
func (c *Canonicalizer) ResolveAbbreviations(deferred []Deferred) {
	for _, d := range deferred {
		residual := d.Tag
		for _, abbr := range c.stopwordAbbrs {
			if abbr == "" {
				continue
			}
			residual = strings.ReplaceAll(residual, abbr, "")
		}
		if len(residual) < 3 {
			continue
		}

		var candidates []string
		for _, k := range c.conceptOrder {
			if k == residual {
				continue
			}
			if containsStr(c.concepts[k].Abbreviations, residual) {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) != 1 {
			continue
		}
		parentKey := candidates[0]
		c.tagFreq[d.Tag] = d.Frequency
		c.attachChild(d.Tag, d.Frequency, []string{residual}, parentKey)

		// concepts that carry the residual as a literal chunk collapse
		// into the same parent, together with their children
		for _, k := range append([]string(nil), c.conceptOrder...) {
			if k == parentKey {
				continue
			}
			v, ok := c.concepts[k]
			if !ok || !containsStr(v.Chunks, residual) {
				continue
			}
			children := append([]string(nil), v.Children...)
			c.attachChild(k, c.tagFreq[k], nil, parentKey)
			for _, child := range children {
				c.attachChild(child, c.tagFreq[child], nil, parentKey)
			}
		}
	}
}

// Finalize prunes concepts that no tag points at anymore (their role
// was absorbed by another concept). Idempotent.
func (c *Canonicalizer) Finalize() {
	pointed := make(map[string]bool, len(c.parent))
	for _, t := range c.parentOrder {
		pointed[c.parent[t]] = true
	}

	var kept []string
	for _, k := range c.conceptOrder {
		if pointed[k] {
			kept = append(kept, k)
			continue
		}
		delete(c.concepts, k)
	}
	c.conceptOrder = kept
}

// Canonical returns the canonical key a tag resolves to, if any.
func (c *Canonicalizer) Canonical(tag string) (string, bool) {
	p, ok := c.parent[tag]
	return p, ok
}

// Concept returns the concept stored under a canonical key.
func (c *Canonicalizer) Concept(key string) (*Concept, bool) {
	v, ok := c.concepts[key]
	return v, ok
}

// TagFrequency returns the aggregate frequency recorded for a
// canonical key, whether it lives in the concept table or the
// award-tag table. Unknown keys report zero.
func (c *Canonicalizer) TagFrequency(key string) int {
	if v, ok := c.concepts[key]; ok {
		return v.Frequency
	}
	if v, ok := c.awards[key]; ok {
		return v.Frequency
	}
	return 0
}

// Concepts returns all surviving concepts in insertion order.
func (c *Canonicalizer) Concepts() []*Concept {
	out := make([]*Concept, 0, len(c.conceptOrder))
	for _, k := range c.conceptOrder {
		if v, ok := c.concepts[k]; ok {
			out = append(out, v)
		}
	}
	return out
}

// AwardTags returns the award-shaped tag set in insertion order.
func (c *Canonicalizer) AwardTags() []*Concept {
	out := make([]*Concept, 0, len(c.awardOrder))
	for _, k := range c.awardOrder {
		out = append(out, c.awards[k])
	}
	return out
}

// Stopwords returns the registered stopword hashtags in insertion
// order.
func (c *Canonicalizer) Stopwords() []string {
	return append([]string(nil), c.stopwordTags...)
}

// StopwordChunks exposes the generic word chunks collected from
// stopword hashtags.
func (c *Canonicalizer) StopwordChunks() []string {
	out := make([]string, 0, len(c.stopwordChunks))
	for chunk := range c.stopwordChunks {
		out = append(out, chunk)
	}
	return out
}

func (c *Canonicalizer) isStopwordChunk(chunk string) bool {
	_, ok := c.stopwordChunks[chunk]
	return ok
}

func (c *Canonicalizer) isStopwordAbbr(tag string) bool {
	return containsStr(c.stopwordAbbrs, tag)
}

// nearStopword reports whether a tag is a substring of, or within edit
// distance 3 of, any stopword hashtag.
func (c *Canonicalizer) nearStopword(tag string) bool {
	for _, stop := range c.stopwordTags {
		if strings.Contains(stop, tag) {
			return true
		}
		if levenshtein.ComputeDistance(tag, stop) < 3 {
			return true
		}
	}
	return false
}

// chunksInside reports whether every chunk appears as a substring of s.
func chunksInside(chunks []string, s string) bool {
	if len(chunks) == 0 {
		return false
	}
	for _, chunk := range chunks {
		if !strings.Contains(s, chunk) {
			return false
		}
	}
	return true
}

func anyOverlap(a, b []string) bool {
	for _, s := range a {
		if containsStr(b, s) {
			return true
		}
	}
	return false
}

func removeStr(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
