package infer

import (
	"fmt"
	"strings"

	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/lexicon"
	"github.com/ovationhq/ovation/pkg/ovation/ner"
	"github.com/ovationhq/ovation/pkg/ovation/normalize"
)

// NoAnswer is the sentinel returned when no qualifying evidence exists
// for an award, even after the loosened retry.
const NoAnswer = "no answer found"

// Inferencer answers winner/nominee/host/presenter questions over a
// message corpus.
type Inferencer struct {
	cfg        config.Inference
	brandWords []string
	year       int
	lex        *lexicon.Lexicon
	rec        ner.Recognizer
}

// New wires the inferencer from config, the keyword lexicon and an
// entity recognizer.
func New(cfg *config.Config, lex *lexicon.Lexicon, rec ner.Recognizer) *Inferencer {
	return &Inferencer{
		cfg:        cfg.Inference,
		brandWords: cfg.BrandWords,
		year:       cfg.Year,
		lex:        lex,
		rec:        rec,
	}
}

// Winner predicts the award's winner: filter to messages indicating a
// completed win on this specific award, tally recognized entities, and
// return the most frequent survivor. A strict filter that matches
// nothing is retried without the tripword exclusion; only then does
// the sentinel answer apply.
func (in *Inferencer) Winner(award *Award, msgs []corpus.Message) (string, error) {
	qual := in.qualifying(award, msgs, true)
	if len(qual) == 0 {
		qual = in.qualifying(award, msgs, false)
	}
	if len(qual) == 0 {
		return NoAnswer, nil
	}

	order, counts, err := in.tally(award, qual)
	if err != nil {
		return "", err
	}
	best := ""
	bestCount := 0
	for _, span := range order {
		if counts[span] > bestCount {
			best = span
			bestCount = counts[span]
		}
	}
	if best == "" {
		return NoAnswer, nil
	}
	return best, nil
}

// Nominees returns the top co-occurring entities for the award, winner
// included, capped at the configured nominee count.
func (in *Inferencer) Nominees(award *Award, msgs []corpus.Message) ([]string, error) {
	qual := in.qualifying(award, msgs, true)
	if len(qual) == 0 {
		qual = in.qualifying(award, msgs, false)
	}
	if len(qual) == 0 {
		return nil, nil
	}

	order, counts, err := in.tally(award, qual)
	if err != nil {
		return nil, err
	}
	return topRanked(order, counts, in.cfg.NomineeCount), nil
}

// qualifying keeps messages that indicate a completed win, carry a
// majority of the award's keywords and, when useTripwords is set, none
// of its tripwords.
func (in *Inferencer) qualifying(award *Award, msgs []corpus.Message, useTripwords bool) []corpus.Message {
	var out []corpus.Message
	for _, m := range msgs {
		lower := strings.ToLower(m.Text)
		if !containsAnyPhrase(lower, in.cfg.WinVerbs) {
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
		if useTripwords && containsAnyKey(words, award.Tripwords) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// messageWords reduces a message to an alias-normalized word set.
func (in *Inferencer) messageWords(lower string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(lower) {
		w = normalize.ToAlphanumeric(w)
		if w == "" {
			continue
		}
		words[in.lex.Normalize(w)] = struct{}{}
	}
	return words
}

// tally runs entity recognition over qualifying messages and counts
// surviving spans, preserving first-encountered order for tie breaks.
func (in *Inferencer) tally(award *Award, msgs []corpus.Message) ([]string, map[string]int, error) {
	label := ner.LabelWork
	if award.People {
		label = ner.LabelPerson
	}
	nameTokens := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(award.Name)) {
		if w = normalize.ToAlphanumeric(w); w != "" {
			nameTokens[w] = struct{}{}
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, m := range msgs {
		ents, err := in.rec.Entities(m.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("entity recognition: %w", err)
		}
		for _, ent := range ents {
			if ent.Label != label {
				continue
			}
			span := strings.ToLower(strings.TrimSpace(ent.Text))
			if span == "" || in.discard(span, award, nameTokens) {
				continue
			}
			if _, ok := counts[span]; !ok {
				order = append(order, span)
			}
			counts[span]++
		}
	}
	return order, counts, nil
}

// discard rejects spans that cannot be answers: account mentions,
// repost markers, the ceremony's own brand, and spans that merely
// restate the award name. Title awards relax the self-reference rule
// since a title may legitimately share a word with the award name.
func (in *Inferencer) discard(span string, award *Award, nameTokens map[string]struct{}) bool {
	if strings.Contains(span, "@") {
		return true
	}
	if span == "rt" || strings.HasPrefix(span, "rt ") || strings.Contains(span, " rt ") {
		return true
	}
	for _, brand := range in.brandWords {
		if strings.Contains(span, brand) {
			return true
		}
	}

	words := strings.Fields(span)
	matched := 0
	for _, w := range words {
		if _, ok := nameTokens[normalize.ToAlphanumeric(w)]; ok {
			matched++
		}
	}
	if award.People {
		return len(words) > 0 && matched == len(words)
	}
	return matched >= 2
}

func containsAnyPhrase(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func containsAnyKey(words map[string]struct{}, keys []string) bool {
	for _, k := range keys {
		if _, ok := words[k]; ok {
			return true
		}
	}
	return false
}
