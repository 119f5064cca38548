package hashtag

import (
	"fmt"
	"testing"

	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
)

func repeatMsgs(text string, n int) []corpus.Message {
	msgs := make([]corpus.Message, n)
	for i := range msgs {
		msgs[i] = corpus.Message{Text: text}
	}
	return msgs
}

func fillerMsgs(n int) []corpus.Message {
	msgs := make([]corpus.Message, n)
	for i := range msgs {
		msgs[i] = corpus.Message{Text: fmt.Sprintf("tweet #SomeFilmTitle%dX", i)}
	}
	return msgs
}

func newTestParser(proportion float64) *Parser {
	cfg := config.Default()
	h := cfg.Hashtags
	h.StopwordProportion = proportion
	return NewParser(h, cfg.Awards)
}

func TestStopwordBoundary(t *testing.T) {
	// exactly 1% of all occurrences is already a stopword
	p := newTestParser(0.01)
	msgs := fillerMsgs(198)
	msgs = append(msgs, repeatMsgs("so excited #GoldenGlobes", 2)...)
	p.Count(msgs)
	canon := p.Canonicalize()

	stops := canon.Stopwords()
	if len(stops) != 1 || stops[0] != "goldenglobes" {
		t.Fatalf("Stopwords = %v, want [goldenglobes]", stops)
	}

	// one tick below the boundary is not
	p = newTestParser(0.01)
	msgs = fillerMsgs(200)
	msgs = append(msgs, repeatMsgs("so excited #GoldenGlobes", 2)...)
	p.Count(msgs)
	canon = p.Canonicalize()

	if stops := canon.Stopwords(); len(stops) != 0 {
		t.Fatalf("Stopwords = %v, want none", stops)
	}
}

func TestLowercaseTagsRejected(t *testing.T) {
	p := newTestParser(0.9)
	p.Count(repeatMsgs("loved #boyhood tonight", 150))
	canon := p.Canonicalize()

	if got := canon.Concepts(); len(got) != 0 {
		t.Errorf("concepts = %v, want none", got)
	}
	if got := canon.Stopwords(); len(got) != 0 {
		t.Errorf("stopwords = %v, want none", got)
	}
}

func TestLengthTiers(t *testing.T) {
	p := newTestParser(0.9)
	var msgs []corpus.Message
	msgs = append(msgs, repeatMsgs("what a #Gem", 120)...)          // frequent but too short
	msgs = append(msgs, repeatMsgs("rooting for #Selma", 50)...)    // infrequent tier, under 7 chars
	msgs = append(msgs, repeatMsgs("rooting for #Boyhood", 50)...)  // infrequent tier, long enough
	msgs = append(msgs, repeatMsgs("watching #TheAffair", 120)...)  // frequent tier, long enough
	p.Count(msgs)
	canon := p.Canonicalize()

	if _, ok := canon.Concept("boyhood"); !ok {
		t.Error("boyhood missing from concepts")
	}
	if _, ok := canon.Concept("theaffair"); !ok {
		t.Error("theaffair missing from concepts")
	}
	for _, tag := range []string{"gem", "selma"} {
		if _, ok := canon.Canonical(tag); ok {
			t.Errorf("%s survived the length filter", tag)
		}
	}
}

func TestAwardShapedTagsBypassConceptTable(t *testing.T) {
	p := newTestParser(0.9)
	msgs := repeatMsgs("#BestDirector hopes", 30)
	msgs = append(msgs, repeatMsgs("loved #Boyhood", 120)...)
	p.Count(msgs)
	canon := p.Canonicalize()

	if _, ok := canon.Concept("bestdirector"); ok {
		t.Error("award-shaped tag entered the concept table")
	}
	awards := canon.AwardTags()
	if len(awards) != 1 || awards[0].Key != "bestdirector" {
		t.Errorf("AwardTags = %v, want [bestdirector]", awards)
	}
}

func TestUppercaseAbbreviationResolvedThroughPipeline(t *testing.T) {
	p := newTestParser(0.9)
	msgs := repeatMsgs("bingeing #OrangeIsTheNewBlack", 150)
	msgs = append(msgs, repeatMsgs("bingeing #OITNB", 50)...)
	p.Count(msgs)
	canon := p.Canonicalize()

	parent, ok := canon.Canonical("oitnb")
	if !ok || parent != "orangeisthenewblack" {
		t.Fatalf("Canonical(oitnb) = %q, ok=%v", parent, ok)
	}
	concept, _ := canon.Concept("orangeisthenewblack")
	if concept.Frequency != 200 {
		t.Errorf("aggregate frequency = %d, want 200", concept.Frequency)
	}
}

func TestUppercaseTagBelowInfrequentThresholdDropped(t *testing.T) {
	p := newTestParser(0.9)
	msgs := repeatMsgs("bingeing #OrangeIsTheNewBlack", 150)
	msgs = append(msgs, repeatMsgs("bingeing #OITNB", 5)...)
	p.Count(msgs)
	canon := p.Canonicalize()

	if _, ok := canon.Canonical("oitnb"); ok {
		t.Error("infrequent uppercase tag was resolved")
	}
	if _, ok := canon.Concept("oitnb"); ok {
		t.Error("infrequent uppercase tag became a concept")
	}
}

func TestStopwordProximityFilters(t *testing.T) {
	p := newTestParser(0.4)
	var msgs []corpus.Message
	msgs = append(msgs, repeatMsgs("live from the #Oscars", 300)...)
	msgs = append(msgs, repeatMsgs("my #Oscar pick", 150)...)       // substring of a stopword
	msgs = append(msgs, repeatMsgs("at the #OscarsNight", 150)...)  // carries a stopword chunk
	msgs = append(msgs, repeatMsgs("loved #Boyhood", 150)...)
	p.Count(msgs)
	canon := p.Canonicalize()

	if stops := canon.Stopwords(); len(stops) != 1 || stops[0] != "oscars" {
		t.Fatalf("Stopwords = %v, want [oscars]", stops)
	}
	concepts := canon.Concepts()
	if len(concepts) != 1 || concepts[0].Key != "boyhood" {
		t.Errorf("Concepts = %v, want only boyhood", concepts)
	}
}
