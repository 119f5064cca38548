package hashtag

import (
	"reflect"
	"testing"
)

func addTag(c *Canonicalizer, cased string, freq int) {
	c.AddGeneral(toLowerTag(cased), freq, SplitCased(cased))
}

func toLowerTag(cased string) string {
	out := make([]byte, len(cased))
	for i := 0; i < len(cased); i++ {
		b := cased[i]
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		out[i] = b
	}
	return string(out)
}

func TestEditDistanceLinking(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "KeiraKnightley", 300)
	addTag(c, "KeiraKnigthley", 40) // transposition, shared "kk" abbreviation

	parent, ok := c.Canonical("keiraknigthley")
	if !ok || parent != "keiraknightley" {
		t.Fatalf("parent = %q, ok=%v", parent, ok)
	}
	concept, _ := c.Concept("keiraknightley")
	if concept.Frequency != 340 {
		t.Errorf("aggregate frequency = %d, want 340", concept.Frequency)
	}
	if !containsStr(concept.Children, "keiraknigthley") {
		t.Errorf("children = %v", concept.Children)
	}
}

func TestEditDistanceWithoutAbbreviationOverlapDoesNotLink(t *testing.T) {
	c := NewCanonicalizer()
	// birdmen is within distance 1 of birdman but their abbreviation
	// sets are disjoint, so the close match is discarded
	addTag(c, "Birdman", 120)
	addTag(c, "BirdMen", 80)

	if len(c.Concepts()) != 2 {
		t.Fatalf("concepts = %d, want 2", len(c.Concepts()))
	}
	if parent, _ := c.Canonical("birdmen"); parent != "birdmen" {
		t.Errorf("Canonical(birdmen) = %q, want itself", parent)
	}
}

func TestSupersetAttachment(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "GeorgeClooney", 200)
	addTag(c, "George", 15)

	if _, ok := c.Concept("george"); ok {
		t.Fatal("bare subset tag became its own concept")
	}
	parent, ok := c.Canonical("george")
	if !ok || parent != "georgeclooney" {
		t.Fatalf("parent = %q, ok=%v", parent, ok)
	}
}

func TestAmbiguousSupersetRejected(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "GeorgeClooney", 200)
	addTag(c, "AmalClooney", 150)
	addTag(c, "Clooney", 30)

	if _, ok := c.Canonical("clooney"); ok {
		t.Fatal("ambiguous subset tag was linked")
	}
	if _, ok := c.Concept("clooney"); ok {
		t.Fatal("ambiguous subset tag became a concept")
	}
}

func TestSubsetAttachment(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "Selma", 400)
	addTag(c, "SelmaMovie", 60)
	addTag(c, "TeamSelma", 30)

	for _, tag := range []string{"selmamovie", "teamselma"} {
		parent, ok := c.Canonical(tag)
		if !ok || parent != "selma" {
			t.Errorf("Canonical(%s) = %q, ok=%v", tag, parent, ok)
		}
	}
	concept, _ := c.Concept("selma")
	if concept.Frequency != 490 {
		t.Errorf("aggregate frequency = %d, want 490", concept.Frequency)
	}
}

func TestAmbiguousSubsetLeftUnlinked(t *testing.T) {
	// accesshollywood contains both access and hollywood outright, so it
	// cannot be attributed to either and never becomes a concept
	c := NewCanonicalizer()
	c.AddGeneral("access", 300, Representation{Chunks: []string{"access"}, Abbreviations: []string{"a"}})
	c.AddGeneral("hollywood", 200, Representation{Chunks: []string{"hollywood"}, Abbreviations: []string{"h"}})
	c.AddGeneral("accesshollywood", 50, Representation{Chunks: []string{"access", "hollywood"}, Abbreviations: []string{"ah"}})

	if _, ok := c.Canonical("accesshollywood"); ok {
		t.Fatal("ambiguous superset tag was linked")
	}
	if _, ok := c.Concept("accesshollywood"); ok {
		t.Fatal("ambiguous superset tag became a concept")
	}
}

func TestTriangulatedMisspellingMerge(t *testing.T) {
	c := NewCanonicalizer()
	// two sibling concepts sharing an abbreviation, far enough apart
	// (distance 5) that neither absorbed the other at insert time
	c.AddGeneral("matthewmcconaughey", 300, Representation{Chunks: []string{"matthew", "mcconaughey"}, Abbreviations: []string{"mm"}})
	c.AddGeneral("mathewmconahy", 50, Representation{Chunks: []string{"mathew", "mconahy"}, Abbreviations: []string{"mm"}})
	if len(c.Concepts()) != 2 {
		t.Fatalf("setup failed, concepts = %d", len(c.Concepts()))
	}

	// a third misspelling within tolerance of both triggers the merge
	c.AddGeneral("mathewmcconaughy", 20, Representation{Chunks: []string{"mathew", "mcconaughy"}, Abbreviations: []string{"mm"}})

	c.Finalize()
	concepts := c.Concepts()
	if len(concepts) != 1 {
		t.Fatalf("concepts after merge = %d, want 1", len(concepts))
	}
	winner := concepts[0]
	if winner.Key != "matthewmcconaughey" {
		t.Errorf("winner = %q, want highest-frequency parent", winner.Key)
	}
	if winner.Frequency != 370 {
		t.Errorf("aggregate frequency = %d, want 370", winner.Frequency)
	}
	for _, tag := range []string{"mathewmconahy", "mathewmcconaughy"} {
		if parent, _ := c.Canonical(tag); parent != "matthewmcconaughey" {
			t.Errorf("Canonical(%s) = %q", tag, parent)
		}
	}
}

func TestFrequencyInvariant(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "Boyhood", 500)
	addTag(c, "BoyhoodMovie", 90)
	addTag(c, "TeamBoyhood", 25)
	c.Finalize()

	for _, concept := range c.Concepts() {
		sum := c.tagFreq[concept.Key]
		for _, child := range concept.Children {
			sum += c.tagFreq[child]
		}
		if concept.Frequency != sum {
			t.Errorf("%s: aggregate %d != own+children %d", concept.Key, concept.Frequency, sum)
		}
	}
}

func TestAbbreviationResolution(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "OrangeIsTheNewBlack", 150)
	c.ResolveAbbreviations([]Deferred{{Tag: "oitnb", Frequency: 60}})
	c.Finalize()

	parent, ok := c.Canonical("oitnb")
	if !ok || parent != "orangeisthenewblack" {
		t.Fatalf("Canonical(oitnb) = %q, ok=%v", parent, ok)
	}
	concept, _ := c.Concept("orangeisthenewblack")
	if concept.Frequency != 210 {
		t.Errorf("aggregate frequency = %d, want 210", concept.Frequency)
	}
}

func TestAbbreviationResolutionStripsStopwordAbbrs(t *testing.T) {
	c := NewCanonicalizer()
	c.AddStopword("goldenglobes", Representation{Chunks: []string{"golden", "globes"}, Abbreviations: []string{"gg"}})
	addTag(c, "RobertDowneyJr", 140)

	c.ResolveAbbreviations([]Deferred{{Tag: "rdjgg", Frequency: 30}})
	c.Finalize()

	parent, ok := c.Canonical("rdjgg")
	if !ok || parent != "robertdowneyjr" {
		t.Fatalf("Canonical(rdjgg) = %q, ok=%v", parent, ok)
	}
}

func TestAbbreviationResolutionAmbiguousDropped(t *testing.T) {
	c := NewCanonicalizer()
	c.AddGeneral("orangeisthenewblack", 150, Representation{Chunks: []string{"orange", "is", "the", "new", "black"}, Abbreviations: []string{"oitnb"}})
	c.AddGeneral("onlyinthenbafinals", 120, Representation{Chunks: []string{"only", "in", "the", "nba", "finals"}, Abbreviations: []string{"oitnb"}})

	c.ResolveAbbreviations([]Deferred{{Tag: "oitnb", Frequency: 60}})
	if _, ok := c.Canonical("oitnb"); ok {
		t.Fatal("ambiguous abbreviation was linked")
	}
}

func TestAbbreviationResolutionReparentsChunkConcepts(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "OrangeIsTheNewBlack", 150)
	c.AddGeneral("oitnbfinale", 40, Representation{Chunks: []string{"oitnb", "finale"}, Abbreviations: []string{"oitnbf"}})
	c.AddGeneral("oitnbfinalee", 12, Representation{Chunks: []string{"oitnb", "finalee"}, Abbreviations: []string{"oitnbf"}})

	// the typo variant should have linked under oitnbfinale already
	if parent, _ := c.Canonical("oitnbfinalee"); parent != "oitnbfinale" {
		t.Fatalf("setup: Canonical(oitnbfinalee) = %q", parent)
	}

	c.ResolveAbbreviations([]Deferred{{Tag: "oitnb", Frequency: 60}})
	c.Finalize()

	for _, tag := range []string{"oitnb", "oitnbfinale", "oitnbfinalee"} {
		if parent, _ := c.Canonical(tag); parent != "orangeisthenewblack" {
			t.Errorf("Canonical(%s) = %q, want orangeisthenewblack", tag, parent)
		}
	}
	if _, ok := c.Concept("oitnbfinale"); ok {
		t.Error("re-parented concept survived finalize")
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	c := NewCanonicalizer()
	addTag(c, "KeiraKnightley", 300)
	addTag(c, "KeiraKnigthley", 40)
	addTag(c, "Selma", 200)

	c.Finalize()
	first := snapshotConcepts(c)
	c.Finalize()
	second := snapshotConcepts(c)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("finalize not idempotent: %v vs %v", first, second)
	}
}

func snapshotConcepts(c *Canonicalizer) map[string]int {
	out := make(map[string]int)
	for _, concept := range c.Concepts() {
		out[concept.Key] = concept.Frequency
	}
	return out
}

func TestTagFrequencyCoversAwardTags(t *testing.T) {
	c := NewCanonicalizer()
	c.AddAward("bestscreenplay", 300, SplitCased("BestScreenplay"))
	c.AddGeneral("boyhood", 150, SplitCased("Boyhood"))

	if got := c.TagFrequency("boyhood"); got != 150 {
		t.Errorf("TagFrequency(boyhood) = %d, want 150", got)
	}
	if got := c.TagFrequency("bestscreenplay"); got != 300 {
		t.Errorf("TagFrequency(bestscreenplay) = %d, want 300", got)
	}
	if got := c.TagFrequency("unseen"); got != 0 {
		t.Errorf("TagFrequency(unseen) = %d, want 0", got)
	}
}
