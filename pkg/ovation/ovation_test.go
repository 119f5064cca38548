package ovation

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/ner"
)

// nameSpotter recognizes a fixed roster of people by substring match,
// standing in for the prose model so results stay deterministic.
type nameSpotter []string

func (s nameSpotter) Entities(text string) ([]ner.Entity, error) {
	var out []ner.Entity
	for _, name := range s {
		if strings.Contains(text, name) {
			out = append(out, ner.Entity{Text: name, Label: ner.LabelPerson})
		}
	}
	return out, nil
}

// ceremonyCorpus builds a corpus where 60% of the award chatter reads
// "X wins best director" and 40% reads "best director goes to X", plus
// unrelated noise so the movie tag stays under the stopword share.
func ceremonyCorpus() []corpus.Message {
	var msgs []corpus.Message
	id := int64(1)
	add := func(text string) {
		msgs = append(msgs, corpus.Message{ID: id, Text: text})
		id++
	}
	for i := 0; i < 180; i++ {
		add("Richard Linklater wins best director #Boyhood")
	}
	for i := 0; i < 120; i++ {
		add("Best Director goes to Richard Linklater")
	}
	for i := 0; i < 250; i++ {
		add(fmt.Sprintf("so excited for tonight #Party%d", i))
	}
	return msgs
}

func e2eConfig() *config.Config {
	cfg := config.Default()
	// a 430-tag corpus is tiny; at the production share every tag
	// repeated twice would count as a ceremony stopword
	cfg.Hashtags.StopwordProportion = 0.5
	cfg.Awards.MinTagGlobal = 100
	cfg.OfficialAwards = []string{"best director"}
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	eng, err := New(Options{
		Config:     e2eConfig(),
		Recognizer: nameSpotter{"Richard Linklater"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rep, err := eng.Run(context.Background(), ceremonyCorpus())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.RunID == "" || rep.Year != 2015 {
		t.Errorf("report header = %+v", rep)
	}
	found := false
	for _, name := range rep.AwardNames {
		if name == "best director" {
			found = true
		}
	}
	if !found {
		t.Errorf("AwardNames = %v, want to contain %q", rep.AwardNames, "best director")
	}

	if len(rep.Awards) != 1 {
		t.Fatalf("Awards = %+v", rep.Awards)
	}
	rec := rep.Awards[0]
	if rec.Award != "best director" || rec.Winner != "richard linklater" {
		t.Errorf("award record = %+v", rec)
	}
	if len(rec.Nominees) == 0 || rec.Nominees[0] != "richard linklater" {
		t.Errorf("nominees = %v", rec.Nominees)
	}
	if len(rep.Hosts) != 0 {
		t.Errorf("hosts = %v, want none for a host-free corpus", rep.Hosts)
	}
}

func TestMineAwardNames(t *testing.T) {
	eng, err := New(Options{Config: e2eConfig(), Recognizer: nameSpotter{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	names, err := eng.MineAwardNames(context.Background(), ceremonyCorpus())
	if err != nil {
		t.Fatalf("MineAwardNames: %v", err)
	}
	if len(names) == 0 || names[0] != "best director" {
		t.Errorf("names = %v", names)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	eng, err := New(Options{Config: e2eConfig(), Recognizer: nameSpotter{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := eng.Run(ctx, ceremonyCorpus()); err == nil {
		t.Error("Run did not stop on cancelled context")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Inference.WinVerbs = nil
	if _, err := New(Options{Config: cfg}); err == nil {
		t.Error("New accepted a config with no win verbs")
	}
}
