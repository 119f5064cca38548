package ner

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jdkato/prose/v2"
)

// quotedTitleRe matches short spans inside straight or curly quotes;
// in this corpus a quoted span is almost always a work title.
var quotedTitleRe = regexp.MustCompile(`["“]([^"”]{2,60})["”]`)

// ProseRecognizer runs prose's statistical NER for PERSON spans and a
// quoted-span heuristic for work titles (prose's model does not carry
// a WORK_OF_ART label).
type ProseRecognizer struct{}

// NewProse returns the production recognizer.
func NewProse() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities implements Recognizer.
func (r *ProseRecognizer) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("recognize entities: %w", err)
	}

	var out []Entity
	for _, ent := range doc.Entities() {
		if ent.Label != "PERSON" {
			continue
		}
		name := strings.TrimSpace(strings.TrimSuffix(ent.Text, "'s"))
		if name == "" {
			continue
		}
		out = append(out, Entity{Text: name, Label: LabelPerson})
	}
	for _, span := range quotedSpans(text) {
		out = append(out, Entity{Text: span, Label: LabelWork})
	}
	return out, nil
}

func quotedSpans(text string) []string {
	var spans []string
	for _, m := range quotedTitleRe.FindAllStringSubmatch(text, -1) {
		span := strings.TrimSpace(m[1])
		if span != "" {
			spans = append(spans, span)
		}
	}
	return spans
}
