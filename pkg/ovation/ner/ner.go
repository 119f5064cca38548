// Package ner provides the named-entity collaborator the winner
// inference tallies against. The production implementation wraps
// prose; tests substitute their own Recognizer.
package ner

// Label classifies an extracted span.
type Label string

const (
	// LabelPerson marks spans naming a person.
	LabelPerson Label = "PERSON"
	// LabelWork marks spans naming a film, show or song title.
	LabelWork Label = "WORK_OF_ART"
)

// Entity is one recognized span.
type Entity struct {
	Text  string
	Label Label
}

// Recognizer extracts entities from a single message text.
type Recognizer interface {
	Entities(text string) ([]Entity, error)
}
