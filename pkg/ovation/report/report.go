// Package report assembles the externally visible result of a mining
// run.
package report

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// AwardRecord is the answer set for one official award.
type AwardRecord struct {
	Award      string   `json:"award"`
	Winner     string   `json:"winner"`
	Nominees   []string `json:"nominees,omitempty"`
	Presenters []string `json:"presenters,omitempty"`
}

// Report is the full output of one run. Unresolved awards carry their
// sentinel answers; keys are never omitted.
type Report struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Year        int           `json:"year"`
	Hosts       []string      `json:"hosts,omitempty"`
	AwardNames  []string      `json:"award_names"`
	Awards      []AwardRecord `json:"awards"`
}

// Builder stamps reports with monotonic run IDs.
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewBuilder returns a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// New starts an empty report for the given ceremony year.
func (b *Builder) New(year int) Report {
	now := b.now().UTC()
	return Report{
		RunID:       ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		GeneratedAt: now,
		Year:        year,
	}
}
