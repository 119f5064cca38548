// Package ovation mines structured awards-ceremony facts (award names,
// winners, nominees, hosts, presenters) from a noisy social-media
// corpus. The engine wires the hashtag canonicalizer, the award-name
// extractor and the entity-tally inference behind one facade.
package ovation

import (
	"context"
	"fmt"

	"github.com/ovationhq/ovation/pkg/ovation/awards"
	"github.com/ovationhq/ovation/pkg/ovation/config"
	"github.com/ovationhq/ovation/pkg/ovation/corpus"
	"github.com/ovationhq/ovation/pkg/ovation/hashtag"
	"github.com/ovationhq/ovation/pkg/ovation/infer"
	"github.com/ovationhq/ovation/pkg/ovation/lexicon"
	"github.com/ovationhq/ovation/pkg/ovation/ner"
	"github.com/ovationhq/ovation/pkg/ovation/report"
)

// Options configures an Engine.
type Options struct {
	// Config defaults to config.Default() when nil.
	Config *config.Config
	// Recognizer defaults to the prose-backed recognizer when nil.
	Recognizer ner.Recognizer
	// Progress, when set, receives a short line as each pass starts.
	Progress func(stage string)
}

// Engine is the mining facade.
type Engine struct {
	cfg      *config.Config
	lex      *lexicon.Lexicon
	rec      ner.Recognizer
	progress func(string)
}

// New validates the configuration and wires an engine.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rec := opts.Recognizer
	if rec == nil {
		rec = ner.NewProse()
	}
	progress := opts.Progress
	if progress == nil {
		progress = func(string) {}
	}
	return &Engine{
		cfg:      cfg,
		lex:      lexicon.New(cfg.Aliases),
		rec:      rec,
		progress: progress,
	}, nil
}

// Run executes the full pipeline over a corpus: hashtag counting and
// canonicalization, utterance corroboration, award-name extraction and
// consolidation, then winner/nominee/host/presenter inference against
// the official award list.
func (e *Engine) Run(ctx context.Context, msgs []corpus.Message) (report.Report, error) {
	names, err := e.mine(ctx, msgs)
	if err != nil {
		return report.Report{}, err
	}

	rep := report.NewBuilder().New(e.cfg.Year)
	rep.AwardNames = names

	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}
	e.progress("inferring hosts")
	inf := infer.New(e.cfg, e.lex, e.rec)
	rep.Hosts = inf.Hosts(msgs)

	officials := infer.BuildAwards(e.cfg.OfficialAwards, e.lex, e.cfg.Inference.PersonMarkers)
	for _, award := range officials {
		if err := ctx.Err(); err != nil {
			return report.Report{}, err
		}
		e.progress("inferring " + award.Name)

		winner, err := inf.Winner(award, msgs)
		if err != nil {
			return report.Report{}, fmt.Errorf("award %q: %w", award.Name, err)
		}
		nominees, err := inf.Nominees(award, msgs)
		if err != nil {
			return report.Report{}, fmt.Errorf("award %q: %w", award.Name, err)
		}
		presenters, err := inf.Presenters(award, msgs)
		if err != nil {
			return report.Report{}, fmt.Errorf("award %q: %w", award.Name, err)
		}
		rep.Awards = append(rep.Awards, report.AwardRecord{
			Award:      award.Name,
			Winner:     winner,
			Nominees:   nominees,
			Presenters: presenters,
		})
	}
	return rep, nil
}

// MineAwardNames runs only the extraction half of the pipeline and
// returns the consolidated award-name list, most confident first.
func (e *Engine) MineAwardNames(ctx context.Context, msgs []corpus.Message) ([]string, error) {
	return e.mine(ctx, msgs)
}

func (e *Engine) mine(ctx context.Context, msgs []corpus.Message) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.progress("counting hashtags")
	parser := hashtag.NewParser(e.cfg.Hashtags, e.cfg.Awards)
	parser.Count(msgs)

	e.progress("canonicalizing hashtags")
	canon := parser.Canonicalize()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.progress("scanning utterances")
	utts := parser.ScanUtterances(msgs, canon)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.progress("extracting award names")
	extractor, err := awards.NewExtractor(e.cfg.Awards, e.lex)
	if err != nil {
		return nil, err
	}
	cands := extractor.Harvest(msgs, canon)
	cands = awards.MergeUtterances(cands, utts.Awards)

	final := extractor.Consolidate(cands, canon, canon.TagFrequency)

	names := make([]string, len(final))
	for i, cand := range final {
		names[i] = cand.Phrase
	}
	return names, nil
}
