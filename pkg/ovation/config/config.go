// Package config holds every threshold and vocabulary the mining
// pipeline depends on. Configuration is loaded once at startup and
// passed explicitly into each component; nothing reads it ambiently.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ovationhq/ovation/pkg/ovation/internalerr"
)

// Hashtags controls the hashtag filter pipeline and canonicalizer.
type Hashtags struct {
	// StopwordProportion marks any tag above this share of all hashtag
	// occurrences as a stopword (the ceremony's own brand tags).
	StopwordProportion  float64 `yaml:"stopword_proportion_threshold"`
	FrequentThreshold   int     `yaml:"frequent_threshold"`
	InfrequentThreshold int     `yaml:"infrequent_threshold"`
	FrequentLenMin      int     `yaml:"frequent_len_min"`
	InfrequentLenMin    int     `yaml:"infrequent_len_min"`

	// Utterance corroboration: a concept is kept only when its natural
	// language form shows up in free text at a comparable rate.
	FrequentUtteranceThreshold int `yaml:"frequent_utterance_threshold"`
	UtteranceKeepRatio         int `yaml:"utterance_keep_ratio"`
}

// Awards controls award-name phrase extraction and consolidation.
type Awards struct {
	StartWords      []string `yaml:"start_words"`
	EndWords        []string `yaml:"end_words"`
	SuffixVerbs     []string `yaml:"win_suffix_phrases"`
	PrefixVerbs     []string `yaml:"win_prefix_phrases"`
	PrefixModifiers []string `yaml:"prefix_modifiers"`

	CaptureThreshold int `yaml:"capture_threshold"`
	FilterThreshold  int `yaml:"filter_threshold"`

	// Strict-round corroboration floors.
	MinTagGlobal    int `yaml:"min_tag_global"`
	MinPhraseTotal  int `yaml:"min_phrase_total"`
	MinCoOccurrence int `yaml:"min_co_occurrence"`
}

// Inference controls winner/nominee/host guessing.
type Inference struct {
	WinVerbs      []string `yaml:"win_verbs"`
	PersonMarkers []string `yaml:"person_markers"`
	NomineeCount  int      `yaml:"nominee_count"`
}

// Config is the full configuration surface of a mining run.
type Config struct {
	// Year of the ceremony being mined; used to filter out messages
	// reminiscing about past editions.
	Year int `yaml:"year"`

	// BrandWords name the ceremony itself ("golden globes"); entity
	// spans containing them are never winner candidates.
	BrandWords []string `yaml:"brand_words"`

	Hashtags  Hashtags  `yaml:"hashtags"`
	Awards    Awards    `yaml:"awards"`
	Inference Inference `yaml:"inference"`

	// Aliases feed the keyword lexicon (variant -> canonical).
	Aliases map[string]string `yaml:"aliases"`

	// OfficialAwards is the fixed award list winners/nominees are
	// resolved against.
	OfficialAwards []string `yaml:"official_awards"`
}

// Default returns the configuration with every default filled in.
func Default() *Config {
	return &Config{
		Year:       2015,
		BrandWords: []string{"golden globes", "golden globe", "goldenglobes"},
		Hashtags: Hashtags{
			StopwordProportion:         0.01,
			FrequentThreshold:          100,
			InfrequentThreshold:        10,
			FrequentLenMin:             4,
			InfrequentLenMin:           7,
			FrequentUtteranceThreshold: 100,
			UtteranceKeepRatio:         10,
		},
		Awards: Awards{
			StartWords:       []string{"best"},
			EndWords:         []string{"award"},
			SuffixVerbs:      []string{"goes to", "is awarded to", "awarded to", "presented to"},
			PrefixVerbs:      []string{"wins", "won", "takes home", "receives", "accepts"},
			PrefixModifiers:  []string{"the award for", "award for", "the"},
			CaptureThreshold: 10,
			FilterThreshold:  100,
			MinTagGlobal:     250,
			MinPhraseTotal:   250,
			MinCoOccurrence:  10,
		},
		Inference: Inference{
			WinVerbs:      []string{"wins", "won", "goes to", "takes home", "receives", "awarded"},
			PersonMarkers: []string{"actor", "actress", "director", "demille"},
			NomineeCount:  5,
		},
		Aliases: map[string]string{
			"tv":  "television",
			"pic": "picture",
		},
		OfficialAwards: []string{
			"cecil b. demille award",
			"best motion picture - drama",
			"best performance by an actress in a motion picture - drama",
			"best performance by an actor in a motion picture - drama",
			"best motion picture - comedy or musical",
			"best performance by an actress in a motion picture - comedy or musical",
			"best performance by an actor in a motion picture - comedy or musical",
			"best animated feature film",
			"best foreign language film",
			"best performance by an actress in a supporting role in a motion picture",
			"best performance by an actor in a supporting role in a motion picture",
			"best director - motion picture",
			"best screenplay - motion picture",
			"best original score - motion picture",
			"best original song - motion picture",
			"best television series - drama",
			"best performance by an actress in a television series - drama",
			"best performance by an actor in a television series - drama",
			"best television series - comedy or musical",
			"best performance by an actress in a television series - comedy or musical",
			"best performance by an actor in a television series - comedy or musical",
			"best mini-series or motion picture made for television",
			"best performance by an actress in a mini-series or motion picture made for television",
			"best performance by an actor in a mini-series or motion picture made for television",
			"best performance by an actress in a supporting role in a series, mini-series or motion picture made for television",
			"best performance by an actor in a supporting role in a series, mini-series or motion picture made for television",
		},
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every required vocabulary and threshold is
// present. Missing entries are fatal at startup, never deferred.
func (c *Config) Validate() error {
	required := map[string][]string{
		"awards.start_words":        c.Awards.StartWords,
		"awards.end_words":          c.Awards.EndWords,
		"awards.win_suffix_phrases": c.Awards.SuffixVerbs,
		"awards.win_prefix_phrases": c.Awards.PrefixVerbs,
		"inference.win_verbs":       c.Inference.WinVerbs,
	}
	for name, vocab := range required {
		if len(vocab) == 0 {
			return fmt.Errorf("%w: vocabulary %s is empty", internalerr.ErrInvalidConfig, name)
		}
	}

	if c.Hashtags.StopwordProportion <= 0 || c.Hashtags.StopwordProportion >= 1 {
		return fmt.Errorf("%w: hashtags.stopword_proportion_threshold must be in (0,1)", internalerr.ErrInvalidConfig)
	}
	positive := map[string]int{
		"hashtags.frequent_threshold":   c.Hashtags.FrequentThreshold,
		"hashtags.infrequent_threshold": c.Hashtags.InfrequentThreshold,
		"hashtags.frequent_len_min":     c.Hashtags.FrequentLenMin,
		"hashtags.infrequent_len_min":   c.Hashtags.InfrequentLenMin,
		"awards.capture_threshold":      c.Awards.CaptureThreshold,
		"awards.filter_threshold":       c.Awards.FilterThreshold,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive", internalerr.ErrInvalidConfig, name)
		}
	}
	return nil
}
