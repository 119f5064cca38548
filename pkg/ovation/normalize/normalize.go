// Package normalize provides text cleaning utilities for short
// social-media messages: mention/hashtag/link stripping, punctuation
// folding, and reduction to a pure alphanumeric form for fuzzy matching.
package normalize

import (
	"regexp"
	"strings"
)

var (
	mentionRe  = regexp.MustCompile(`@[A-Za-z0-9_]+`)
	hashtagRe  = regexp.MustCompile(`#[A-Za-z0-9]+`)
	linkRe     = regexp.MustCompile(`https?://[^ ]+`)
	symbolRe   = regexp.MustCompile(`[^A-Za-z0-9]`)
	spaceRe    = regexp.MustCompile(`\s+`)
	hyphenRe   = regexp.MustCompile(`([A-Za-z])-([A-Za-z])`)
	alnumRe    = regexp.MustCompile(`[^a-z0-9]`)
	nonASCIIRe = regexp.MustCompile(`[^\x00-\x7F]`)
)

// Options selects which categories of noise Clean strips from a message.
type Options struct {
	StripMentions bool // @account references
	StripHashtags bool // #tag tokens
	StripLinks    bool // http(s) URLs
	StripSymbols  bool // every non-alphanumeric rune becomes a space
	JoinHyphens   bool // "mini-series" -> "miniseries" before symbol stripping
}

// DefaultOptions strips mentions, hashtags and links but keeps symbols.
func DefaultOptions() Options {
	return Options{StripMentions: true, StripHashtags: true, StripLinks: true}
}

// Clean normalizes a raw message: HTML-entity and curly-quote folding,
// possessive "'s" split into its own token, optional category stripping,
// and whitespace collapse.
func Clean(text string, opts Options) string {
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "“", `"`)
	text = strings.ReplaceAll(text, "”", `"`)
	text = strings.ReplaceAll(text, "'s", " 's")
	if opts.JoinHyphens {
		// matches cannot overlap, so "a-b-c" needs a second pass
		for {
			joined := hyphenRe.ReplaceAllString(text, "$1$2")
			if joined == text {
				break
			}
			text = joined
		}
	}
	if opts.StripMentions {
		text = mentionRe.ReplaceAllString(text, "")
	}
	if opts.StripHashtags {
		text = hashtagRe.ReplaceAllString(text, "")
	}
	if opts.StripLinks {
		text = linkRe.ReplaceAllString(text, "")
	}
	if opts.StripSymbols {
		text = symbolRe.ReplaceAllString(text, " ")
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// ToAlphanumeric lowercases a message, applies the default Clean, and
// removes everything except [a-z0-9]. Character order is preserved and
// the reduction is idempotent.
func ToAlphanumeric(text string) string {
	text = strings.ToLower(text)
	text = Clean(text, DefaultOptions())
	return alnumRe.ReplaceAllString(text, "")
}

// IsASCII reports whether the string contains only ASCII bytes.
// Used as a rough single-language filter.
func IsASCII(s string) bool {
	return !nonASCIIRe.MatchString(s)
}
