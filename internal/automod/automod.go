// Package automod screens message content for blocked terms. Matching runs
// on a normalized form of the text so spacing, punctuation and digit
// substitutions do not slip a term past the filter.
package automod

import (
	"regexp"
	"strings"
)

// leet maps common digit and symbol substitutions back to letters before
// matching.
var leet = strings.NewReplacer(
	"0", "o",
	"1", "i",
	"3", "e",
	"4", "a",
	"5", "s",
	"7", "t",
	"8", "b",
	"@", "a",
	"$", "s",
	"!", "i",
)

var nonAlpha = regexp.MustCompile(`[^a-z]+`)

// Normalize lowercases, undoes leetspeak substitutions and strips everything
// that is not a letter.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = leet.Replace(s)
	return nonAlpha.ReplaceAllString(s, "")
}

var inviteRE = regexp.MustCompile(`(?i)(discord\.gg|discord\.com/invite)/[a-z0-9-]+`)

// Filter holds the compiled blocked-term list.
type Filter struct {
	terms        []string
	blockInvites bool
}

// New builds a filter. Terms are normalized once up front; empty terms are
// dropped.
func New(terms []string, blockInvites bool) *Filter {
	f := &Filter{blockInvites: blockInvites}
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			f.terms = append(f.terms, n)
		}
	}
	return f
}

// Check reports the first blocked term found in the content, or the invite
// link when invite blocking is on. An empty reason means the message is
// clean.
func (f *Filter) Check(content string) (reason string, flagged bool) {
	if f.blockInvites {
		if m := inviteRE.FindString(content); m != "" {
			return "server invite link", true
		}
	}

	normalized := Normalize(content)
	for _, t := range f.terms {
		if strings.Contains(normalized, t) {
			return t, true
		}
	}
	return "", false
}
