// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips markup from verse strings returned by the text API.
package clean

import (
	"regexp"
	"strings"

	"github.com/pdiddy/clean-bible/pkg/types"
)

// tagPattern matches one markup tag: an opening angle bracket, anything up
// to the next closing bracket, and the closing bracket. Leftmost matching
// leaves no "<" with a later ">" behind, so a second pass finds nothing.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Clean removes every tag from raw, collapses each run of whitespace to a
// single space, and trims the ends. Non-tag, non-whitespace content
// (Hebrew letters, vowel points, cantillation marks, punctuation) is left
// untouched.
func Clean(raw string) string {
	stripped := tagPattern.ReplaceAllString(raw, "")
	return strings.Join(strings.Fields(stripped), " ")
}

// CleanAll applies Clean to each element of raw, keeping order.
func CleanAll(raw []string) types.VerseCollection {
	out := make(types.VerseCollection, 0, len(raw))
	for _, s := range raw {
		out = append(out, Clean(s))
	}
	return out
}
