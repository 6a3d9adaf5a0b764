// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the fetch, aggregation, and
// emission stages.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// VerseCollection is an ordered list of cleaned verses in one language.
// Order is canonical verse order within the fetched scope. Entries carry no
// markup and no leading, trailing, or repeated whitespace.
type VerseCollection []string

// BilingualResult pairs the source-language (Hebrew) and target-language
// (English) verses produced by one fetch. The two collections may differ in
// length when upstream data omits a language for some verses.
type BilingualResult struct {
	Source VerseCollection `json:"source" yaml:"source"`
	Target VerseCollection `json:"target" yaml:"target"`
}

// SourceAt returns the source verse at index i, or "" when i is out of range.
func (r BilingualResult) SourceAt(i int) string {
	return at(r.Source, i)
}

// TargetAt returns the target verse at index i, or "" when i is out of range.
func (r BilingualResult) TargetAt(i int) string {
	return at(r.Target, i)
}

// Len returns the length of the longer collection.
func (r BilingualResult) Len() int {
	return max(len(r.Source), len(r.Target))
}

// Empty reports whether both collections are empty.
func (r BilingualResult) Empty() bool {
	return len(r.Source) == 0 && len(r.Target) == 0
}

// Append concatenates other's collections onto r's, preserving order.
func (r *BilingualResult) Append(other BilingualResult) {
	r.Source = append(r.Source, other.Source...)
	r.Target = append(r.Target, other.Target...)
}

func at(c VerseCollection, i int) string {
	if i < 0 || i >= len(c) {
		return ""
	}
	return c[i]
}

// VersionMode selects which languages a fetch retrieves.
type VersionMode string

const (
	ModeSource VersionMode = "he"
	ModeTarget VersionMode = "en"
	ModeBoth   VersionMode = "he-en"
)

// VersionModes lists every mode in display order.
var VersionModes = []VersionMode{ModeSource, ModeTarget, ModeBoth}

// ParseVersionMode converts a user-supplied string into a VersionMode.
func ParseVersionMode(s string) (VersionMode, error) {
	m := VersionMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeSource, ModeTarget, ModeBoth:
		return m, nil
	}
	return "", fmt.Errorf("unknown version %q: use he, en, or he-en", s)
}

func (m VersionMode) String() string { return string(m) }

// Description returns the human-readable label for the mode.
func (m VersionMode) Description() string {
	switch m {
	case ModeSource:
		return "Hebrew (Original)"
	case ModeTarget:
		return "English Translation"
	case ModeBoth:
		return "Hebrew + English (Side by side)"
	default:
		return ""
	}
}

// WantsSource reports whether the mode populates the source collection.
func (m VersionMode) WantsSource() bool { return m == ModeSource || m == ModeBoth }

// WantsTarget reports whether the mode populates the target collection.
func (m VersionMode) WantsTarget() bool { return m == ModeTarget || m == ModeBoth }

// DownloadRequest identifies what to fetch and where to write it. It is
// built by the caller and consumed once.
type DownloadRequest struct {
	// Book is the canonical Sefaria book name (e.g. "Genesis", "I Samuel").
	Book string

	// Chapter is the 1-based chapter number; zero requests the whole book.
	Chapter int

	Mode      VersionMode
	OutputDir string
}

// WholeBook reports whether the request covers every chapter of the book.
func (r DownloadRequest) WholeBook() bool {
	return r.Chapter == 0
}

// BaseName returns the file name stem for the request's output files:
// "Genesis_complete" or "I_Samuel_chapter_3".
func (r DownloadRequest) BaseName() string {
	book := strings.ReplaceAll(strings.TrimSpace(r.Book), " ", "_")
	if r.WholeBook() {
		return book + "_complete"
	}
	return book + "_chapter_" + strconv.Itoa(r.Chapter)
}

// Validate reports whether the request can be executed.
func (r DownloadRequest) Validate() error {
	if strings.TrimSpace(r.Book) == "" {
		return fmt.Errorf("book is required")
	}
	if r.Chapter < 0 {
		return fmt.Errorf("invalid chapter %d: must be 1 or greater (or 0 for the whole book)", r.Chapter)
	}
	if _, err := ParseVersionMode(string(r.Mode)); err != nil {
		return err
	}
	if r.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}

// BookMetadata carries the chapter count of a book. It is fetched for each
// aggregation and never cached.
type BookMetadata struct {
	Book     string `json:"book" yaml:"book"`
	Chapters int    `json:"chapters" yaml:"chapters"`
}

// ChapterFailure records one chapter that could not be fetched during
// aggregation.
type ChapterFailure struct {
	Chapter int    `json:"chapter" yaml:"chapter"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

// BookResult is the outcome of a chapter or whole-book download. Failed
// lists chapters that contributed nothing; an empty list means the result
// is complete.
type BookResult struct {
	BilingualResult `yaml:",inline"`

	Book      string           `json:"book" yaml:"book"`
	Chapters  int              `json:"chapters" yaml:"chapters"`
	Attempted int              `json:"attempted" yaml:"attempted"`
	Failed    []ChapterFailure `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Partial reports whether any chapter failed.
func (r BookResult) Partial() bool {
	return len(r.Failed) > 0
}

// FailedChapters returns the numbers of the chapters that failed, in order.
func (r BookResult) FailedChapters() []int {
	if len(r.Failed) == 0 {
		return nil
	}
	out := make([]int, len(r.Failed))
	for i, f := range r.Failed {
		out[i] = f.Chapter
	}
	return out
}
