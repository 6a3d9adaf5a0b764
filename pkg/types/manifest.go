// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Manifest records one completed download: what was asked for, what came
// back, and which files were written.
type Manifest struct {
	// Book is the canonical Sefaria book name.
	Book string `json:"book" yaml:"book"`

	// Chapter is the requested chapter, or zero for the whole book.
	Chapter int `json:"chapter,omitempty" yaml:"chapter,omitempty"`

	Mode VersionMode `json:"mode" yaml:"mode"`

	// Chapters is the number of chapters attempted.
	Chapters int `json:"chapters" yaml:"chapters"`

	// FailedChapters lists the chapters that contributed no verses.
	FailedChapters []int `json:"failed_chapters,omitempty" yaml:"failed_chapters,omitempty"`

	SourceVerses int `json:"source_verses" yaml:"source_verses"`
	TargetVerses int `json:"target_verses" yaml:"target_verses"`

	// Files lists the text files written, in source, target, parallel order.
	Files []string `json:"files" yaml:"files"`

	DownloadedAt time.Time `json:"downloaded_at" yaml:"downloaded_at"`
}

// NewManifest summarizes a request and its result.
func NewManifest(req DownloadRequest, res BookResult, files []string, at time.Time) Manifest {
	return Manifest{
		Book:           req.Book,
		Chapter:        req.Chapter,
		Mode:           req.Mode,
		Chapters:       res.Attempted,
		FailedChapters: res.FailedChapters(),
		SourceVerses:   len(res.Source),
		TargetVerses:   len(res.Target),
		Files:          files,
		DownloadedAt:   at.UTC(),
	}
}
