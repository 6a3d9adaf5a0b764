// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download drives chapter and whole-book downloads: it fetches
// chapters in order, tolerates per-chapter failures, and hands the result
// to the file emitter.
package download

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/clean-bible/internal/emit"
	"github.com/pdiddy/clean-bible/internal/sefaria"
	"github.com/pdiddy/clean-bible/pkg/types"
)

// Source provides book metadata and chapter text. *sefaria.Client
// implements it.
type Source interface {
	Metadata(ctx context.Context, book string) (types.BookMetadata, error)
	FetchChapter(ctx context.Context, book string, chapter int, mode types.VersionMode) (types.BilingualResult, error)
}

// now is replaced in tests.
var now = time.Now

// Outcome is what Download produced.
type Outcome struct {
	Result types.BookResult `json:"result"`

	// Files lists the text files written, in source, target, parallel order.
	Files []string `json:"files"`

	// Manifest is the manifest path, or "" when none was written.
	Manifest string `json:"manifest,omitempty"`
}

// FetchChapter downloads a single chapter and wraps it as a BookResult.
func FetchChapter(ctx context.Context, src Source, book string, chapter int, mode types.VersionMode, w io.Writer) (types.BookResult, error) {
	result := types.BookResult{Book: book, Chapters: 1, Attempted: 1}

	fmt.Fprintf(w, "downloading: %s %d (%s)\n", book, chapter, mode)
	res, err := src.FetchChapter(ctx, book, chapter, mode)
	if err != nil {
		result.Failed = []types.ChapterFailure{failure(chapter, err)}
		return result, err
	}
	result.BilingualResult = res
	return result, nil
}

// FetchBook downloads every chapter of book in order and concatenates the
// verses. An unknown mode is rejected before any request. The chapter count comes from src.Metadata; when it cannot be
// determined FetchBook fails before fetching any chapter. A chapter that
// fails is reported to w, recorded in the result's Failed list, and
// skipped. cfg.ChapterDelay is waited between consecutive chapter
// requests whatever their outcome. Cancellation of ctx is observed between
// chapters and returns the chapters gathered so far together with
// ctx.Err().
func FetchBook(ctx context.Context, src Source, book string, mode types.VersionMode, cfg types.DownloadConfig, w io.Writer) (types.BookResult, error) {
	result := types.BookResult{Book: book}
	if _, err := types.ParseVersionMode(string(mode)); err != nil {
		return result, err
	}

	meta, err := src.Metadata(ctx, book)
	if err != nil {
		if sefaria.KindOf(err) != sefaria.KindMetadataUnavailable {
			err = &sefaria.Error{Kind: sefaria.KindMetadataUnavailable, Book: book, Err: err}
		}
		return result, err
	}
	if meta.Chapters <= 0 {
		return result, &sefaria.Error{
			Kind: sefaria.KindMetadataUnavailable,
			Book: book,
			Err:  fmt.Errorf("chapter count %d", meta.Chapters),
		}
	}
	result.Chapters = meta.Chapters

	fmt.Fprintf(w, "downloading: %s (%d chapters, %s)\n", book, meta.Chapters, mode)

	for chapter := 1; chapter <= meta.Chapters; chapter++ {
		if chapter > 1 {
			if err := pause(ctx, cfg.ChapterDelay); err != nil {
				fmt.Fprintf(w, "cancelled before chapter %d\n", chapter)
				printSummary(w, result)
				return result, err
			}
		}

		res, err := src.FetchChapter(ctx, book, chapter, mode)
		result.Attempted++
		if err != nil {
			fmt.Fprintf(w, "failed:  chapter %d (%v)\n", chapter, err)
			result.Failed = append(result.Failed, failure(chapter, err))
			continue
		}
		fmt.Fprintf(w, "chapter %d/%d: %d verses\n", chapter, meta.Chapters, res.Len())
		result.Append(res)
	}

	printSummary(w, result)
	return result, nil
}

// Download runs req against src and writes the cleaned text under
// req.OutputDir. Files are written whenever at least one verse was
// fetched, so a partial book is still saved; the caller inspects
// Outcome.Result.Partial to learn about skipped chapters. The returned
// error is the fetch failure (chapter or book metadata), a write failure,
// or ctx.Err() when the book was cancelled part-way.
func Download(ctx context.Context, src Source, req types.DownloadRequest, cfg types.DownloadConfig, w io.Writer) (Outcome, error) {
	if err := req.Validate(); err != nil {
		return Outcome{}, err
	}

	var (
		res      types.BookResult
		fetchErr error
	)
	if req.WholeBook() {
		res, fetchErr = FetchBook(ctx, src, req.Book, req.Mode, cfg, w)
	} else {
		res, fetchErr = FetchChapter(ctx, src, req.Book, req.Chapter, req.Mode, w)
	}
	out := Outcome{Result: res}
	if res.Empty() {
		if fetchErr == nil {
			fmt.Fprintf(w, "no verses returned for %s; nothing written\n", req.Book)
		}
		return out, fetchErr
	}

	files, err := emit.Save(res.BilingualResult, req.OutputDir, req.BaseName())
	out.Files = files
	if err != nil {
		return out, err
	}

	fmt.Fprintf(w, "\nSaved files:\n")
	for _, f := range files {
		fmt.Fprintf(w, "- %s\n", filepath.Base(f))
	}

	if cfg.WriteManifest {
		path := emit.ManifestPath(req.OutputDir, req.BaseName())
		if err := emit.WriteManifest(path, types.NewManifest(req, res, files, now())); err != nil {
			return out, err
		}
		out.Manifest = path
		fmt.Fprintf(w, "- %s\n", filepath.Base(path))
	}

	return out, fetchErr
}

func failure(chapter int, err error) types.ChapterFailure {
	return types.ChapterFailure{
		Chapter: chapter,
		Kind:    string(sefaria.KindOf(err)),
		Message: err.Error(),
	}
}

// pause waits d, returning early with ctx.Err() if ctx ends first. A zero
// d still reports an already-cancelled context.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func printSummary(w io.Writer, r types.BookResult) {
	fmt.Fprintf(w, "\nBook summary: %d fetched, %d failed (total: %d of %d chapters)\n",
		r.Attempted-len(r.Failed), len(r.Failed), r.Attempted, r.Chapters)
}
