// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit writes cleaned verse collections to plain-text files.
package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/clean-bible/pkg/types"
)

// File name suffixes appended to the caller's base name.
const (
	SourceSuffix   = "_hebrew_clean.txt"
	TargetSuffix   = "_english_clean.txt"
	ParallelSuffix = "_parallel_clean.txt"
)

const separatorWidth = 50

// FileNames returns the names Save would write for a full result fetched
// in mode.
func FileNames(baseName string, mode types.VersionMode) []string {
	var names []string
	if mode.WantsSource() {
		names = append(names, baseName+SourceSuffix)
	}
	if mode.WantsTarget() {
		names = append(names, baseName+TargetSuffix)
	}
	if mode.WantsSource() && mode.WantsTarget() {
		names = append(names, baseName+ParallelSuffix)
	}
	return names
}

// Save writes result under outputDir and returns the paths written, in
// source, target, parallel order. The directory (and its parents) is
// created first. The source file is written only when the source
// collection is non-empty, the target file likewise, and the parallel file
// only when both are. Existing files are replaced.
func Save(result types.BilingualResult, outputDir, baseName string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", outputDir, err)
	}

	var written []string

	if len(result.Source) > 0 {
		path := filepath.Join(outputDir, baseName+SourceSuffix)
		if err := writeFile(path, func(w io.Writer) error {
			return writeVerses(w, "Clean Hebrew Text - "+baseName, result.Source)
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(result.Target) > 0 {
		path := filepath.Join(outputDir, baseName+TargetSuffix)
		if err := writeFile(path, func(w io.Writer) error {
			return writeVerses(w, "Clean English Text - "+baseName, result.Target)
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if len(result.Source) > 0 && len(result.Target) > 0 {
		path := filepath.Join(outputDir, baseName+ParallelSuffix)
		if err := writeFile(path, func(w io.Writer) error {
			return writeParallel(w, "Parallel Hebrew-English Text - "+baseName, result)
		}); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	return written, nil
}

func writeHeader(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", separatorWidth))
	return err
}

func writeVerses(w io.Writer, title string, verses types.VerseCollection) error {
	if err := writeHeader(w, title); err != nil {
		return err
	}
	for _, v := range verses {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

// writeParallel emits one numbered block per verse index up to the longer
// collection; a missing line on either side prints as empty.
func writeParallel(w io.Writer, title string, result types.BilingualResult) error {
	if err := writeHeader(w, title); err != nil {
		return err
	}
	for i := range result.Len() {
		if _, err := fmt.Fprintf(w, "\n--- Verse %d ---\nHebrew:  %s\nEnglish: %s\n",
			i+1, result.SourceAt(i), result.TargetAt(i)); err != nil {
			return err
		}
	}
	return nil
}

// writeFile writes through a temporary file in the destination directory
// and renames it over path, so readers never see a half-written file.
func writeFile(path string, fill func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".emit-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	bw := bufio.NewWriter(tmpFile)
	fillErr := fill(bw)
	if fillErr == nil {
		fillErr = bw.Flush()
	}
	closeErr := tmpFile.Close()
	if fillErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, fillErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
