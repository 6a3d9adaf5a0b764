// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/clean-bible/internal/catalog"
	"github.com/pdiddy/clean-bible/internal/download"
	"github.com/pdiddy/clean-bible/internal/sefaria"
	"github.com/pdiddy/clean-bible/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download <book> [chapter]",
	Short: "Download a chapter or a whole book as clean text",
	Long: `Download fetches one chapter, or every chapter of a book when no chapter is
given, strips HTML markup, and writes the text files to the output directory.

A whole-book download skips chapters that fail and still writes what it
fetched; the command then exits non-zero and names the missing chapters.`,
	Example: `  clean-bible download genesis 1
  clean-bible download "Song of Songs" --mode en
  clean-bible download samuel1 --output-dir texts --manifest`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("mode", string(types.ModeBoth), "version: he (Hebrew), en (English), or he-en (side by side)")
	downloadCmd.Flags().String("output-dir", "", "directory for the text files (default clean_downloads)")
	downloadCmd.Flags().Duration("delay", 0, "delay between chapter requests (default 500ms)")
	downloadCmd.Flags().Bool("manifest", false, "also write a YAML manifest of the download")
	downloadCmd.Flags().Bool("json", false, "print the outcome as JSON")

	_ = viper.BindPFlag("output_dir", downloadCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("chapter_delay", downloadCmd.Flags().Lookup("delay"))
	_ = viper.BindPFlag("manifest", downloadCmd.Flags().Lookup("manifest"))

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	book, err := catalog.New(cfg.BookAliases).Resolve(args[0])
	if err != nil {
		return err
	}
	chapter := 0
	if len(args) == 2 {
		chapter, err = parseChapter(args[1])
		if err != nil {
			return err
		}
	}
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := types.ParseVersionMode(modeFlag)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	req := types.DownloadRequest{
		Book:      book,
		Chapter:   chapter,
		Mode:      mode,
		OutputDir: cfg.Download.OutputDir,
	}

	// Progress goes to stderr when stdout carries JSON.
	var progress io.Writer = cmd.OutOrStdout()
	if asJSON {
		progress = cmd.ErrOrStderr()
	}

	client := sefaria.NewClient(cfg.HTTP, logger)
	out, err := download.Download(cmd.Context(), client, req, cfg.Download, progress)
	if asJSON && (len(out.Files) > 0 || out.Result.Attempted > 0) {
		if jerr := writeJSON(cmd.OutOrStdout(), out); jerr != nil {
			return jerr
		}
	}
	if err != nil {
		logger.Debug("download failed", "book", book, "chapter", chapter, "kind", sefaria.KindOf(err))
		return err
	}
	if out.Result.Partial() {
		return fmt.Errorf("%d chapter(s) failed: %v", len(out.Result.Failed), out.Result.FailedChapters())
	}
	return nil
}

// parseChapter accepts a positive chapter number.
func parseChapter(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid chapter %q: must be a number 1 or greater", s)
	}
	return n, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
