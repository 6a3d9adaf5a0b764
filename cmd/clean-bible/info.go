// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/clean-bible/internal/catalog"
	"github.com/pdiddy/clean-bible/internal/emit"
	"github.com/pdiddy/clean-bible/internal/sefaria"
	"github.com/pdiddy/clean-bible/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <book>",
	Short: "Show a book's chapter count and the files a download would write",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().String("mode", string(types.ModeBoth), "version: he (Hebrew), en (English), or he-en (side by side)")

	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	book, err := catalog.New(cfg.BookAliases).Resolve(args[0])
	if err != nil {
		return err
	}
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode, err := types.ParseVersionMode(modeFlag)
	if err != nil {
		return err
	}

	meta, err := sefaria.NewClient(cfg.HTTP, logger).Metadata(cmd.Context(), book)
	if err != nil {
		return err
	}

	base := types.DownloadRequest{Book: book, Mode: mode}.BaseName()
	t := newTable(cmd.OutOrStdout())
	t.AppendRows([]table.Row{
		{"Book", meta.Book},
		{"Chapters", meta.Chapters},
		{"Version", mode.Description()},
		{"Output dir", cfg.Download.OutputDir},
	})
	t.AppendSeparator()
	for _, name := range emit.FileNames(base, mode) {
		t.AppendRow(table.Row{"File", name})
	}
	t.Render()
	return nil
}
