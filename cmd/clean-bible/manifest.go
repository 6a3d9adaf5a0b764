// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/clean-bible/internal/emit"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <path>",
	Short: "Summarize a manifest written by download --manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifest,
}

func init() {
	manifestCmd.Flags().Bool("json", false, "output the manifest as JSON")

	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	m, err := emit.ReadManifest(args[0])
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), m)
	}

	scope := "whole book"
	if m.Chapter > 0 {
		scope = fmt.Sprintf("chapter %d", m.Chapter)
	}
	failed := "none"
	if len(m.FailedChapters) > 0 {
		failed = strings.Trim(fmt.Sprint(m.FailedChapters), "[]")
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendRows([]table.Row{
		{"Book", m.Book},
		{"Scope", scope},
		{"Version", m.Mode.Description()},
		{"Chapters", m.Chapters},
		{"Failed chapters", failed},
		{"Hebrew verses", m.SourceVerses},
		{"English verses", m.TargetVerses},
		{"Downloaded", m.DownloadedAt.Format("2006-01-02 15:04:05 MST")},
	})
	t.AppendSeparator()
	for _, f := range m.Files {
		t.AppendRow(table.Row{"File", f})
	}
	t.Render()
	return nil
}
