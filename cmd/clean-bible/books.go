// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/clean-bible/internal/catalog"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the book names clean-bible accepts",
	Long: `Books prints the built-in book table followed by any aliases defined under
"books" in the configuration file. Either column of the table can be passed
to download and info.`,
	Args: cobra.NoArgs,
	RunE: runBooks,
}

func init() {
	booksCmd.Flags().Bool("json", false, "output the catalog as JSON")

	rootCmd.AddCommand(booksCmd)
}

// bookListing is the JSON shape of the books command.
type bookListing struct {
	Books   []catalog.Book `json:"books"`
	Aliases []catalog.Book `json:"aliases,omitempty"`
}

func runBooks(cmd *cobra.Command, args []string) error {
	c := catalog.New(cfg.BookAliases)
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return writeJSON(cmd.OutOrStdout(), bookListing{Books: c.Books(), Aliases: c.Aliases()})
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"#", "Key", "Sefaria name"})
	for i, b := range c.Books() {
		t.AppendRow(table.Row{i + 1, b.Key, b.Name})
	}
	if aliases := c.Aliases(); len(aliases) > 0 {
		t.AppendSeparator()
		for _, a := range aliases {
			t.AppendRow(table.Row{"alias", a.Key, a.Name})
		}
	}
	t.Render()
	return nil
}
