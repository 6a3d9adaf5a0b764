// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/clean-bible/internal/clean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [text...]",
	Short: "Strip markup from text given as arguments or on stdin",
	Long: `Clean applies the verse cleaner to each argument, or to each line of
standard input when no arguments are given, and prints one cleaned line per
input. Useful for checking how a verse will look in the output files.`,
	Example: `  clean-bible clean '<b>In the beginning</b>   God'
  curl -s https://www.sefaria.org/api/texts/Genesis.1 | jq -r '.text[]' | clean-bible clean`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) > 0 {
		for _, a := range args {
			fmt.Fprintln(out, clean.Clean(a))
		}
		return nil
	}
	return cleanLines(cmd.InOrStdin(), out)
}

// maxLine bounds a single input line; chapter dumps can be long.
const maxLine = 4 << 20

func cleanLines(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		fmt.Fprintln(w, clean.Clean(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
