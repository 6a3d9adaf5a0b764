// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maps user-facing book names to canonical Sefaria titles.
package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// Book is one entry of the catalog.
type Book struct {
	// Key is the short lookup name (e.g. "samuel1").
	Key string `json:"key" yaml:"key"`

	// Name is the canonical Sefaria title used in API requests (e.g. "I Samuel").
	Name string `json:"name" yaml:"name"`
}

// defaultBooks lists the Tanakh books in the order the downloader presents them.
var defaultBooks = []Book{
	{"genesis", "Genesis"},
	{"exodus", "Exodus"},
	{"leviticus", "Leviticus"},
	{"numbers", "Numbers"},
	{"deuteronomy", "Deuteronomy"},
	{"joshua", "Joshua"},
	{"judges", "Judges"},
	{"samuel1", "I Samuel"},
	{"samuel2", "II Samuel"},
	{"kings1", "I Kings"},
	{"kings2", "II Kings"},
	{"isaiah", "Isaiah"},
	{"jeremiah", "Jeremiah"},
	{"ezekiel", "Ezekiel"},
	{"hosea", "Hosea"},
	{"joel", "Joel"},
	{"amos", "Amos"},
	{"obadiah", "Obadiah"},
	{"jonah", "Jonah"},
	{"micah", "Micah"},
	{"nahum", "Nahum"},
	{"habakkuk", "Habakkuk"},
	{"zephaniah", "Zephaniah"},
	{"haggai", "Haggai"},
	{"zechariah", "Zechariah"},
	{"malachi", "Malachi"},
	{"psalms", "Psalms"},
	{"proverbs", "Proverbs"},
	{"job", "Job"},
	{"song_of_songs", "Song of Songs"},
	{"ruth", "Ruth"},
	{"lamentations", "Lamentations"},
	{"ecclesiastes", "Ecclesiastes"},
	{"esther", "Esther"},
	{"daniel", "Daniel"},
	{"ezra", "Ezra"},
	{"nehemiah", "Nehemiah"},
	{"chronicles1", "I Chronicles"},
	{"chronicles2", "II Chronicles"},
}

// Catalog resolves book names. It is read-only after New returns.
type Catalog struct {
	books   []Book
	aliases map[string]string // alias (normalized) → canonical
	lookup  map[string]string // key or name (normalized) → canonical
}

// New builds a catalog from the built-in table plus aliases, which map
// extra names to canonical titles. An alias may name a book outside the
// built-in table.
func New(aliases map[string]string) *Catalog {
	c := &Catalog{
		books:   append([]Book(nil), defaultBooks...),
		aliases: make(map[string]string, len(aliases)),
		lookup:  make(map[string]string, 2*len(defaultBooks)),
	}
	for _, b := range c.books {
		c.lookup[normalize(b.Key)] = b.Name
		c.lookup[normalize(b.Name)] = b.Name
	}
	for alias, name := range aliases {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c.aliases[normalize(alias)] = name
	}
	return c
}

// Books returns the built-in entries in presentation order.
func (c *Catalog) Books() []Book {
	return append([]Book(nil), c.books...)
}

// Aliases returns configured aliases as Book entries sorted by key.
func (c *Catalog) Aliases() []Book {
	out := make([]Book, 0, len(c.aliases))
	for k, v := range c.aliases {
		out = append(out, Book{Key: k, Name: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Resolve returns the canonical title for input, matching keys and names
// case-insensitively with spaces, underscores, and hyphens treated alike.
// Built-in entries take precedence over aliases.
func (c *Catalog) Resolve(input string) (string, error) {
	n := normalize(input)
	if n == "" {
		return "", fmt.Errorf("book name is empty")
	}
	if name, ok := c.lookup[n]; ok {
		return name, nil
	}
	if name, ok := c.aliases[n]; ok {
		return name, nil
	}
	return "", fmt.Errorf("unknown book %q: run \"clean-bible books\" for valid names", input)
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
