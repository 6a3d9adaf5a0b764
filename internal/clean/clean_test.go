// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/clean-bible/pkg/types"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "In the beginning", "In the beginning"},
		{"whitespace collapse", "a   b\tc", "a b c"},
		{"newlines and trim", "\n  a\n\n b  \r\n", "a b"},
		{"simple tags", "<b>God</b> created", "God created"},
		{"tag with attributes", `<span class="mam-spi-pe">{פ}</span> next`, "{פ} next"},
		{"self closing", "line<br/>break", "linebreak"},
		{"tag between words", "heaven <br> and earth", "heaven and earth"},
		{"footnote markers", `light<sup class="footnote-marker">*</sup><i class="footnote">note</i>.`, "light*note."},
		{
			"hebrew with nikkud and cantillation",
			"בְּרֵאשִׁ֖ית בָּרָ֣א <b>אֱלֹהִ֑ים</b>",
			"בְּרֵאשִׁ֖ית בָּרָ֣א אֱלֹהִ֑ים",
		},
		{"maqaf and sof pasuq kept", "עַל־פְּנֵ֥י הַמָּֽיִם׃", "עַל־פְּנֵ֥י הַמָּֽיִם׃"},
		{"entities are not decoded", "a&nbsp;b &amp; c", "a&nbsp;b &amp; c"},
		{"unclosed bracket stays", "a < b", "a < b"},
		{"only tags", "<p></p>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanRemovesWellFormedTags(t *testing.T) {
	inputs := []string{
		"<i>x</i>",
		`<span dir="rtl"><b>שָׁלוֹם</b></span>`,
		"a<br/>b<br />c",
		"<<b>>",
		`<a href="https://www.sefaria.org/Genesis.1.1">Gen 1:1</a>`,
	}
	for _, in := range inputs {
		got := Clean(in)
		assert.NotContains(t, got, "<", "input %q", in)
		assert.False(t, strings.Contains(got, "<") && strings.Contains(got, ">"), "input %q left tag syntax: %q", in, got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"a   b\tc",
		"<<b>>x",
		"<a<b>c>d",
		"x > y < z",
		"וַיֹּ֣אמֶר <i>אֱלֹהִ֔ים</i>\n\tיְהִ֣י א֑וֹר",
		" nbsp  padded ",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input %q", in)
	}
}

func TestCleanNoRepeatedWhitespace(t *testing.T) {
	got := Clean("a \t\n b  c")
	assert.Equal(t, "a b c", got)
	assert.NotContains(t, got, "  ")
}

func TestCleanAll(t *testing.T) {
	got := CleanAll([]string{"<b>one</b>", "  two  ", ""})
	assert.Equal(t, types.VerseCollection{"one", "two", ""}, got)
	assert.Empty(t, CleanAll(nil))
}
