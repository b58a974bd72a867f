package service

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineStyleString(t *testing.T) {
	st := inlineStyle{important("display", "block"), decl("margin", "0")}
	assert.Equal(t, "display: block !important; margin: 0;", st.String())
	assert.Equal(t, "", inlineStyle(nil).String())
}

func TestParseInlineStyle(t *testing.T) {
	st := parseInlineStyle("color: red; display: none !important")
	require.Len(t, st, 2)
	assert.Equal(t, "color", st[0].Property)
	assert.Equal(t, "red", st[0].Value)
	assert.Equal(t, "display", st[1].Property)
	assert.True(t, st[1].Important)

	assert.Nil(t, parseInlineStyle("   "))
}

func TestParseInlineStyle_SkipsBrokenDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  string
	}{
		{"stray semicolons", "font-style: italic;; display: none;;", "font-style: italic; display: none;"},
		{"missing value", "font-style: italic; color", "font-style: italic;"},
		{"empty value", "color: ; margin: 0", "margin: 0;"},
		{"missing name", ": red; margin: 0", "margin: 0;"},
		{"quoted semicolon", `font-family: "a;b"; margin: 0`, `font-family: "a;b"; margin: 0;`},
		{"url with semicolon", "background: url(data:image/png;base64,AA); margin: 0", "background: url(data:image/png;base64,AA); margin: 0;"},
		{"duplicate property", "color: red; COLOR: blue", "COLOR: blue;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseInlineStyle(tt.style).String())
		})
	}
}

func TestParseInlineStyle_BracedValue(t *testing.T) {
	st := parseInlineStyle("--x: {a:b}; color: red")
	assert.NotContains(t, st.String(), "{a: b;")
	assert.Contains(t, st.String(), "color: red;")
}

func TestMergeAndReplaceStyle(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p style="color: red; display: none">x</p>`))
	require.NoError(t, err)
	p := doc.Find("p")

	mergeStyle(p, inlineStyle{decl("display", "block"), decl("padding", "10px")})
	assert.Equal(t, "color: red; display: block; padding: 10px;", p.AttrOr("style", ""))

	for _, style := range []string{
		"font-style: italic; display: none;;",
		"font-style: italic; color",
	} {
		p.SetAttr("style", style)
		mergeStyle(p, inlineStyle{decl("display", "block"), decl("padding", "10px")})
		assert.Equal(t, "font-style: italic; display: block; padding: 10px;", p.AttrOr("style", ""), style)
	}

	p.SetAttr("style", "--x: {a:b}; color: red")
	mergeStyle(p, inlineStyle{decl("display", "block")})
	assert.NotContains(t, p.AttrOr("style", ""), "{a: b;")
	assert.Contains(t, p.AttrOr("style", ""), "color: red; display: block;")

	replaceStyle(p, inlineStyle{decl("margin", "0")})
	assert.Equal(t, "margin: 0;", p.AttrOr("style", ""))

	// empty selections are ignored
	mergeStyle(doc.Find("table"), rootStyle)
	replaceStyle(doc.Find("table"), rootStyle)
	assert.Equal(t, 0, doc.Find("[style]").Not("p").Length())
}
