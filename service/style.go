package service

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// inlineStyle is the ordered declaration list of a style attribute.
type inlineStyle []*css.Declaration

var propertyName = regexp.MustCompile(`^(--|-?[a-zA-Z_])[a-zA-Z0-9_-]*$`)

// parseInlineStyle parses each declaration of a style attribute on its own
// and skips the ones that do not survive parsing intact, so one bad
// declaration never takes its neighbours with it.
func parseInlineStyle(text string) inlineStyle {
	var st inlineStyle
	for _, piece := range splitDeclarations(text) {
		if d := parseDeclaration(piece); d != nil {
			st = st.set(d)
		}
	}
	return st
}

func parseDeclaration(piece string) *css.Declaration {
	colon := strings.IndexByte(piece, ':')
	if colon < 0 {
		return nil
	}
	name := strings.TrimSpace(piece[:colon])
	value := strings.TrimSpace(importantSuffix.ReplaceAllString(piece[colon+1:], ""))
	if !propertyName.MatchString(name) || value == "" {
		return nil
	}

	decls, err := parser.ParseDeclarations(piece)
	if err != nil || len(decls) != 1 {
		return nil
	}
	d := decls[0]
	if !strings.EqualFold(d.Property, name) || squash(d.Value) != squash(value) {
		return nil
	}
	return d
}

var importantSuffix = regexp.MustCompile(`(?i)!\s*important\s*$`)

func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// splitDeclarations cuts text at semicolons that sit outside quotes and
// brackets. Empty pieces are dropped.
func splitDeclarations(text string) []string {
	var (
		pieces []string
		depth  int
		quote  rune
		escape bool
		start  int
	)
	flush := func(end int) {
		if p := strings.TrimSpace(text[start:end]); p != "" {
			pieces = append(pieces, p)
		}
	}
	for i, r := range text {
		switch {
		case escape:
			escape = false
		case r == '\\':
			escape = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			if depth > 0 {
				depth--
			}
		case r == ';' && depth == 0:
			flush(i)
			start = i + 1
		}
	}
	flush(len(text))
	return pieces
}

func (st inlineStyle) set(d *css.Declaration) inlineStyle {
	for i, e := range st {
		if strings.EqualFold(e.Property, d.Property) {
			st[i] = d
			return st
		}
	}
	return append(st, d)
}

func (st inlineStyle) String() string {
	parts := make([]string, 0, len(st))
	for _, d := range st {
		s := d.Property + ": " + d.Value
		if d.Important {
			s += " !important"
		}
		parts = append(parts, s+";")
	}
	return strings.Join(parts, " ")
}

// replaceStyle overwrites the whole style attribute, like assigning cssText.
func replaceStyle(s *goquery.Selection, st inlineStyle) {
	if s.Length() == 0 {
		return
	}
	s.SetAttr("style", st.String())
}

// mergeStyle sets individual properties and keeps the rest of the attribute.
func mergeStyle(s *goquery.Selection, st inlineStyle) {
	if s.Length() == 0 {
		return
	}
	cur := parseInlineStyle(s.AttrOr("style", ""))
	for _, d := range st {
		cur = cur.set(d)
	}
	s.SetAttr("style", cur.String())
}

func decl(property, value string) *css.Declaration {
	return &css.Declaration{Property: property, Value: value}
}

func important(property, value string) *css.Declaration {
	return &css.Declaration{Property: property, Value: value, Important: true}
}

var (
	containerStyle = inlineStyle{
		decl("max-width", "900px"),
		decl("margin", "0 auto"),
		decl("padding", "20px"),
		decl("font-family", "sans-serif"),
	}

	slideStyle = inlineStyle{
		important("display", "block"),
		important("position", "relative"),
		important("opacity", "1"),
		important("visibility", "visible"),
		important("transform", "none"),
		important("left", "auto"),
		important("top", "auto"),
		important("width", "100%"),
		important("height", "auto"),
		important("margin-bottom", "50px"),
		important("border", "1px solid #444"),
		important("box-shadow", "0 4px 10px rgba(0,0,0,0.5)"),
		important("padding", "20px"),
		important("background-color", "black"),
		important("color", "white"),
		important("overflow", "visible"),
		important("box-sizing", "border-box"),
	}

	headerStyle = inlineStyle{
		decl("border-bottom", "1px solid #444"),
		decl("margin-bottom", "15px"),
		decl("padding-bottom", "5px"),
		decl("text-align", "right"),
	}

	linkStyle = inlineStyle{
		decl("text-decoration", "none"),
		decl("color", "#5dade2"),
		decl("font-weight", "bold"),
		decl("font-size", "0.9em"),
		decl("font-family", "monospace"),
	}

	hiddenNoteStyle = inlineStyle{
		decl("display", "none"),
	}

	shownNoteStyle = inlineStyle{
		decl("display", "block"),
		decl("border-top", "1px solid #444"),
		decl("margin-top", "20px"),
		decl("padding", "10px"),
		decl("color", "#ccc"),
		decl("background-color", "#1a1a1a"),
		decl("font-size", "0.9em"),
	}

	bodyStyle = inlineStyle{
		important("overflow-y", "auto"),
		important("background-color", "#111"),
		important("color", "#eee"),
		important("height", "auto"),
		decl("margin", "0"),
		decl("padding", "0"),
	}

	rootStyle = inlineStyle{
		decl("overflow", "auto"),
		decl("height", "auto"),
	}
)
