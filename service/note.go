package service

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// NoteMatcher finds the speaker-note region inside a slide.
type NoteMatcher struct {
	Name    string
	Matcher goquery.Matcher
}

// DefaultNoteMatchers are tried in order and the first one with a match wins,
// so a [role=note] element is preferred over a .note, and both over a footer.
var DefaultNoteMatchers = []NoteMatcher{
	{Name: "role", Matcher: cascadia.MustCompile(`[role="note"]`)},
	{Name: "class", Matcher: cascadia.MustCompile(".note")},
	{Name: "footer", Matcher: cascadia.MustCompile("footer")},
}

func findNote(slide *goquery.Selection, matchers []NoteMatcher) (*goquery.Selection, string) {
	for _, m := range matchers {
		if note := slide.FindMatcher(m.Matcher).First(); note.Length() > 0 {
			return note, m.Name
		}
	}
	return nil, ""
}

// noteText is the note content trimmed the way String.prototype.trim does it,
// so a note the browser sees as blank is blank here too.
func noteText(note *goquery.Selection) string {
	return strings.TrimFunc(note.Text(), isTrimSpace)
}

// isTrimSpace reports ECMAScript WhiteSpace and LineTerminator code points.
// Unlike unicode.IsSpace it includes U+FEFF and excludes U+0085.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
