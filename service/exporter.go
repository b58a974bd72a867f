package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.opencensus.io/trace"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/monmaru/linearview/library/log"
	"github.com/monmaru/linearview/model"
)

const (
	DefaultSlideSelector = "section"

	defaultTitle = "Slides Export"
	slideHint    = "Open this slide in the original presentation view"
	globalStyle  = "body { font-family: sans-serif; } a { color: #5dade2; }"
)

var (
	ErrNoDocument     = errors.New("no document to export")
	ErrInvalidPageURL = errors.New("invalid page url")
)

type Exporter interface {
	Export(ctx context.Context, doc *goquery.Document, pageURL string) (*model.Export, error)
}

type ExporterImpl struct {
	slides goquery.Matcher
	notes  []NoteMatcher
}

// NewExporter builds an exporter for decks whose slides match selector
// (DefaultSlideSelector when empty). Notes are located with DefaultNoteMatchers
// unless others are given.
func NewExporter(selector string, notes ...NoteMatcher) (Exporter, error) {
	if selector == "" {
		selector = DefaultSlideSelector
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("slide selector %q: %w", selector, err)
	}
	if len(notes) == 0 {
		notes = DefaultNoteMatchers
	}
	return &ExporterImpl{slides: sel, notes: notes}, nil
}

// Export flattens doc into a single scrollable page. doc is left untouched;
// all rewriting happens on a copy that is returned in the result.
func (e *ExporterImpl) Export(ctx context.Context, doc *goquery.Document, pageURL string) (*model.Export, error) {
	ctx, span := trace.StartSpan(ctx, "service.Export")
	defer span.End()

	if doc == nil || doc.Selection == nil || len(doc.Nodes) == 0 {
		return nil, ErrNoDocument
	}

	fileName, err := OutputFileName(pageURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPageURL, pageURL, err)
	}
	base := stripFragment(pageURL)

	work := goquery.NewDocumentFromNode(doc.Selection.Clone().Get(0))
	export := &model.Export{
		FileName: fileName,
		Title:    documentTitle(work),
	}

	container := newElement(atom.Div, containerStyle)
	slides := work.FindMatcher(e.slides)
	if slides.Length() == 0 {
		log.Warningf(ctx, "no slides found in %s", base)
	}
	slides.Each(func(i int, s *goquery.Selection) {
		node, slide := e.flatten(ctx, s, i+1, base)
		container.AppendChild(node)
		export.Slides = append(export.Slides, slide)
	})

	body := ensureBody(work)
	body.Empty()
	replaceStyle(body, bodyStyle)
	body.Get(0).AppendChild(container)

	work.Find("script").Remove()
	mergeStyle(work.Find("html").First(), rootStyle)

	log.Infof(ctx, "Layout converted (Dark Mode). %d slides, %d notes shown, %d hidden",
		len(export.Slides), export.NotesShown(), export.NotesHidden())

	export.HTML, err = render(export.Title, body.Get(0))
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", fileName, err)
	}
	export.Document = work.Get(0)
	return export, nil
}

func (e *ExporterImpl) flatten(ctx context.Context, s *goquery.Selection, index int, base string) (*html.Node, model.Slide) {
	clone := s.Clone()
	root := clone.Get(0)
	slide := model.Slide{
		Index:    index,
		DeepLink: fmt.Sprintf("%s#%d", base, index),
	}

	replaceStyle(clone, slideStyle)

	note, matcher := findNote(clone, e.notes)
	var noteNode *html.Node
	if note != nil {
		noteNode = note.Get(0)
	}
	slide.Text = collectText(root, noteNode)
	root.InsertBefore(slideHeader(slide), root.FirstChild)

	if note == nil {
		log.Debugf(ctx, "slide %d has no note region", index)
		return root, slide
	}

	slide.Note = noteText(note)
	if slide.Note == "" {
		mergeStyle(note, hiddenNoteStyle)
		slide.State = model.NoteHidden
	} else {
		mergeStyle(note, shownNoteStyle)
		slide.State = model.NoteShown
	}
	log.Debugf(ctx, "slide %d: note matched by %s, %s", index, matcher, slide.State)
	return root, slide
}

func slideHeader(slide model.Slide) *html.Node {
	link := newElement(atom.A, linkStyle)
	link.Attr = append(link.Attr,
		html.Attribute{Key: "href", Val: slide.DeepLink},
		html.Attribute{Key: "target", Val: "_blank"},
		html.Attribute{Key: "title", Val: slideHint},
	)
	link.AppendChild(&html.Node{
		Type: html.TextNode,
		Data: fmt.Sprintf("Slide %d", slide.Index),
	})

	header := newElement(atom.Div, headerStyle)
	header.AppendChild(link)
	return header
}

func newElement(a atom.Atom, style inlineStyle) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     []html.Attribute{{Key: "style", Val: style.String()}},
	}
}

// ensureBody returns the body of doc, creating one when the tree has none.
func ensureBody(doc *goquery.Document) *goquery.Selection {
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}

	parent := doc.Get(0)
	if h := doc.Find("html").First(); h.Length() > 0 {
		parent = h.Get(0)
	}
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	parent.AppendChild(body)
	return doc.Find("body").First()
}

// documentTitle mirrors document.title: whitespace collapsed and trimmed.
func documentTitle(doc *goquery.Document) string {
	title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	if title == "" {
		return defaultTitle
	}
	return title
}

// collectText gathers the visible text of n, skipping skip and its subtree.
func collectText(n, skip *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == skip {
			return
		}
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func render(title string, body *html.Node) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	buf.WriteString("<style>" + globalStyle + "</style>\n")
	buf.WriteString("</head>\n")
	if err := html.Render(&buf, body); err != nil {
		return nil, err
	}
	buf.WriteString("\n</html>")
	return buf.Bytes(), nil
}
