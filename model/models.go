package model

import "golang.org/x/net/html"

// Request ...
type Request struct {
	URL      string `json:"url"`
	HTML     string `json:"html,omitempty"`
	Selector string `json:"selector,omitempty"`
}

// Response ...
type Response struct {
	Message string `json:"message"`
}

// NoteState describes what happened to the note region of a slide.
type NoteState int

const (
	NoteAbsent NoteState = iota
	NoteHidden
	NoteShown
)

func (s NoteState) String() string {
	switch s {
	case NoteHidden:
		return "hidden"
	case NoteShown:
		return "shown"
	default:
		return "absent"
	}
}

// Slide is one flattened slide of a deck.
type Slide struct {
	Index    int
	DeepLink string
	Text     string
	Note     string
	State    NoteState
}

// Export is the result of flattening a deck into a linear view.
type Export struct {
	FileName string
	Title    string
	HTML     []byte
	Slides   []Slide

	// Document is the rewritten working tree the HTML was rendered from.
	Document *html.Node
}

// NotesShown ...
func (e *Export) NotesShown() int {
	return e.countNotes(NoteShown)
}

// NotesHidden ...
func (e *Export) NotesHidden() int {
	return e.countNotes(NoteHidden)
}

func (e *Export) countNotes(state NoteState) int {
	n := 0
	for _, s := range e.Slides {
		if s.State == state {
			n++
		}
	}
	return n
}
