package service

import (
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"go.opencensus.io/trace"

	"github.com/monmaru/linearview/model"
)

// Handout renders the slides of an export into a printable document.
type Handout interface {
	Write(ctx context.Context, w io.Writer, export *model.Export) error
}

type PDFHandout struct{}

func NewPDFHandout() Handout {
	return &PDFHandout{}
}

// Write emits one landscape A4 page per slide: a linked "Slide N" header,
// the slide text and, when shown, the speaker note.
func (h *PDFHandout) Write(ctx context.Context, w io.Writer, export *model.Export) error {
	_, span := trace.StartSpan(ctx, "service.Handout")
	defer span.End()

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(export.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if len(export.Slides) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, tr(export.Title), "", 1, "L", false, 0, "")
	}
	for _, slide := range export.Slides {
		h.addPage(pdf, tr, slide)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing handout: %w", err)
	}
	return nil
}

func (h *PDFHandout) addPage(pdf *gofpdf.Fpdf, tr func(string) string, slide model.Slide) {
	pdf.AddPage()

	pdf.SetFont("Courier", "B", 11)
	pdf.SetTextColor(0x5d, 0xad, 0xe2)
	pdf.CellFormat(0, 8, fmt.Sprintf("Slide %d", slide.Index), "B", 1, "R", false, 0, slide.DeepLink)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, tr(slide.Text), "", "L", false)

	if slide.State != model.NoteShown {
		return
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(0xee, 0xee, 0xee)
	pdf.SetTextColor(0x44, 0x44, 0x44)
	pdf.MultiCell(0, 5, tr(slide.Note), "T", "L", true)
}
