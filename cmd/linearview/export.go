package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/monmaru/linearview/service"
)

var exportFlags struct {
	pageURL  string
	outDir   string
	selector string
	handout  bool
	stdout   bool
	timeout  time.Duration
}

var exportCmd = &cobra.Command{
	Use:   "export <file-or-url>",
	Short: "Write the linear view of a deck",
	Long: `Export reads a deck from a local HTML file or an http(s) URL and writes
<name>_linear_view.html into the current directory (or --out).

Slide links point at --url when given, otherwise at the deck's own location.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.pageURL, "url", "", "page URL used for slide links and the output name")
	f.StringVarP(&exportFlags.outDir, "out", "o", ".", "directory to write into")
	f.StringVar(&exportFlags.selector, "selector", service.DefaultSlideSelector, "CSS selector matching one slide")
	f.BoolVar(&exportFlags.handout, "handout", false, "also write a PDF handout")
	f.BoolVar(&exportFlags.stdout, "stdout", false, "print the HTML instead of writing a file")
	f.DurationVar(&exportFlags.timeout, "timeout", 60*time.Second, "fetch timeout for remote decks")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	source := args[0]

	exporter, err := service.NewExporter(exportFlags.selector)
	if err != nil {
		return err
	}

	decks := service.NewDeckService(nil, exportFlags.timeout)
	pageURL := exportFlags.pageURL
	var doc *goquery.Document
	if service.IsRemote(source) {
		doc, err = decks.Fetch(ctx, source)
		if pageURL == "" {
			pageURL = source
		}
	} else {
		doc, err = decks.Open(source)
		if err == nil && pageURL == "" {
			pageURL, err = service.FileURL(source)
		}
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", source, err)
	}

	export, err := exporter.Export(ctx, doc, pageURL)
	if err != nil {
		return err
	}

	if exportFlags.stdout {
		_, err := cmd.OutOrStdout().Write(export.HTML)
		return err
	}

	path := filepath.Join(exportFlags.outDir, export.FileName)
	if err := os.WriteFile(path, export.HTML, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cmd.Printf("wrote %s (%d slides, %d notes)\n", path, len(export.Slides), export.NotesShown())

	if !exportFlags.handout {
		return nil
	}
	pdfPath := filepath.Join(exportFlags.outDir, service.HandoutFileName(export.FileName))
	f, err := os.Create(pdfPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", pdfPath, err)
	}
	defer f.Close()
	if err := service.NewPDFHandout().Write(ctx, f, export); err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", pdfPath)
	return f.Close()
}
