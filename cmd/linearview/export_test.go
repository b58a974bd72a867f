package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deckHTML = `<!DOCTYPE html><html><head><title>Deck</title><script src="dz.js"></script></head><body>
<section><h1>One</h1></section>
<section><h1>Two</h1><footer>Speaker note</footer></section>
</body></html>`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saved := exportFlags
	t.Cleanup(func() {
		exportFlags = saved
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeDeck(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.html")
	require.NoError(t, os.WriteFile(path, []byte(deckHTML), 0o644))
	return path
}

func TestExportCmd_File(t *testing.T) {
	src := writeDeck(t)
	out := t.TempDir()

	stdout, err := runCmd(t, "export", src, "--out", out, "--url", "https://ex.com/deck.html#3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "deck_linear_view.html (2 slides, 1 notes)")

	b, err := os.ReadFile(filepath.Join(out, "deck_linear_view.html"))
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	require.NoError(t, err)

	links := doc.Find("section a")
	require.Equal(t, 2, links.Length())
	assert.Equal(t, "https://ex.com/deck.html#1", links.First().AttrOr("href", ""))
	assert.Equal(t, "Slide 2", links.Last().Text())
	assert.Equal(t, 0, doc.Find("script").Length())
}

func TestExportCmd_FileURLLinks(t *testing.T) {
	src := writeDeck(t)

	stdout, err := runCmd(t, "export", src, "--stdout")
	require.NoError(t, err)
	assert.Contains(t, stdout, `href="file:///`)
	assert.Contains(t, stdout, `/deck.html#2"`)
	assert.True(t, strings.HasPrefix(stdout, "<!DOCTYPE html>"))
}

func TestExportCmd_RemoteWithHandout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(deckHTML))
	}))
	defer ts.Close()
	out := t.TempDir()

	_, err := runCmd(t, "export", ts.URL+"/talks/ghidra.html", "--out", out, "--handout")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "ghidra_linear_view.html"))
	pdf, err := os.ReadFile(filepath.Join(out, "ghidra_linear_view.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestExportCmd_Errors(t *testing.T) {
	_, err := runCmd(t, "export", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)

	_, err = runCmd(t, "export", writeDeck(t), "--selector", "section[")
	assert.Error(t, err)

	_, err = runCmd(t, "export")
	assert.Error(t, err)
}
