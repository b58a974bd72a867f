package service

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		pageURL string
		want    string
	}{
		{"https://ex.com/deck.html#3", "deck_linear_view.html"},
		{"https://ex.com/guides/ghidra/intro.html?theme=dark", "intro_linear_view.html"},
		{"https://ex.com/guides/", "slides_linear_view.html"},
		{"https://ex.com", "slides_linear_view.html"},
		{"file:///home/me/talk.htm", "talk.htm_linear_view.html"},
		{"https://ex.com/my%20deck.html", "my%20deck_linear_view.html"},
		{"", "slides_linear_view.html"},
	}
	for _, tt := range tests {
		t.Run(tt.pageURL, func(t *testing.T) {
			got, err := OutputFileName(tt.pageURL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandoutFileName(t *testing.T) {
	assert.Equal(t, "deck_linear_view.pdf", HandoutFileName("deck_linear_view.html"))
}

func TestStripFragment(t *testing.T) {
	assert.Equal(t, "https://ex.com/deck.html", stripFragment("https://ex.com/deck.html#3"))
	assert.Equal(t, "https://ex.com/deck.html", stripFragment("https://ex.com/deck.html"))
	assert.Equal(t, "https://ex.com/a?b=c", stripFragment("https://ex.com/a?b=c#x#y"))
}

func TestFileURL(t *testing.T) {
	got, err := FileURL(filepath.Join("testdata", "deck.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "file:///"))
	assert.True(t, strings.HasSuffix(got, "/testdata/deck.html"))

	name, err := OutputFileName(got)
	require.NoError(t, err)
	assert.Equal(t, "deck_linear_view.html", name)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://ex.com/deck.html"))
	assert.True(t, IsRemote("http://ex.com/deck.html"))
	assert.False(t, IsRemote("deck.html"))
	assert.False(t, IsRemote("/tmp/http/deck.html"))
}
