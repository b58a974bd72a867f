package service

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	defaultDeckName = "slides.html"
	linearSuffix    = "_linear_view.html"
)

// OutputFileName derives the download name from the last path segment of
// pageURL: "deck.html" becomes "deck_linear_view.html", and an empty segment
// falls back to "slides_linear_view.html".
func OutputFileName(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}

	name := tailURL(u.EscapedPath())
	if name == "" {
		name = defaultDeckName
	}
	return strings.TrimSuffix(name, ".html") + linearSuffix, nil
}

// HandoutFileName ...
func HandoutFileName(exportName string) string {
	return strings.TrimSuffix(exportName, ".html") + ".pdf"
}

// FileURL turns a local path into the file:// URL a browser would show for it.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}

// IsRemote reports whether source names an http(s) deck rather than a file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func stripFragment(pageURL string) string {
	return strings.SplitN(pageURL, "#", 2)[0]
}

func tailURL(url string) string {
	tmp := strings.Split(url, "/")
	return tmp[len(tmp)-1]
}
