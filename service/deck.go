package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opencensus.io/trace"
)

const defaultFetchTimeout = 60 * time.Second

var (
	// ErrDeckNotFound means the deck could not be retrieved from its URL.
	ErrDeckNotFound = errors.New("deck not found")
	// ErrInvalidDeck means the deck markup could not be read as HTML.
	ErrInvalidDeck = errors.New("invalid deck")
)

type DeckService interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
	Open(path string) (*goquery.Document, error)
}

type DeckServiceImpl struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewDeckService returns a DeckService using client, or http.DefaultClient
// when nil. Fetches are abandoned after timeout (60s when zero).
func NewDeckService(client *http.Client, timeout time.Duration) DeckService {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &DeckServiceImpl{httpClient: client, timeout: timeout}
}

func (s *DeckServiceImpl) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, span := trace.StartSpan(ctx, "service.DeckFetch")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPageURL, err)
	}

	resp, err := s.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeckNotFound, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrDeckNotFound, url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDeckNotFound, url, err)
	}
	return doc, nil
}

func (s *DeckServiceImpl) Open(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a deck from raw HTML.
func Parse(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
	}
	return doc, nil
}
