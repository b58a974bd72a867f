package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/monmaru/linearview/library/log"
	"github.com/monmaru/linearview/model"
	"github.com/monmaru/linearview/service"
)

const maxFileSize = 29360128 // 28MB

const (
	msgInvalidRequest = "Invalid request format!!"
	msgNotFound       = "スライドが見つかりませんでした。"
	msgDownloadFailed = "ダウンロード中にエラーが発生しました。"
	msgExportFailed   = "HTML作成中にエラーが発生しました。"
	msgHandoutFailed  = "PDF作成中にエラーが発生しました。"
)

var errNoURL = errors.New("url is required")

func parseFrom(r *http.Request) (*model.Request, error) {
	defer r.Body.Close()
	var req model.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, maxFileSize)).Decode(&req); err != nil {
		return nil, err
	}
	if req.URL == "" && req.HTML == "" {
		return nil, errNoURL
	}
	return &req, nil
}

// deckExporter turns a request into an export, fetching the deck unless the
// request carries its markup inline.
type deckExporter struct {
	decks    service.DeckService
	exporter service.Exporter
}

func (d *deckExporter) load(ctx context.Context, req *model.Request) (*goquery.Document, error) {
	if req.HTML != "" {
		return service.Parse(strings.NewReader(req.HTML))
	}
	return d.decks.Fetch(ctx, req.URL)
}

// export writes an error response itself and returns nil when it fails.
func (d *deckExporter) export(ctx context.Context, w http.ResponseWriter, req *model.Request) *model.Export {
	doc, err := d.load(ctx, req)
	if err != nil {
		log.Errorf(ctx, "fetch error: %v", err)
		writeError(w, err)
		return nil
	}

	exporter := d.exporter
	if req.Selector != "" {
		exporter, err = service.NewExporter(req.Selector)
		if err != nil {
			log.Infof(ctx, "bad selector: %v", err)
			writeMessage(w, msgInvalidRequest, http.StatusBadRequest)
			return nil
		}
	}

	export, err := exporter.Export(ctx, doc, req.URL)
	if err != nil {
		log.Errorf(ctx, "export error: %v", err)
		writeError(w, err)
		return nil
	}
	log.Debugf(ctx, "exported %s: %d slides", export.FileName, len(export.Slides))
	return export
}

// statusFor maps service errors to a response status and message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrDeckNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, service.ErrInvalidDeck),
		errors.Is(err, service.ErrInvalidPageURL),
		errors.Is(err, service.ErrNoDocument):
		return http.StatusBadRequest, msgInvalidRequest
	default:
		return http.StatusInternalServerError, msgExportFailed
	}
}

func writeError(w http.ResponseWriter, err error) {
	code, message := statusFor(err)
	writeMessage(w, message, code)
}

func writeMessage(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(model.Response{Message: message})
}

// deliver streams body back as an attachment, or hands it to storage and
// replies with the public URL when it is too large for a response.
func deliver(ctx context.Context, w http.ResponseWriter, storage service.Storage, body []byte, fileName, contentType string) {
	if storage != nil && len(body) > maxFileSize {
		url, err := storage.Upload(ctx, ioutil.NopCloser(bytes.NewReader(body)), fileName)
		if err != nil {
			log.Errorf(ctx, "upload error %v", err)
			writeMessage(w, msgDownloadFailed, http.StatusInternalServerError)
			return
		}
		writeMessage(w, url, http.StatusCreated)
		return
	}

	log.Debugf(ctx, "content length is %d", len(body))
	w.Header().Set("Content-Disposition", service.ContentDisposition(fileName))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-FileName", fileName)
	if _, err := w.Write(body); err != nil {
		log.Errorf(ctx, "write error: %#v", err)
	}
}
