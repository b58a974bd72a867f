package api

import (
	"net/http"

	"github.com/monmaru/linearview/library/log"
	"github.com/monmaru/linearview/service"
)

func HandleLinear(decks service.DeckService, exporter service.Exporter, storage service.Storage) http.Handler {
	return &LinearHandler{
		deckExporter: deckExporter{decks: decks, exporter: exporter},
		storage:      storage,
	}
}

// LinearHandler serves the flattened deck as an HTML download.
type LinearHandler struct {
	deckExporter
	storage service.Storage
}

func (h *LinearHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := parseFrom(r)
	if err != nil {
		log.Infof(ctx, "failed to parse request : %v", err)
		writeMessage(w, msgInvalidRequest, http.StatusBadRequest)
		return
	}

	export := h.export(ctx, w, req)
	if export == nil {
		return
	}
	deliver(ctx, w, h.storage, export.HTML, export.FileName, "text/html; charset=utf-8")
}
