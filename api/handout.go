package api

import (
	"bytes"
	"net/http"

	"github.com/monmaru/linearview/library/log"
	"github.com/monmaru/linearview/service"
)

func HandleHandout(decks service.DeckService, exporter service.Exporter, handout service.Handout, storage service.Storage) http.Handler {
	return &HandoutHandler{
		deckExporter: deckExporter{decks: decks, exporter: exporter},
		handout:      handout,
		storage:      storage,
	}
}

// HandoutHandler serves the flattened deck as a PDF handout.
type HandoutHandler struct {
	deckExporter
	handout service.Handout
	storage service.Storage
}

func (h *HandoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	log.Debugf(ctx, "start write pdf")
	var buf bytes.Buffer
	if err := h.handout.Write(ctx, &buf, export); err != nil {
		log.Errorf(ctx, "handout error: %v", err)
		writeMessage(w, msgHandoutFailed, http.StatusInternalServerError)
		return
	}
	log.Debugf(ctx, "finished write pdf")

	deliver(ctx, w, h.storage, buf.Bytes(), service.HandoutFileName(export.FileName), "application/pdf")
}
