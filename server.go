package linearview

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/monmaru/linearview/api"
	"github.com/monmaru/linearview/library/log"
	"github.com/monmaru/linearview/library/tracing"
	"github.com/monmaru/linearview/service"
)

// NewRouter wires the download API. storage may be nil, in which case every
// artifact is returned inline regardless of size.
func NewRouter(cfg Config, decks service.DeckService, storage service.Storage) (http.Handler, error) {
	exporter, err := service.NewExporter(cfg.SlideSelector)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(timeTrack)

	r.Get("/_ah/start", func(w http.ResponseWriter, r *http.Request) {
		log.Infof(r.Context(), "START")
	})
	r.Get("/_ah/stop", func(w http.ResponseWriter, r *http.Request) {
		log.Infof(r.Context(), "STOP")
	})
	r.Method(http.MethodPost, "/api/linear/export", api.HandleLinear(decks, exporter, storage))
	r.Method(http.MethodPost, "/api/linear/handout", api.HandleHandout(decks, exporter, service.NewPDFHandout(), storage))

	return tracing.Handler(r), nil
}

func timeTrack(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf(r.Context(), "%s took %s", r.RequestURI, time.Since(start))
	})
}
