package pricerapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jiaming2012/bsm-heatmap/src/eventproducers"
)

const apiPrefix = "/api/v1"

// handleFunc is a replacement for mux.HandleFunc
// which enriches the handler's HTTP instrumentation with the pattern as the http.route.
func handleFunc(router *mux.Router, pattern string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
	return router.Handle(pattern, otelhttp.WithRouteTag(pattern, http.HandlerFunc(f)))
}

func SetupHandler(router *mux.Router, s *Service) {
	handleFunc(router, "/", s.indexHandler).Methods(http.MethodGet)
	handleFunc(router, "/heatmap", s.heatmapPageHandler).Methods(http.MethodGet)
	handleFunc(router, "/ws", s.wsHandler).Methods(http.MethodGet)
	handleFunc(router, "/health", healthHandler).Methods(http.MethodGet)

	// registered on the root router so a wrong method answers 405 instead of 404
	handleAPI := func(pattern string, f func(http.ResponseWriter, *http.Request)) *mux.Route {
		return handleFunc(router, apiPrefix+pattern, f)
	}

	handleAPI("/price", s.priceHandler).Methods(http.MethodPost)
	handleAPI("/heatmap", s.heatmapHandler).Methods(http.MethodPost)
	handleAPI("/heatmap.csv", s.heatmapCSVHandler).Methods(http.MethodGet)
}

// NewRouter wires every route behind the request id middleware and the server-wide
// HTTP instrumentation.
func NewRouter(s *Service) http.Handler {
	router := mux.NewRouter()
	router.Use(eventproducers.RequestIDMiddleware)

	SetupHandler(router, s)

	return otelhttp.NewHandler(router, "/")
}
