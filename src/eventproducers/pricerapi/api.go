package pricerapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/eventproducers"
	"github.com/jiaming2012/bsm-heatmap/src/eventservices"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
)

func (s *Service) priceHandler(w http.ResponseWriter, r *http.Request) {
	eventproducers.ApiRequestHandler[*eventmodels.PriceRequest, pricing.Result](&eventmodels.PriceRequest{}, s.servePrice, w, r)
}

func (s *Service) heatmapHandler(w http.ResponseWriter, r *http.Request) {
	req := eventmodels.NewHeatmapRequest(s.Resolution)
	eventproducers.ApiRequestHandler[*eventmodels.HeatmapRequest, eventmodels.HeatmapResponse](req, s.serveHeatmap, w, r)
}

// heatmapCSVHandler exports one grid, chosen by the type query parameter, in long format.
func (s *Service) heatmapCSVHandler(w http.ResponseWriter, r *http.Request) {
	form := s.newForm()
	if !eventproducers.ParseAndValidate(eventmodels.RequestSourceHTTP, form, w, r) {
		return
	}

	logger := eventproducers.RequestLogger(r)

	resp, err := s.evaluate(r.Context(), eventmodels.RequestSourceHTTP, "csv", form.Inputs(), form.Heatmap())
	if err != nil {
		eventproducers.SetServeErrorResponse(eventmodels.RequestSourceHTTP, err, w, r)
		return
	}

	grid, err := resp.Heatmaps.Get(form.Type)
	if err != nil {
		logger.Errorf("heatmapCSVHandler: %v", err)
		eventproducers.SetErrorResponse(eventproducers.InternalErrorType, 500, err, w)
		return
	}

	var buf bytes.Buffer
	if err := eventservices.WriteGridCSV(&buf, grid); err != nil {
		logger.Errorf("heatmapCSVHandler: %v", err)
		eventproducers.SetErrorResponse(eventproducers.InternalErrorType, 500, err, w)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s_heatmap.csv", form.Type)))
	w.WriteHeader(200)

	if _, err := buf.WriteTo(w); err != nil {
		logger.Errorf("heatmapCSVHandler: failed to write response: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(200)
	w.Write([]byte("ok"))
}
