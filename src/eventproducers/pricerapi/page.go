package pricerapi

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/eventproducers"
	"github.com/jiaming2012/bsm-heatmap/src/heatmap"
	"github.com/jiaming2012/bsm-heatmap/src/pricing"
	"github.com/jiaming2012/bsm-heatmap/src/utils"
)

var indexPage = template.Must(template.New("index").Funcs(template.FuncMap{
	"dollars": utils.FormatDollars,
	"num":     utils.FormatNumber,
}).Parse(indexTemplate))

type indexData struct {
	Form        *eventmodels.PricingForm
	OptionTypes []eventmodels.OptionType
	Errors      []string
	Result      *pricing.Result
	HeatmapURL  template.URL
	CSVURL      template.URL
}

func writeHTML(w http.ResponseWriter, statusCode int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	buf.WriteTo(w)
}

// indexHandler serves the pricing form. Invalid input keeps the form on screen with
// the reasons listed above it.
func (s *Service) indexHandler(w http.ResponseWriter, r *http.Request) {
	logger := eventproducers.RequestLogger(r)

	form := s.newForm()
	data := indexData{
		Form:        form,
		OptionTypes: eventmodels.AllOptionTypes,
	}

	statusCode := 200
	err := form.ParseHTTPRequest(r)
	if err == nil {
		err = form.Validate(r)
	}

	if err != nil {
		logger.Infof("indexHandler: invalid form: %v", err)
		eventproducers.PublishValidationFailed(r.Context(), eventmodels.RequestSourceHTTP, err)
		statusCode = 400
		data.Errors = append(data.Errors, err.Error())
	} else {
		res, priceErr := s.price(r.Context(), eventmodels.RequestSourceHTTP, form.Inputs())
		if priceErr != nil {
			logger.Infof("indexHandler: %v", priceErr)
			_, statusCode = eventproducers.ServeErrorStatus(priceErr)
			data.Errors = append(data.Errors, priceErr.Error())
		} else {
			data.Result = &res
		}

		query, queryErr := form.Query()
		if queryErr != nil {
			logger.Errorf("indexHandler: %v", queryErr)
		} else {
			data.HeatmapURL = template.URL("/heatmap?" + query.Encode())
			data.CSVURL = template.URL("/api/v1/heatmap.csv?" + query.Encode())
		}
	}

	var buf bytes.Buffer
	if err := indexPage.Execute(&buf, data); err != nil {
		logger.Errorf("indexHandler: failed to execute template: %v", err)
		eventproducers.SetErrorResponse(eventproducers.InternalErrorType, 500, err, w)
		return
	}

	writeHTML(w, statusCode, &buf)
}

// heatmapPageHandler renders the four heatmaps for the query string as one HTML page.
func (s *Service) heatmapPageHandler(w http.ResponseWriter, r *http.Request) {
	form := s.newForm()
	if !eventproducers.ParseAndValidate(eventmodels.RequestSourceHTTP, form, w, r) {
		return
	}

	logger := eventproducers.RequestLogger(r)

	resp, err := s.evaluate(r.Context(), eventmodels.RequestSourceHTTP, "html", form.Inputs(), form.Heatmap())
	if err != nil {
		eventproducers.SetServeErrorResponse(eventmodels.RequestSourceHTTP, err, w, r)
		return
	}

	charts, err := heatmap.NewCharts(resp.Heatmaps.Grids()...)
	if err != nil {
		logger.Errorf("heatmapPageHandler: %v", err)
		eventproducers.SetErrorResponse(eventproducers.InternalErrorType, 500, err, w)
		return
	}

	var buf bytes.Buffer
	if err := s.Renderer.Render(&buf, charts...); err != nil {
		logger.Errorf("heatmapPageHandler: %v", err)
		eventproducers.SetErrorResponse(eventproducers.InternalErrorType, 500, err, w)
		return
	}

	writeHTML(w, 200, &buf)
}
