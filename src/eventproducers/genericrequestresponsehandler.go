package eventproducers

import (
	"context"
	"net/http"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	pubsub "github.com/jiaming2012/bsm-heatmap/src/eventpubsub"
)

type ServeFunc[Request eventmodels.ApiRequest3, Response any] func(ctx context.Context, req Request) (*Response, error)

// ParseAndValidate runs both request stages, writing a 400 error envelope on failure.
// It returns false when the request has already been answered.
func ParseAndValidate(source eventmodels.RequestSource, req eventmodels.ApiRequest3, w http.ResponseWriter, r *http.Request) bool {
	logger := RequestLogger(r)

	if err := req.ParseHTTPRequest(r); err != nil {
		logger.Infof("failed to parse http request: %v", err)
		PublishValidationFailed(r.Context(), source, err)

		if respErr := SetErrorResponse(ParserErrorType, 400, err, w); respErr != nil {
			logger.Errorf("ParseAndValidate: failed to set error response: %v", respErr)
		}
		return false
	}

	if err := req.Validate(r); err != nil {
		logger.Infof("failed to validate http request: %v", err)
		PublishValidationFailed(r.Context(), source, err)

		if respErr := SetErrorResponse(ValidationErrorType, 400, err, w); respErr != nil {
			logger.Errorf("ParseAndValidate: failed to set error response: %v", respErr)
		}
		return false
	}

	return true
}

func PublishValidationFailed(ctx context.Context, source eventmodels.RequestSource, err error) {
	pubsub.Publish("ParseAndValidate", eventmodels.ValidationFailedEventName, eventmodels.ValidationFailedEvent{
		RequestID: RequestID(ctx),
		Source:    source,
		Err:       err,
	})
}

// ApiRequestHandler parses and validates req, then answers with the JSON encoding of
// whatever serve returns.
func ApiRequestHandler[Request eventmodels.ApiRequest3, Response any](req Request, serve ServeFunc[Request, Response], w http.ResponseWriter, r *http.Request) {
	if !ParseAndValidate(eventmodels.RequestSourceHTTP, req, w, r) {
		return
	}

	logger := RequestLogger(r)

	resp, err := serve(r.Context(), req)
	if err != nil {
		SetServeErrorResponse(eventmodels.RequestSourceHTTP, err, w, r)
		return
	}

	if err := SetResponse(resp, w); err != nil {
		logger.Errorf("ApiRequestHandler: failed to set response: %v", err)
		if respErr := SetErrorResponse(InternalErrorType, 500, err, w); respErr != nil {
			logger.Errorf("ApiRequestHandler: failed to set error response: %v", respErr)
		}
	}
}

// SetServeErrorResponse answers a request that passed validation but could not be served.
func SetServeErrorResponse(source eventmodels.RequestSource, err error, w http.ResponseWriter, r *http.Request) {
	logger := RequestLogger(r)

	errType, statusCode := ServeErrorStatus(err)
	if errType == ValidationErrorType {
		logger.Infof("failed to serve request: %v", err)
		PublishValidationFailed(r.Context(), source, err)
	} else {
		logger.Errorf("failed to serve request: %v", err)
	}

	if respErr := SetErrorResponse(errType, statusCode, err, w); respErr != nil {
		logger.Errorf("SetServeErrorResponse: failed to set error response: %v", respErr)
	}
}
