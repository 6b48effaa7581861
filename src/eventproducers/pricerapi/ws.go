package pricerapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/eventproducers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func validationReply(err error) *eventmodels.WsReply {
	return &eventmodels.WsReply{
		Type:    eventmodels.WsMessageTypeError,
		Message: err.Error(),
	}
}

// wsReply recomputes everything for one form update.
func (s *Service) wsReply(ctx context.Context, update eventmodels.WsUpdate) *eventmodels.WsReply {
	if err := update.Inputs.Validate(); err != nil {
		eventproducers.PublishValidationFailed(ctx, eventmodels.RequestSourceWebsocket, err)
		return validationReply(err)
	}

	params, err := update.Parameters(s.Resolution)
	if err != nil {
		eventproducers.PublishValidationFailed(ctx, eventmodels.RequestSourceWebsocket, err)
		return validationReply(err)
	}

	if err := params.Validate(); err != nil {
		eventproducers.PublishValidationFailed(ctx, eventmodels.RequestSourceWebsocket, err)
		return validationReply(err)
	}

	resp, err := s.evaluate(ctx, eventmodels.RequestSourceWebsocket, "json", update.Inputs, params)
	if err != nil {
		eventproducers.PublishValidationFailed(ctx, eventmodels.RequestSourceWebsocket, err)
		return validationReply(err)
	}

	return &eventmodels.WsReply{
		Type:     eventmodels.WsMessageTypeResult,
		Result:   &resp.Result,
		Heatmaps: resp.Heatmaps,
	}
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// wsHandler answers every inbound update with exactly one reply until the client leaves.
func (s *Service) wsHandler(w http.ResponseWriter, r *http.Request) {
	logger := eventproducers.RequestLogger(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("wsHandler: failed to upgrade: %v", err)
		return
	}
	defer conn.Close()

	logger.Debug("wsHandler: client connected")

	for {
		var update eventmodels.WsUpdate
		var reply *eventmodels.WsReply

		if err := conn.ReadJSON(&update); err != nil {
			if !isDecodeError(err) {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Warnf("wsHandler: read: %v", err)
				}
				return
			}

			reply = validationReply(fmt.Errorf("wsHandler: decode: %w", err))
		} else {
			reply = s.wsReply(r.Context(), update)
		}

		if err := conn.WriteJSON(reply); err != nil {
			logger.Warnf("wsHandler: write: %v", err)
			return
		}
	}
}
