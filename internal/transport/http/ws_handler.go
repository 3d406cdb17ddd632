package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ircrelay-server/internal/codec"
	"github.com/vovakirdan/ircrelay-server/internal/core"
	"github.com/vovakirdan/ircrelay-server/internal/proto"
	"github.com/vovakirdan/ircrelay-server/internal/utils"
)

// WSHandler upgrades HTTP connections and bridges them to the hub. Every
// frame in both directions passes through the XOR codec, so payloads go over
// the wire as binary messages.
type WSHandler struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	client := core.NewClient(utils.NewID())
	h.hub.Connect(client)
	defer h.hub.Disconnect(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status := websocket.StatusNormalClosure
	reason := "closing"
	if err != nil && !errors.Is(err, context.Canceled) {
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if s := websocket.CloseStatus(err); s != 0 {
			status = s
		}
		if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
			err = nil
		}
		if err != nil {
			if status == websocket.StatusNormalClosure {
				status = websocket.StatusInternalError
			}
			reason = err.Error()
			h.log.Warn().Err(err).Msg("ws connection closed with error")
		}
	}

	conn.Close(status, reason)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		_, frame, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var inbound proto.Inbound
		if err := json.Unmarshal(codec.Apply(frame), &inbound); err != nil {
			// Malformed frame: log and keep the connection. No reply.
			h.log.Warn().Err(err).Str("conn_id", client.ID).Msg("malformed frame")
			continue
		}

		switch inbound.Type {
		case proto.InboundTypeGetPrefix:
			h.hub.GetPrefix(client, inbound.ClientID)
		case proto.InboundTypeSetPrefix:
			h.hub.SetPrefix(client, inbound.ClientID, inbound.NewPrefix)
		case proto.InboundTypeText:
			h.hub.Text(client, inbound.ClientID, inbound.Author, inbound.Message)
		default:
			h.log.Warn().Str("conn_id", client.ID).Str("type", inbound.Type).Msg("unknown frame type")
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event := <-client.Events:
			frame, err := json.Marshal(outboundFromEvent(event))
			if err != nil {
				return err
			}
			if err := conn.Write(ctx, websocket.MessageBinary, codec.Apply(frame)); err != nil {
				h.log.Error().Err(err).Str("conn_id", client.ID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
