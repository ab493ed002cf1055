// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/derslik/derslik/internal/adapters/ws"
	"github.com/derslik/derslik/pkg/logger"
)

// upgrader performs the websocket handshake. Origin checking is left to
// the deployment edge; classroom clients include Unity, which sends no
// browser origin at all.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SocketHandler handles classroom websocket connections.
type SocketHandler struct {
	deps       Dependencies
	sendBuffer int
	logger     logger.Logger
}

// NewSocketHandler creates a new classroom socket handler.
func NewSocketHandler(deps Dependencies, sendBuffer int) *SocketHandler {
	return &SocketHandler{
		deps:       deps,
		sendBuffer: sendBuffer,
		logger:     logger.Named("api.socket"),
	}
}

// HandleClassroomSocket handles GET /ws/v1/classroom/{room}?token=
// requests. The upgrade happens before auth so a rejected token can be
// answered with a proper close code instead of a plain HTTP error.
func (h *SocketHandler) HandleClassroomSocket(w http.ResponseWriter, r *http.Request) {
	room := strings.TrimPrefix(r.URL.Path, "/ws/v1/classroom/")
	if room == "" || strings.Contains(room, "/") {
		http.NotFound(w, r)
		return
	}
	token := r.URL.Query().Get("token")

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn(r.Context(), "websocket upgrade failed", logger.Error(err))
		return
	}

	transport := ws.NewConn(wsConn, h.sendBuffer)
	if _, err := h.deps.Connect(transport, room, token); err != nil {
		h.logger.Warn(r.Context(), "websocket connection rejected",
			logger.String("room", room),
			logger.Error(err))
		return
	}

	h.deps.ReadLoop(r.Context(), transport)
}
