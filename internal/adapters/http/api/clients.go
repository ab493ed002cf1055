// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/derslik/derslik/internal/adapters/ws"
)

// ClientsHandler handles room client listing requests.
type ClientsHandler struct {
	deps Dependencies
}

// NewClientsHandler creates a new room clients handler.
func NewClientsHandler(deps Dependencies) *ClientsHandler {
	return &ClientsHandler{deps: deps}
}

// clientsResponse is the room membership snapshot.
type clientsResponse struct {
	RoomID  string          `json:"room_id"`
	Clients []ws.ClientInfo `json:"clients"`
	Count   int             `json:"count"`
}

// HandleListClients handles GET /api/v1/rooms/{room}/clients requests.
func (h *ClientsHandler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	const op = "api.room_clients"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	room, ok := roomFromPath(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	clients := h.deps.ListClients(room)
	writeJSON(w, http.StatusOK, clientsResponse{
		RoomID:  room,
		Clients: clients,
		Count:   len(clients),
	})
}

// roomFromPath extracts {room} from /api/v1/rooms/{room}/clients.
func roomFromPath(path string) (string, bool) {
	rest := strings.TrimPrefix(path, "/api/v1/rooms/")
	if rest == path {
		return "", false
	}
	room, tail, ok := strings.Cut(rest, "/")
	if !ok || room == "" || tail != "clients" {
		return "", false
	}
	return room, true
}
