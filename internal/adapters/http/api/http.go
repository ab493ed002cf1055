// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/derslik/derslik/internal/adapters/ws"
	"github.com/derslik/derslik/internal/auth"
	"github.com/derslik/derslik/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Dispatch runs one event through the pipeline and fans the result
	// out to the room's consumers.
	Dispatch(ctx context.Context, roomID string, event model.DecisionEvent) (model.Decision, error)

	// Connect authenticates and registers a websocket transport.
	Connect(transport ws.Transport, roomID, token string) (auth.Claims, error)

	// ReadLoop drives a registered transport until it dies.
	ReadLoop(ctx context.Context, transport ws.Transport)

	// ListClients returns the room's registered connections.
	ListClients(roomID string) []ws.ClientInfo
}

// Transcriber converts recorded audio to text for voice inputs.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	inputHandler   *InputHandler
	clientsHandler *ClientsHandler
	socketHandler  *SocketHandler
}

// NewServer creates a new API server with all handlers. The transcriber
// may be nil, in which case voice inputs resolve to empty text.
func NewServer(deps Dependencies, statsProvider StatsProvider, transcriber Transcriber, defaultRoom string, sendBuffer int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		inputHandler:   NewInputHandler(deps, transcriber, defaultRoom),
		clientsHandler: NewClientsHandler(deps),
		socketHandler:  NewSocketHandler(deps, sendBuffer),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/v1/teacher/input", MetricsMiddleware(s.inputHandler.HandleTeacherInput, "teacher_input"))
	mux.HandleFunc("/api/v1/rooms/", MetricsMiddleware(s.clientsHandler.HandleListClients, "room_clients"))

	// The socket route hijacks the connection; no status middleware.
	mux.HandleFunc("/ws/v1/classroom/", s.socketHandler.HandleClassroomSocket)
}

// inputRequest mirrors the POST /api/v1/teacher/input schema. For voice
// input the content carries base64 audio, data-URL headers tolerated.
type inputRequest struct {
	Source        string `json:"source"`
	RoomID        string `json:"room_id,omitempty"`
	TeacherID     string `json:"teacher_id,omitempty"`
	StudentID     string `json:"student_id"`
	TeacherAction string `json:"teacher_action,omitempty"`
	InputType     string `json:"input_type"`
	Content       string `json:"content,omitempty"`
}

func (e inputRequest) validate() error {
	switch {
	case strings.TrimSpace(e.StudentID) == "":
		return errors.New("missing student_id")
	case e.Source != string(model.SourceUnity) && e.Source != string(model.SourceWeb):
		return errors.New("invalid source; must be unity or web")
	case e.InputType != string(model.InputText) && e.InputType != string(model.InputVoice):
		return errors.New("invalid input_type; must be text or voice")
	}
	if e.TeacherAction != "" && !model.ValidTeacherAction(e.TeacherAction) {
		return errors.New("unknown teacher_action")
	}
	return nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
