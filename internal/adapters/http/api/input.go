// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/derslik/derslik/internal/domain/model"
	"github.com/derslik/derslik/pkg/logger"
)

// InputHandler handles teacher input requests.
type InputHandler struct {
	deps        Dependencies
	transcriber Transcriber
	defaultRoom string
	logger      logger.Logger
}

// NewInputHandler creates a new teacher input handler.
func NewInputHandler(deps Dependencies, transcriber Transcriber, defaultRoom string) *InputHandler {
	return &InputHandler{
		deps:        deps,
		transcriber: transcriber,
		defaultRoom: defaultRoom,
		logger:      logger.Named("api.input"),
	}
}

// HandleTeacherInput handles POST /api/v1/teacher/input requests.
// Validation happens before any state mutation: a malformed request is a
// 400 and nothing downstream runs.
func (h *InputHandler) HandleTeacherInput(w http.ResponseWriter, r *http.Request) {
	const op = "api.teacher_input"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	content := req.Content
	if req.InputType == string(model.InputVoice) {
		content = h.transcribe(r, req.Content)
	}

	room := req.RoomID
	if room == "" {
		room = h.defaultRoom
	}

	decision, err := h.deps.Dispatch(r.Context(), room, model.DecisionEvent{
		Source:        model.Source(req.Source),
		TeacherID:     req.TeacherID,
		StudentID:     req.StudentID,
		TeacherAction: req.TeacherAction,
		InputType:     model.InputType(req.InputType),
		Content:       content,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dispatch_failed", WrapKind(op, ErrDispatch, err))
		return
	}

	writeJSON(w, http.StatusOK, decision)
}

// transcribe resolves base64 audio to text. Every failure degrades to
// empty text so the event still flows; intent then resolves to unknown.
func (h *InputHandler) transcribe(r *http.Request, content string) string {
	if h.transcriber == nil {
		h.logger.Warn(r.Context(), "voice input without a transcriber, content dropped")
		return ""
	}

	// Tolerate data-URL form: "data:audio/wav;base64,<payload>".
	if i := strings.Index(content, "base64,"); i >= 0 {
		content = content[i+len("base64,"):]
	}

	audio, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		h.logger.Warn(r.Context(), "voice content is not valid base64", logger.Error(err))
		return ""
	}

	text, err := h.transcriber.Transcribe(r.Context(), audio)
	if err != nil {
		h.logger.Warn(r.Context(), "transcription failed, content dropped", logger.Error(err))
		return ""
	}
	return text
}
