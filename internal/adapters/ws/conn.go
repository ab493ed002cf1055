package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/derslik/derslik/internal/auth"
	"github.com/derslik/derslik/internal/domain/model"
	"github.com/derslik/derslik/pkg/logger"
)

// Write path constants.
const (
	// writeWait bounds how long a single frame write may take.
	writeWait = 10 * time.Second

	// defaultSendBuffer is the outbound payload queue depth per connection.
	defaultSendBuffer = 32
)

// Conn adapts a gorilla websocket connection to the Transport
// interface. Outbound payloads go through a buffered queue drained by a
// single writer goroutine, so one slow consumer fails fast instead of
// stalling the room's dispatch sweep.
type Conn struct {
	ws   *websocket.Conn
	send chan any
	done chan struct{}

	closeOnce sync.Once

	mu  sync.Mutex // guards err
	err error
}

// NewConn wraps a gorilla websocket connection and starts its writer.
func NewConn(ws *websocket.Conn, sendBuffer int) *Conn {
	if sendBuffer <= 0 {
		sendBuffer = defaultSendBuffer
	}
	c := &Conn{
		ws:   ws,
		send: make(chan any, sendBuffer),
		done: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

// writeLoop drains the send queue. Gorilla allows one concurrent writer
// per connection; this goroutine is it.
func (c *Conn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case v := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(v); err != nil {
				c.fail(err)
				return
			}
		}
	}
}

// fail records the first write error; later WriteJSON calls surface it.
func (c *Conn) fail(err error) {
	c.mu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.mu.Unlock()
}

// ReadJSON implements Transport.
func (c *Conn) ReadJSON(v any) error {
	return c.ws.ReadJSON(v)
}

// WriteJSON implements Transport: enqueue or fail, never block. A full
// queue means the consumer stopped keeping up and is treated as a send
// failure.
func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	err := c.err
	c.mu.Unlock()
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return ErrConnClosed
	case c.send <- v:
		return nil
	default:
		c.fail(ErrSendBufferFull)
		return ErrSendBufferFull
	}
}

// CloseWithCode implements Transport: best-effort close frame with the
// given code, then the underlying close.
func (c *Conn) CloseWithCode(code int, reason string) error {
	c.closeOnce.Do(func() { close(c.done) })
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait))
	return c.ws.Close()
}

// Close implements Transport.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return c.ws.Close()
}

// inboundMessage is what a teacher/admin socket may send to drive the
// classroom without the HTTP endpoint.
type inboundMessage struct {
	StudentID     string `json:"student_id"`
	TeacherAction string `json:"teacher_action,omitempty"`
	InputType     string `json:"input_type,omitempty"`
	Content       string `json:"content,omitempty"`
}

// ReadLoop consumes inbound frames until the connection dies, then
// disconnects it. Teacher and admin frames become events dispatched to
// the connection's own room; frames from other roles are drained and
// ignored (consumers must still be read for close frames to work).
func (g *Gateway) ReadLoop(ctx context.Context, transport Transport) {
	defer g.Disconnect(transport)

	for {
		var msg inboundMessage
		if err := transport.ReadJSON(&msg); err != nil {
			return
		}

		g.mu.RLock()
		meta, ok := g.meta[transport]
		g.mu.RUnlock()
		if !ok {
			return
		}
		if meta.role != auth.RoleTeacher && meta.role != auth.RoleAdmin {
			continue
		}
		if msg.StudentID == "" {
			g.logger.Warn(ctx, "inbound frame without student id skipped",
				logger.String("room", meta.room),
				logger.String("client_id", meta.clientID))
			continue
		}
		if msg.TeacherAction != "" && !model.ValidTeacherAction(msg.TeacherAction) {
			g.logger.Warn(ctx, "inbound frame with unknown teacher action skipped",
				logger.String("room", meta.room),
				logger.String("client_id", meta.clientID),
				logger.String("teacher_action", msg.TeacherAction))
			continue
		}

		inputType := model.InputType(msg.InputType)
		if inputType == "" {
			inputType = model.InputText
		}
		if inputType != model.InputText && inputType != model.InputVoice {
			g.logger.Warn(ctx, "inbound frame with unknown input type skipped",
				logger.String("room", meta.room),
				logger.String("client_id", meta.clientID),
				logger.String("input_type", msg.InputType))
			continue
		}

		event := model.DecisionEvent{
			Source:        model.SourceWeb,
			TeacherID:     meta.subject,
			StudentID:     msg.StudentID,
			TeacherAction: msg.TeacherAction,
			InputType:     inputType,
			Content:       msg.Content,
		}

		if _, err := g.Dispatch(ctx, meta.room, event); err != nil {
			g.logger.Error(ctx, "inbound event dispatch failed",
				logger.String("room", meta.room),
				logger.String("client_id", meta.clientID),
				logger.Error(err))
		}
	}
}
