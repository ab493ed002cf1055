// Package ws is the realtime dispatch gateway: room/role-addressed
// connections feeding events into the decision pipeline and fanning the
// results back out.
//
// Fan-out contract: strict payloads go to unity-role consumers, full
// payloads to debug-role consumers. Ordering is guaranteed per room and
// nowhere else; a send failure disconnects only the failing connection.
package ws

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/derslik/derslik/internal/auth"
	"github.com/derslik/derslik/internal/domain/model"
	"github.com/derslik/derslik/pkg/logger"
	"github.com/derslik/derslik/pkg/metrics"
)

// CloseAuthFailure is the websocket close code sent on token rejection.
const CloseAuthFailure = 4003

// Transport is the connection surface the gateway drives. Production
// wraps a gorilla websocket; tests use in-memory fakes.
type Transport interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	CloseWithCode(code int, reason string) error
	Close() error
}

// Processor runs one event through the decision pipeline.
type Processor interface {
	Process(ctx context.Context, event model.DecisionEvent) (model.Decision, error)
}

// TokenDecoder resolves connection tokens to role claims.
type TokenDecoder interface {
	Decode(token string) (auth.Claims, error)
}

// ClientInfo describes one registered connection.
type ClientInfo struct {
	Role     auth.Role `json:"role"`
	ClientID string    `json:"client_id"`
}

// clientMeta is the gateway's bookkeeping for one connection.
type clientMeta struct {
	room     string
	role     auth.Role
	clientID string
	subject  string
}

// room groups the connections that see each other's dispatch traffic,
// indexed by role so fan-out never scans irrelevant consumers.
type room struct {
	dispatchMu sync.Mutex // serializes fan-out; per-room ordering lives here
	members    map[auth.Role]map[Transport]struct{}
}

// Gateway is the single concurrent entry point into the pipeline.
type Gateway struct {
	decoder TokenDecoder
	pipe    Processor
	logger  logger.Logger

	mu    sync.RWMutex // guards rooms and meta
	rooms map[string]*room
	meta  map[Transport]clientMeta
}

// New creates a gateway with configuration options. A token decoder and
// a processor are required.
func New(opts ...Option) (*Gateway, error) {
	g := &Gateway{
		logger: logger.Named("gateway"),
		rooms:  make(map[string]*room),
		meta:   make(map[Transport]clientMeta),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.decoder == nil {
		return nil, fmt.Errorf("%w: token decoder", ErrMissingDependency)
	}
	if g.pipe == nil {
		return nil, fmt.Errorf("%w: processor", ErrMissingDependency)
	}
	return g, nil
}

// Connect authenticates and registers a connection. A rejected token
// closes the transport with CloseAuthFailure and registers nothing.
func (g *Gateway) Connect(transport Transport, roomID, token string) (auth.Claims, error) {
	claims, err := g.decoder.Decode(token)
	if err != nil {
		metrics.RecordWSRejectedToken()
		_ = transport.CloseWithCode(CloseAuthFailure, "authentication failed")
		return auth.Claims{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	meta := clientMeta{
		room:     roomID,
		role:     claims.Role,
		clientID: uuid.NewString(),
		subject:  claims.Subject,
	}

	g.mu.Lock()
	r, ok := g.rooms[roomID]
	if !ok {
		r = &room{members: make(map[auth.Role]map[Transport]struct{})}
		g.rooms[roomID] = r
	}
	set, ok := r.members[claims.Role]
	if !ok {
		set = make(map[Transport]struct{})
		r.members[claims.Role] = set
	}
	set[transport] = struct{}{}
	g.meta[transport] = meta
	connected := len(g.meta)
	g.mu.Unlock()

	metrics.UpdateWSConnections(connected)
	g.logger.Info(context.Background(), "client connected",
		logger.String("room", roomID),
		logger.String("role", string(claims.Role)),
		logger.String("client_id", meta.clientID),
		logger.String("subject", claims.Subject))

	return claims, nil
}

// Disconnect removes a connection and closes its transport. Safe to
// call more than once and for never-registered transports.
func (g *Gateway) Disconnect(transport Transport) {
	g.mu.Lock()
	meta, ok := g.meta[transport]
	if ok {
		delete(g.meta, transport)
		if r := g.rooms[meta.room]; r != nil {
			if set := r.members[meta.role]; set != nil {
				delete(set, transport)
				if len(set) == 0 {
					delete(r.members, meta.role)
				}
			}
			if len(r.members) == 0 {
				delete(g.rooms, meta.room)
			}
		}
	}
	connected := len(g.meta)
	g.mu.Unlock()

	_ = transport.Close()

	if ok {
		metrics.UpdateWSConnections(connected)
		g.logger.Info(context.Background(), "client disconnected",
			logger.String("room", meta.room),
			logger.String("role", string(meta.role)),
			logger.String("client_id", meta.clientID))
	}
}

// Dispatch runs the event through the pipeline and fans the result out
// to the room's consumers. The decision is returned to the caller even
// when the room has no subscribers.
func (g *Gateway) Dispatch(ctx context.Context, roomID string, event model.DecisionEvent) (model.Decision, error) {
	decision, err := g.pipe.Process(ctx, event)
	if err != nil {
		return model.Decision{}, fmt.Errorf("process event: %w", err)
	}

	g.broadcast(roomID, decision)
	return decision, nil
}

// ListClients returns the room's registered connections, stable-sorted
// by role then client id.
func (g *Gateway) ListClients(roomID string) []ClientInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()

	r, ok := g.rooms[roomID]
	if !ok {
		return []ClientInfo{}
	}

	clients := make([]ClientInfo, 0, len(g.meta))
	for role, set := range r.members {
		for t := range set {
			clients = append(clients, ClientInfo{Role: role, ClientID: g.meta[t].clientID})
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].Role != clients[j].Role {
			return clients[i].Role < clients[j].Role
		}
		return clients[i].ClientID < clients[j].ClientID
	})
	return clients
}

// RoomCount returns the number of live rooms.
func (g *Gateway) RoomCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// ConnectionCount returns the number of registered connections.
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.meta)
}

// broadcast fans one decision out under the room's dispatch lock.
// Unity consumers get the strict projection, debug consumers the full
// record. Failing transports are disconnected after the sweep so one
// bad consumer never blocks the rest.
func (g *Gateway) broadcast(roomID string, decision model.Decision) {
	g.mu.RLock()
	r, ok := g.rooms[roomID]
	g.mu.RUnlock()
	if !ok {
		return
	}

	r.dispatchMu.Lock()
	defer r.dispatchMu.Unlock()

	var failed []Transport
	failed = append(failed, g.sendToRole(r, auth.RoleUnity, decision.Strict())...)
	failed = append(failed, g.sendToRole(r, auth.RoleDebug, decision)...)

	for _, t := range failed {
		g.Disconnect(t)
	}
}

// sendToRole writes payload to every member of the role, returning the
// transports whose send failed.
func (g *Gateway) sendToRole(r *room, role auth.Role, payload any) []Transport {
	g.mu.RLock()
	targets := make([]Transport, 0, len(r.members[role]))
	for t := range r.members[role] {
		targets = append(targets, t)
	}
	g.mu.RUnlock()

	var failed []Transport
	for _, t := range targets {
		if err := t.WriteJSON(payload); err != nil {
			metrics.RecordWSBroadcastError()
			g.logger.Warn(context.Background(), "broadcast send failed",
				logger.String("role", string(role)),
				logger.Error(err))
			failed = append(failed, t)
			continue
		}
		metrics.RecordWSMessageSent(string(role))
	}
	return failed
}
