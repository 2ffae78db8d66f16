package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"thegame/internal/app"
	"thegame/internal/domain"
	"thegame/internal/log"

	"github.com/gorilla/websocket"
)

const (
	forwardTimeout = 5 * time.Second
	forwardBuffer  = 256
)

var errNotInRoom = errors.New("join a room first")

type Options struct {
	ReadLimit      int64
	AllowedOrigins []string
	// Namer supplies a display name for joins without one.
	Namer func() string
}

// Hub owns every socket of the standalone server and routes commands to the
// room registry. Events are delivered while the room lock is held, so each
// room's messages reach clients in command order. Relaying to the event bus
// and archive happens on one background goroutine in the same order, so a
// slow broker never holds a room lock.
type Hub struct {
	registry  *app.Registry
	svc       *app.Service
	relay     *app.Relay
	namer     func() string
	readLimit int64
	upgrader  websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client

	forwards  chan forwardJob
	done      chan struct{}
	closeOnce sync.Once
}

type forwardJob struct {
	roomID string
	events []app.Event
}

func NewHub(registry *app.Registry, svc *app.Service, relay *app.Relay, opts Options) *Hub {
	h := &Hub{
		registry:  registry,
		svc:       svc,
		relay:     relay,
		namer:     opts.Namer,
		readLimit: opts.ReadLimit,
		clients:   make(map[string]*Client),
		forwards:  make(chan forwardJob, forwardBuffer),
		done:      make(chan struct{}),
	}
	if h.namer == nil {
		h.namer = func() string { return "Player" }
	}
	if h.readLimit <= 0 {
		h.readLimit = 4096
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(opts.AllowedOrigins),
	}
	go h.forwardLoop()
	return h
}

// originChecker allows everything when no origins are configured. Requests
// without an Origin header are not from browsers and always pass.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeHTTP upgrades the request and starts the client pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("ws upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	c := newClient(h, conn)

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	log.Debug("ws connected %s from %s", c.id, r.RemoteAddr)
	go c.writePump()
	go c.readPump()
}

// RoomsHandler lists the live room ids.
func (h *Hub) RoomsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := h.registry.RoomIDs()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"rooms": ids, "count": len(ids)})
	}
}

// ClientCount returns the number of open sockets.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close drops every socket and stops the relay goroutine after it flushed
// what was already queued. Read pumps then run the normal leave path.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		_ = c.conn.Close()
	}
}

func (h *Hub) handle(c *Client, msg InMsg) {
	switch msg.T {
	case TypeJoinRoom:
		h.join(c, msg)
	case TypePlayerReady:
		h.command(c, msg.ReqID, func(room *domain.Room) ([]app.Event, error) {
			return h.svc.ToggleReady(room, c.id)
		})
	case TypeStartGame:
		h.command(c, msg.ReqID, func(room *domain.Room) ([]app.Event, error) {
			return h.svc.StartGame(room, c.id)
		})
	case TypePlayCard:
		var req PlayCardRequest
		if err := json.Unmarshal(msg.P, &req); err != nil {
			c.reply(TypeInvalidMove, msg.ReqID, ErrorMessage{Message: "invalid play payload"})
			return
		}
		pile, err := domain.ParsePileID(req.PileType)
		if err != nil {
			c.reply(TypeInvalidMove, msg.ReqID, ErrorMessage{Message: err.Error()})
			return
		}
		h.command(c, msg.ReqID, func(room *domain.Room) ([]app.Event, error) {
			return h.svc.PlayCard(room, c.id, domain.Card(req.Card), pile)
		})
	case TypeEndTurn:
		h.command(c, msg.ReqID, func(room *domain.Room) ([]app.Event, error) {
			return h.svc.EndTurn(room, c.id)
		})
	case TypeSetWarning, TypeSetIntention:
		var req SignalRequest
		if err := json.Unmarshal(msg.P, &req); err != nil {
			c.reply(TypeInvalidMove, msg.ReqID, ErrorMessage{Message: "invalid signal payload"})
			return
		}
		pile, err := domain.ParsePileID(req.PileType)
		if err != nil {
			c.reply(TypeInvalidMove, msg.ReqID, ErrorMessage{Message: err.Error()})
			return
		}
		toggle := h.svc.SetWarning
		if msg.T == TypeSetIntention {
			toggle = h.svc.SetIntention
		}
		h.command(c, msg.ReqID, func(room *domain.Room) ([]app.Event, error) {
			return toggle(room, c.id, pile)
		})
	default:
		c.reply(TypeInvalidMove, msg.ReqID, ErrorMessage{Message: "unknown message type " + msg.T})
	}
}

func (h *Hub) join(c *Client, msg InMsg) {
	if c.roomID != "" {
		c.reply(TypeJoinFailed, msg.ReqID, ErrorMessage{Message: "already in room " + c.roomID})
		return
	}
	var req JoinRoomRequest
	if len(msg.P) > 0 {
		if err := json.Unmarshal(msg.P, &req); err != nil {
			c.reply(TypeJoinFailed, msg.ReqID, ErrorMessage{Message: "invalid join payload"})
			return
		}
	}
	roomID, err := app.NormalizeRoomID(req.RoomID)
	if err != nil {
		c.reply(TypeJoinFailed, msg.ReqID, ErrorMessage{Message: err.Error()})
		return
	}
	name := app.NormalizePlayerName(req.PlayerName)
	if name == "" {
		name = h.namer()
	}

	var joinErr error
	err = h.registry.With(roomID, true, func(room *domain.Room) {
		events, err := h.svc.Join(room, c.id, name)
		if err != nil {
			joinErr = err
			return
		}
		c.roomID = roomID
		c.reply(TypeJoinSuccess, msg.ReqID, JoinSuccess{RoomID: roomID, PlayerID: c.id, PlayerName: name})
		h.publish(room, events)
	})
	if err == nil {
		err = joinErr
	}
	if err != nil {
		c.reply(TypeJoinFailed, msg.ReqID, ErrorMessage{Message: err.Error()})
		return
	}
	log.Info("%s joined room %s as %q", c.id, roomID, name)
}

// command runs fn against the client's room. Failures go back to the actor
// only.
func (h *Hub) command(c *Client, reqID string, fn func(room *domain.Room) ([]app.Event, error)) {
	if c.roomID == "" {
		c.reply(TypeInvalidMove, reqID, ErrorMessage{Message: errNotInRoom.Error()})
		return
	}
	var cmdErr error
	err := h.registry.With(c.roomID, false, func(room *domain.Room) {
		events, err := fn(room)
		if err != nil {
			cmdErr = err
			return
		}
		h.publish(room, events)
	})
	if err == nil {
		err = cmdErr
	}
	if err == nil || errors.Is(err, domain.ErrUnknownPlayer) {
		return
	}
	c.reply(TypeInvalidMove, reqID, ErrorMessage{Message: err.Error()})
}

func (h *Hub) disconnect(c *Client) {
	if roomID := c.roomID; roomID != "" {
		c.roomID = ""
		err := h.registry.With(roomID, false, func(room *domain.Room) {
			events, err := h.svc.Leave(room, c.id)
			if err != nil {
				log.Warn("leave %s from %s: %v", c.id, roomID, err)
				return
			}
			h.publish(room, events)
		})
		if err != nil && !errors.Is(err, app.ErrRoomNotFound) {
			log.Warn("leave %s from %s: %v", c.id, roomID, err)
		}
	}

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()
	close(c.send)
	log.Debug("ws disconnected %s", c.id)
}

// publish delivers events to sockets and queues them for the relay. The
// caller holds the room lock, so neither step may block.
func (h *Hub) publish(room *domain.Room, events []app.Event) {
	h.deliver(room, events)

	select {
	case h.forwards <- forwardJob{roomID: room.ID, events: events}:
	default:
		log.Warn("relay queue full, dropping %d events for room %s", len(events), room.ID)
	}
}

func (h *Hub) forwardLoop() {
	for {
		select {
		case job := <-h.forwards:
			h.forward(job)
		case <-h.done:
			for {
				select {
				case job := <-h.forwards:
					h.forward(job)
				default:
					return
				}
			}
		}
	}
}

func (h *Hub) forward(job forwardJob) {
	ctx, cancel := context.WithTimeout(context.Background(), forwardTimeout)
	defer cancel()
	if err := h.relay.Forward(ctx, job.roomID, "", job.events); err != nil {
		log.Warn("relay room %s: %v", job.roomID, err)
	}
}

func (h *Hub) deliver(room *domain.Room, events []app.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ev := range events {
		t, ok := outboundType(ev.Kind)
		if !ok {
			log.Warn("no message type for event %s", ev.Kind)
			continue
		}
		b, err := json.Marshal(OutMsg{T: t, P: ev.Payload})
		if err != nil {
			log.Error("ws encode %s: %v", ev.Kind, err)
			continue
		}
		recipients := ev.Recipients
		if len(recipients) == 0 {
			recipients = room.PlayerIDs()
		}
		for _, id := range recipients {
			if c, ok := h.clients[id]; ok {
				c.enqueue(b)
			}
		}
	}
}
