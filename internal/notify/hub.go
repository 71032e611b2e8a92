package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"homeserve/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Hub is an explicit subscription registry: audience key to the set of
// active subscriber channels. Delivery is best effort; there is no
// persistence, retry or replay, and only sockets connected at publish
// time receive anything.
type Hub struct {
	log *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[chan Notification]struct{}
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:  log,
		subs: make(map[string]map[chan Notification]struct{}),
	}
}

func (h *Hub) Subscribe(audience string, ch chan Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[audience]
	if !ok {
		set = make(map[chan Notification]struct{})
		h.subs[audience] = set
	}
	set[ch] = struct{}{}
}

func (h *Hub) Unsubscribe(audience string, ch chan Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[audience]; ok {
		delete(set, ch)
		if len(set) == 0 {
			delete(h.subs, audience)
		}
	}
}

// Publish delivers n to every current subscriber of the audience and
// returns how many received it. A subscriber whose buffer is full is
// skipped rather than blocking the publisher. An unknown audience is a
// no-op, not an error.
func (h *Hub) Publish(audience string, n Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for ch := range h.subs[audience] {
		select {
		case ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

// NotifyUser implements the service layer's notifier contract.
func (h *Hub) NotifyUser(userID string, n Notification) {
	h.Publish(UserAudience(userID), n)
}

func (h *Hub) NotifyProviders(n Notification)  { h.Publish(AudienceProviders, n) }
func (h *Hub) NotifyHomeowners(n Notification) { h.Publish(AudienceHomeowners, n) }

// audiencesFor is the implicit room membership made explicit: own user
// audience plus the role cohort.
func audiencesFor(userID, role string) []string {
	auds := []string{UserAudience(userID)}
	switch role {
	case domain.RoleProvider:
		auds = append(auds, AudienceProviders)
	case domain.RoleHomeowner:
		auds = append(auds, AudienceHomeowners)
	}
	return auds
}

// ServeWS upgrades the request and pumps notifications until the client
// goes away. The caller has already authenticated the connection; the
// token is not re-validated for the socket's lifetime.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ch := make(chan Notification, sendBuffer)
	auds := audiencesFor(userID, role)
	for _, a := range auds {
		h.Subscribe(a, ch)
	}
	h.log.Debug("ws connected", zap.String("user_id", userID), zap.String("role", role))

	done := make(chan struct{})

	// Read loop exists only to observe the close; the channel is
	// server-push only.
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		for _, a := range auds {
			h.Unsubscribe(a, ch)
		}
		_ = conn.Close()
		h.log.Debug("ws disconnected", zap.String("user_id", userID))
	}()

	for {
		select {
		case n := <-ch:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event{Event: "notification", Payload: n}); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

type event struct {
	Event   string       `json:"event"`
	Payload Notification `json:"payload"`
}
