package ws

import (
	"context"
	"log"
	"net/http"
	"sync/atomic"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/vvolkov/paddle/internal/middleware"
)

const maxActiveSessions = 200

// HubStats holds live server metrics.
type HubStats struct {
	ActiveSessions   int64  `json:"activeSessions"`
	TotalConnections uint64 `json:"totalConnections"`
}

// Hub accepts websocket connections and gives each one its own
// single-player session.
type Hub struct {
	activeSessions   atomic.Int64
	totalConnections atomic.Uint64

	limiter        *middleware.IPRateLimiter
	originPatterns []string
}

func NewHub(limiter *middleware.IPRateLimiter, originPatterns []string) *Hub {
	return &Hub{
		limiter:        limiter,
		originPatterns: originPatterns,
	}
}

// Stats returns a snapshot of current server metrics.
func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveSessions:   h.activeSessions.Load(),
		TotalConnections: h.totalConnections.Load(),
	}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := middleware.RealIP(r)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}
	release := func() {
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
	}

	if h.activeSessions.Load() >= maxActiveSessions {
		release()
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		acceptOpts.OriginPatterns = h.originPatterns
	}

	sock, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		release()
		log.Printf("ws accept error: %v", err)
		return
	}

	// Inbound messages are tiny (input flags, resize); cap them hard.
	sock.SetReadLimit(1024)

	h.totalConnections.Add(1)
	id := uuid.NewString()
	conn := NewConn(sock, id, ip, h.limiter)
	log.Printf("new session %s from %s (total conns: %d)", id, ip, h.totalConnections.Load())

	// Background context: the connection outlives this handler's request
	// scope but the handler blocks below to keep the TCP stream open.
	go conn.WriteLoop(context.Background())

	session := NewSession(id, conn)
	h.activeSessions.Add(1)
	session.Start(context.Background())

	go func() {
		<-session.Done()
		conn.Close()
		h.activeSessions.Add(-1)
	}()

	<-conn.Done()
	release()
	log.Printf("session %s closed", id)
}
