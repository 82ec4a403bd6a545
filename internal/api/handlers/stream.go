package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wonny/aurum/internal/contracts"
	"github.com/wonny/aurum/pkg/logger"
)

// streamInterval is how often a fresh snapshot is pushed to each client
const streamInterval = 5 * time.Second

// StreamHandler pushes the latest market snapshot over a websocket.
// ⭐ SSOT: 실시간 스트림은 이 핸들러에서만
type StreamHandler struct {
	snapshots SnapshotProvider
	upgrader  websocket.Upgrader
	logger    *logger.Logger
}

// SnapshotProvider builds the current dashboard snapshot
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Snapshot is one streamed dashboard state
type Snapshot struct {
	Timestamp time.Time              `json:"timestamp"`
	Premium   *PremiumResponse       `json:"premium,omitempty"`
	Regime    contracts.RegimeLabel  `json:"regime"`
	Alert     *contracts.AlertStatus `json:"alert,omitempty"`
}

// NewStreamHandler creates a websocket snapshot streamer
func NewStreamHandler(snapshots SnapshotProvider, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		snapshots: snapshots,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard frontend may run on another origin in development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Serve upgrades the connection and streams snapshots until the client
// disconnects
// GET /api/stream
func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithField("remote", conn.RemoteAddr().String()).Debug("Stream client connected")

	// Drain client frames so pings and close messages are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	// First snapshot immediately, then on every tick
	if !h.push(r.Context(), conn) {
		return
	}
	for {
		select {
		case <-done:
			h.logger.Debug("Stream client disconnected")
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if !h.push(r.Context(), conn) {
				return
			}
		}
	}
}

func (h *StreamHandler) push(ctx context.Context, conn *websocket.Conn) bool {
	snapshot, err := h.snapshots.Snapshot(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("Snapshot build failed")
		return true // transient; keep the connection
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(snapshot); err != nil {
		if !errors.Is(err, context.Canceled) {
			h.logger.WithError(err).Debug("Stream write failed")
		}
		return false
	}
	return true
}
