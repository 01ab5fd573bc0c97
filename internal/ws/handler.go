package ws

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/jpmardones/despensa/internal/pantry"
)

// Handler returns an HTTP handler that upgrades connections to
// WebSocket and streams pantry snapshots for the user named in the
// user_id query parameter. The first connection for a user starts the
// live feed; the last disconnect stops it.
func Handler(hub *Hub, feed *pantry.Feed, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "user_id is required", http.StatusBadRequest)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept failed", "error", err)
			return
		}

		client := NewClient(hub, conn, userID)
		ctx := r.Context()

		if first := hub.Register(client); first {
			if err := feed.Subscribe(ctx, userID); err != nil {
				logger.Warn("pantry feed subscribe failed",
					"user_id", userID,
					"error", err,
				)
			}
		}
		defer func() {
			if last := hub.Unregister(client); last {
				feed.Unsubscribe(userID)
			}
		}()

		go client.writePump(ctx)
		client.readPump(ctx)
	}
}
