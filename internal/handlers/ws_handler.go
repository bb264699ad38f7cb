package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/BruksfildServices01/beauty-scheduler/internal/auth"
	"github.com/BruksfildServices01/beauty-scheduler/internal/httperr"
	"github.com/BruksfildServices01/beauty-scheduler/internal/realtime"
)

type WSHandler struct {
	hub      *realtime.Hub
	tokens   *auth.Tokens
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWSHandler accepts sockets from origins; an empty list accepts any.
func NewWSHandler(hub *realtime.Hub, tokens *auth.Tokens, origins []string, logger *slog.Logger) *WSHandler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}

	return &WSHandler{
		hub:    hub,
		tokens: tokens,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Serve authenticates with ?token= and hands the socket to the hub.
func (h *WSHandler) Serve(c *gin.Context) {
	userID, err := h.tokens.Parse(c.Query("token"))
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Токен недействителен")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "user_id", userID, "err", err)
		return
	}

	h.hub.Serve(conn, userID)
}
