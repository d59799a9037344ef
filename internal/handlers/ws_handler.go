package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gws "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	"github.com/BruksfildServices01/clinic-crm/internal/websocket"
)

type WSHandler struct {
	hub      *websocket.Hub
	upgrader gws.Upgrader
	logger   *zap.Logger
}

// NewWSHandler accepts the same origins as the CORS middleware; an empty
// list accepts any.
func NewWSHandler(hub *websocket.Hub, allowedOrigins []string, logger *zap.Logger) *WSHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WSHandler{
		hub: hub,
		upgrader: gws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
		logger: logger,
	}
}

func (h *WSHandler) Connect(c *gin.Context) {
	userID := middleware.UserID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn, userID)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
