package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chessroom/internal/storage"
	"chessroom/internal/templates"
	"chessroom/internal/ws"
	"chessroom/pkg/utils"
)

// Handler contains dependencies for the HTTP surface.
type Handler struct {
	logger   *zap.Logger
	hub      *ws.Hub
	store    *storage.Store
	upgrader websocket.Upgrader
}

// NewHandler creates a new handler instance. store may be nil.
func NewHandler(logger *zap.Logger, hub *ws.Hub, store *storage.Store) *Handler {
	return &Handler{
		logger: logger,
		hub:    hub,
		store:  store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Register wires the routes onto the router.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.HandleHome)
	r.GET("/create", h.HandleCreate)
	r.GET("/room/:id", h.HandleRoom)
	r.GET("/ws", h.HandleWS)
	r.Static("/static", "./static")
}

// HandleHome serves the home page.
func (h *Handler) HandleHome(c *gin.Context) {
	stats, err := h.store.FetchStats(c.Request.Context())
	if err != nil {
		h.logger.Warn("fetch stats", zap.Error(err))
	}
	templates.WriteHomeHTML(c.Writer, stats)
}

// HandleCreate generates a fresh room token and redirects to it. The
// room itself is created lazily on the first join.
func (h *Handler) HandleCreate(c *gin.Context) {
	c.Redirect(http.StatusFound, "/room/"+utils.RoomToken())
}

// HandleRoom serves the page that auto-joins the room.
func (h *Handler) HandleRoom(c *gin.Context) {
	templates.WriteRoomHTML(c.Writer, c.Param("id"))
}

// HandleWS upgrades the connection and hands it to the hub.
func (h *Handler) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}
	client := h.hub.Attach(conn)
	h.logger.Info("websocket connection established", zap.String("client", client.ID))
}
