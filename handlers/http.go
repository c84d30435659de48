package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zeshanxviii/attendance-system/models"
	"github.com/Zeshanxviii/attendance-system/sessions"
)

// Handler carries the boundary's collaborators: the session core, the
// identity capability and the websocket upgrader.
type Handler struct {
	manager  *sessions.Manager
	resolver models.IdentityResolver
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func New(manager *sessions.Manager, resolver models.IdentityResolver, logger *slog.Logger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		manager:  manager,
		resolver: resolver,
		log:      logger.With("component", "handlers"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// CreateRoom opens an attendance room for the calling teacher. Identity
// comes from the X-User-ID header set by the boundary layer; the role
// is taken from the resolved user, never from the request.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
		return
	}

	user, ok := h.resolver.Resolve(c.GetHeader("X-User-ID"))
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		return
	}

	allowLateJoin := true
	if req.AllowLateJoin != nil {
		allowLateJoin = *req.AllowLateJoin
	}
	room, err := h.manager.CreateRoom(user, sessions.RoomConfig{
		Name:            req.Name,
		Duration:        req.Duration,
		RequireLocation: req.RequireLocation,
		AllowLateJoin:   allowLateJoin,
		Location:        req.Location,
	})
	if err != nil {
		var authErr *sessions.AuthorizationError
		var valErr *sessions.ValidationError
		switch {
		case errors.As(err, &authErr):
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		case errors.As(err, &valErr):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			h.log.Error("create room failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, room)
}

// Version reports the API version.
func (h *Handler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": "1.0.0"})
}
