package handlers

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zeshanxviii/attendance-system/models"
	"github.com/Zeshanxviii/attendance-system/sessions"
)

// wsConn adapts a gorilla connection to sessions.Conn. Gorilla permits
// one concurrent writer, so Send serializes writes.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// client is the dispatcher's per-connection state: the claimed user id
// and, once joined, the room. A connection is unjoined until a
// successful join_room, then joined until the channel closes.
type client struct {
	conn   sessions.Conn
	userID string
	roomID string
}

// Attend upgrades the request to a websocket and runs the message loop
// until the client disconnects. The claimed user id comes from the
// X-User-ID header or the userId query parameter.
func (h *Handler) Attend(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "error", err)
		return
	}

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		userID = c.Query("userId")
	}
	cl := &client{conn: &wsConn{conn: conn}, userID: userID}
	h.log.Info("user connected", "userId", userID)

	defer func() {
		if cl.roomID != "" {
			h.manager.RemoveConnection(cl.roomID, cl.conn)
		}
		conn.Close()
		h.log.Info("user disconnected", "userId", userID)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.dispatch(cl, raw)
	}
}

// dispatch handles one inbound message. Every error is translated into
// an error response on the same connection; nothing here closes it.
func (h *Handler) dispatch(cl *client, raw []byte) {
	var msg models.InboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.send(cl, models.NewError(models.CodeInvalidMessage, "Invalid message format"))
		return
	}

	user, ok := h.resolver.Resolve(cl.userID)
	if !ok {
		h.send(cl, models.NewError(models.CodeUserNotFound, "User not found"))
		return
	}

	switch msg.Type {
	case "join_room":
		h.handleJoin(cl, user, msg)
	case "mark_attendance":
		h.handleMark(cl, user, msg)
	case "close_room":
		h.handleClose(cl, user)
	case "get_attendance_list":
		h.handleList(cl, user)
	case "ping":
		h.send(cl, models.NewPong())
	default:
		h.send(cl, models.NewError(models.CodeInvalidMessage, "Invalid message format"))
	}
}

func (h *Handler) handleJoin(cl *client, user models.User, msg models.InboundMessage) {
	room, ok := h.manager.GetRoomByCode(msg.RoomCode)
	if !ok {
		h.send(cl, models.NewError(models.CodeInvalidRoomCode, "Invalid room code"))
		return
	}

	cl.roomID = room.ID
	h.manager.AddConnection(room.ID, cl.conn)

	if user.Role == models.RoleStudent {
		record, err := h.manager.MarkAttendance(user, room.ID, msg.Location)
		if err != nil {
			h.send(cl, models.NewError(models.CodeAttendanceError, err.Error()))
			return
		}
		h.send(cl, models.NewAttendanceMarked(record))
		return
	}

	records, err := h.manager.AttendanceList(room.ID, user.ID)
	if err != nil {
		h.sendErr(cl, err)
		return
	}
	h.send(cl, models.NewRoomJoined(room, records))
}

func (h *Handler) handleMark(cl *client, user models.User, msg models.InboundMessage) {
	if user.Role != models.RoleStudent {
		h.send(cl, models.NewError(models.CodeUnauthorized, "Only students can mark attendance"))
		return
	}
	if cl.roomID == "" {
		h.send(cl, models.NewError(models.CodeNotInRoom, "Not in a room"))
		return
	}
	if _, ok := h.manager.GetRoom(cl.roomID); !ok {
		h.send(cl, models.NewError(models.CodeRoomNotFound, "Room not found"))
		return
	}

	record, err := h.manager.MarkAttendance(user, cl.roomID, msg.Location)
	if err != nil {
		h.send(cl, models.NewError(models.CodeAttendanceError, err.Error()))
		return
	}
	h.send(cl, models.NewAttendanceMarked(record))
}

func (h *Handler) handleClose(cl *client, user models.User) {
	if user.Role != models.RoleTeacher {
		h.send(cl, models.NewError(models.CodeUnauthorized, "Only teachers can close rooms"))
		return
	}
	if cl.roomID == "" {
		h.send(cl, models.NewError(models.CodeNotInRoom, "Not in a room"))
		return
	}
	if err := h.manager.CloseRoom(cl.roomID, user.ID); err != nil {
		h.sendErr(cl, err)
	}
}

func (h *Handler) handleList(cl *client, user models.User) {
	if user.Role != models.RoleTeacher || cl.roomID == "" {
		h.send(cl, models.NewError(models.CodeUnauthorized, "Unauthorized"))
		return
	}
	records, err := h.manager.AttendanceList(cl.roomID, user.ID)
	if err != nil {
		h.sendErr(cl, err)
		return
	}
	h.send(cl, models.NewAttendanceList(records))
}

func (h *Handler) send(cl *client, v any) {
	if err := cl.conn.Send(v); err != nil {
		h.log.Warn("send failed", "userId", cl.userID, "error", err)
	}
}

// sendErr maps a session error onto its wire code. Anything outside the
// taxonomy is logged and reported as a generic internal error so no
// internal state leaks.
func (h *Handler) sendErr(cl *client, err error) {
	var authErr *sessions.AuthorizationError
	var notFoundErr *sessions.NotFoundError
	var validationErr *sessions.ValidationError
	var conflictErr *sessions.ConflictError
	var geofenceErr *sessions.GeofenceError

	var code string
	switch {
	case errors.As(err, &authErr):
		code = models.CodeUnauthorized
	case errors.As(err, &notFoundErr):
		code = models.CodeRoomNotFound
	case errors.As(err, &validationErr), errors.As(err, &conflictErr), errors.As(err, &geofenceErr):
		code = models.CodeAttendanceError
	default:
		h.log.Error("unhandled dispatcher error", "userId", cl.userID, "error", err)
		h.send(cl, models.NewError(models.CodeInternalError, "Internal error"))
		return
	}
	h.send(cl, models.NewError(code, err.Error()))
}
