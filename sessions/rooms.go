package sessions

import (
	"time"

	"github.com/google/uuid"

	"github.com/Zeshanxviii/attendance-system/events"
	"github.com/Zeshanxviii/attendance-system/models"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomCodeLength   = 6
)

// RoomConfig is the teacher-supplied shape of a new room.
type RoomConfig struct {
	Name            string
	Duration        int // minutes
	RequireLocation bool
	AllowLateJoin   bool
	Location        *models.Geofence
}

// RoomClosedEvent is the payload published on "room:closed".
type RoomClosedEvent struct {
	RoomID     string                    `json:"roomId"`
	Attendance []models.AttendanceRecord `json:"attendance"`
}

// CreateRoom opens an active room owned by teacher, arms its auto-close
// timer and returns a copy of the stored room.
func (m *Manager) CreateRoom(teacher models.User, cfg RoomConfig) (models.Room, error) {
	if teacher.Role != models.RoleTeacher {
		return models.Room{}, &AuthorizationError{Reason: "only teachers can create rooms"}
	}
	if cfg.Name == "" || cfg.Duration <= 0 {
		return models.Room{}, &ValidationError{Reason: "name and a positive duration are required"}
	}
	duration := time.Duration(cfg.Duration) * time.Minute

	m.mu.Lock()
	now := m.now()
	room := &models.Room{
		ID:        uuid.NewString(),
		Code:      m.generateCode(),
		TeacherID: teacher.ID,
		Name:      cfg.Name,
		Status:    models.RoomActive,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
		Location:  cfg.Location,
		Settings: models.RoomSettings{
			RequireLocation:       cfg.RequireLocation,
			AllowLateJoin:         cfg.AllowLateJoin,
			AutoCloseAfterMinutes: cfg.Duration,
		},
	}
	m.rooms[room.ID] = room
	m.connections[room.ID] = make(map[Conn]struct{})
	created := *room
	m.mu.Unlock()

	m.scheduler.After(duration, func() {
		// Closing an already-closed room with the owner's id is a no-op,
		// so a timer firing after an explicit close is safe.
		if err := m.CloseRoom(created.ID, created.TeacherID); err != nil {
			m.log.Error("auto-close failed", "roomId", created.ID, "error", err)
		}
	})

	m.log.Info("room created", "roomId", created.ID, "code", created.Code,
		"teacherId", teacher.ID, "expiresAt", created.ExpiresAt)
	return created, nil
}

// CloseRoom marks the room closed, notifies its connections and
// publishes room:closed. Only the owning teacher may close a room; the
// expiry scheduler passes the owner's id. Closing an already-closed
// room is a no-op.
func (m *Manager) CloseRoom(roomID, actorID string) error {
	m.mu.Lock()
	room, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return &NotFoundError{Reason: "room not found"}
	}
	if room.TeacherID != actorID {
		m.mu.Unlock()
		return &AuthorizationError{Reason: "only the room's teacher can close it"}
	}
	if room.Status == models.RoomClosed {
		m.mu.Unlock()
		return nil
	}
	room.Status = models.RoomClosed
	conns := m.connSnapshot(roomID)
	records := append([]models.AttendanceRecord(nil), m.attendance[roomID]...)
	m.mu.Unlock()

	m.sendEach(conns, models.NewRoomClosed(roomID))
	m.publisher.Publish(events.RoomClosed, RoomClosedEvent{RoomID: roomID, Attendance: records})
	m.log.Info("room closed", "roomId", roomID, "records", len(records))
	return nil
}

// GetRoom returns a copy of the room, or false if unknown.
func (m *Manager) GetRoom(roomID string) (models.Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return models.Room{}, false
	}
	return *room, true
}

// GetRoomByCode looks a room up by its join code. Codes are unique only
// among active rooms, so an active match always wins over a closed one.
func (m *Manager) GetRoomByCode(code string) (models.Room, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var closed *models.Room
	for _, room := range m.rooms {
		if room.Code != code {
			continue
		}
		if room.Status == models.RoomActive {
			return *room, true
		}
		closed = room
	}
	if closed != nil {
		return *closed, true
	}
	return models.Room{}, false
}

// StartExpirySweep closes overdue rooms on a fixed interval, as a
// backstop for per-room timers not surviving clock suspensions.
func (m *Manager) StartExpirySweep(interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = time.Minute
	}
	return m.scheduler.Every(interval, m.sweepExpired)
}

func (m *Manager) sweepExpired() {
	type target struct{ roomID, teacherID string }
	m.mu.Lock()
	now := m.now()
	var overdue []target
	for id, room := range m.rooms {
		if room.Status == models.RoomActive && now.After(room.ExpiresAt) {
			overdue = append(overdue, target{roomID: id, teacherID: room.TeacherID})
		}
	}
	m.mu.Unlock()

	for _, t := range overdue {
		if err := m.CloseRoom(t.roomID, t.teacherID); err != nil {
			m.log.Error("sweep close failed", "roomId", t.roomID, "error", err)
		}
	}
}

// generateCode draws 6 characters from [A-Z0-9], retrying on collision
// with a currently-active room. Caller must hold m.mu.
func (m *Manager) generateCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeAlphabet[m.rng.Intn(len(roomCodeAlphabet))]
		}
		if !m.codeActive(string(code)) {
			return string(code)
		}
	}
}

func (m *Manager) codeActive(code string) bool {
	for _, room := range m.rooms {
		if room.Code == code && room.Status == models.RoomActive {
			return true
		}
	}
	return false
}
