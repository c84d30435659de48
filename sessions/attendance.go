package sessions

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Zeshanxviii/attendance-system/events"
	"github.com/Zeshanxviii/attendance-system/models"
)

const earthRadiusMeters = 6371000

// gracePeriod is the window after room creation during which marking
// counts as present rather than late.
const gracePeriod = 10 * time.Minute

// MarkAttendance records a student in a room. At most one record per
// (room, student) pair exists; the first write wins. Side effects: a
// student_joined broadcast to the room and an attendance:marked event.
func (m *Manager) MarkAttendance(student models.User, roomID string, location *models.Location) (models.AttendanceRecord, error) {
	if student.Role != models.RoleStudent {
		return models.AttendanceRecord{}, &AuthorizationError{Reason: "only students can mark attendance"}
	}

	m.mu.Lock()
	room, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return models.AttendanceRecord{}, &NotFoundError{Reason: "room not found"}
	}
	if room.Status != models.RoomActive {
		m.mu.Unlock()
		return models.AttendanceRecord{}, &ConflictError{Reason: "room is closed"}
	}
	for _, r := range m.attendance[roomID] {
		if r.StudentID == student.ID {
			m.mu.Unlock()
			return models.AttendanceRecord{}, &ConflictError{Reason: "attendance already marked"}
		}
	}
	if room.Settings.RequireLocation {
		if location == nil || room.Location == nil {
			m.mu.Unlock()
			return models.AttendanceRecord{}, &GeofenceError{Reason: "location is required"}
		}
		distance := haversineMeters(location.Latitude, location.Longitude,
			room.Location.Latitude, room.Location.Longitude)
		if distance > room.Location.Radius {
			m.mu.Unlock()
			return models.AttendanceRecord{}, &GeofenceError{Reason: "you are too far from the class location"}
		}
	}

	now := m.now()
	status := models.AttendancePresent
	if now.After(room.CreatedAt.Add(gracePeriod)) {
		status = models.AttendanceLate
	}
	record := models.AttendanceRecord{
		ID:        uuid.NewString(),
		RoomID:    roomID,
		StudentID: student.ID,
		MarkedAt:  now,
		Location:  location,
		Status:    status,
	}
	m.attendance[roomID] = append(m.attendance[roomID], record)
	conns := m.connSnapshot(roomID)
	m.mu.Unlock()

	m.sendEach(conns, models.NewStudentJoined(student.ID, student.Name))
	m.publisher.Publish(events.AttendanceMarked, record)
	m.log.Info("attendance marked", "roomId", roomID, "studentId", student.ID, "status", status)
	return record, nil
}

// AttendanceList returns the room's records in insertion order. Only
// the owning teacher may read it.
func (m *Manager) AttendanceList(roomID, actorID string) ([]models.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room, ok := m.rooms[roomID]
	if !ok {
		return nil, &NotFoundError{Reason: "room not found"}
	}
	if room.TeacherID != actorID {
		return nil, &AuthorizationError{Reason: "only the room's teacher can view attendance"}
	}
	return append([]models.AttendanceRecord(nil), m.attendance[roomID]...), nil
}

// haversineMeters is the great-circle distance between two points on a
// spherical Earth.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
