package models

import "time"

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type RoomStatus string

const (
	RoomActive RoomStatus = "active"
	RoomClosed RoomStatus = "closed"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

// IdentityResolver maps a connection's claimed user id to a user record.
// The core trusts whatever identity the boundary hands it; production
// implementations back this with a real user store.
type IdentityResolver interface {
	Resolve(userID string) (User, bool)
}

// Location is a reported point, as sent by a student marking attendance.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geofence is the circular area a student must be inside when the room
// requires location. Radius is in meters.
type Geofence struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

type RoomSettings struct {
	RequireLocation       bool `json:"requireLocation"`
	AllowLateJoin         bool `json:"allowLateJoin"`
	AutoCloseAfterMinutes int  `json:"autoCloseAfterMinutes"`
}

// Room is a time-boxed attendance session. Code is unique only among
// currently active rooms; a closed room's code may be reused later.
type Room struct {
	ID        string       `json:"id"`
	Code      string       `json:"code"`
	TeacherID string       `json:"teacherId"`
	Name      string       `json:"name"`
	Status    RoomStatus   `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Location  *Geofence    `json:"location,omitempty"`
	Settings  RoomSettings `json:"settings"`
}

// AttendanceRecord is immutable once created. Absence is never
// materialized; it is simply the lack of a record.
type AttendanceRecord struct {
	ID        string           `json:"id"`
	RoomID    string           `json:"roomId"`
	StudentID string           `json:"studentId"`
	MarkedAt  time.Time        `json:"markedAt"`
	Location  *Location        `json:"location,omitempty"`
	Status    AttendanceStatus `json:"status"`
}
