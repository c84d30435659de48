package models

// CreateRoomRequest is the HTTP body for opening an attendance room.
// Caller identity arrives out-of-band (X-User-ID header).
type CreateRoomRequest struct {
	Name            string    `json:"name" binding:"required"`
	Duration        int       `json:"duration" binding:"required,gt=0"` // minutes
	RequireLocation bool      `json:"requireLocation"`
	AllowLateJoin   *bool     `json:"allowLateJoin"`
	Location        *Geofence `json:"location"`
}
