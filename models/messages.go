package models

// Error codes carried on the wire by ErrorMessage.
const (
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeInvalidRoomCode = "INVALID_ROOM_CODE"
	CodeAttendanceError = "ATTENDANCE_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotInRoom       = "NOT_IN_ROOM"
	CodeRoomNotFound    = "ROOM_NOT_FOUND"
	CodeInvalidMessage  = "INVALID_MESSAGE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// InboundMessage is the envelope for every client→server message. Only
// the fields relevant to the given type are set.
type InboundMessage struct {
	Type     string    `json:"type"`
	RoomCode string    `json:"roomCode,omitempty"`
	Location *Location `json:"location,omitempty"`
}

type RoomJoinedMessage struct {
	Type     string             `json:"type"`
	Room     Room               `json:"room"`
	Students []AttendanceRecord `json:"students"`
}

type AttendanceMarkedMessage struct {
	Type   string           `json:"type"`
	Record AttendanceRecord `json:"record"`
}

type RoomClosedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type AttendanceListMessage struct {
	Type    string             `json:"type"`
	Records []AttendanceRecord `json:"records"`
}

type StudentJoinedMessage struct {
	Type    string        `json:"type"`
	Student StudentOnline `json:"student"`
}

type StudentOnline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type PongMessage struct {
	Type string `json:"type"`
}

func NewRoomJoined(room Room, students []AttendanceRecord) RoomJoinedMessage {
	return RoomJoinedMessage{Type: "room_joined", Room: room, Students: students}
}

func NewAttendanceMarked(record AttendanceRecord) AttendanceMarkedMessage {
	return AttendanceMarkedMessage{Type: "attendance_marked", Record: record}
}

func NewRoomClosed(roomID string) RoomClosedMessage {
	return RoomClosedMessage{Type: "room_closed", RoomID: roomID}
}

func NewAttendanceList(records []AttendanceRecord) AttendanceListMessage {
	return AttendanceListMessage{Type: "attendance_list", Records: records}
}

func NewStudentJoined(id, name string) StudentJoinedMessage {
	return StudentJoinedMessage{Type: "student_joined", Student: StudentOnline{ID: id, Name: name}}
}

func NewError(code, message string) ErrorMessage {
	return ErrorMessage{Type: "error", Message: message, Code: code}
}

func NewPong() PongMessage {
	return PongMessage{Type: "pong"}
}
