package handlers

import (
	"io"
	"log/slog"
	"sync"

	"github.com/Zeshanxviii/attendance-system/models"
	"github.com/Zeshanxviii/attendance-system/sessions"
)

var (
	teacherOne = models.User{ID: "teacher:1", Email: "t1@example.com", Role: models.RoleTeacher, Name: "Teacher One"}
	teacherTwo = models.User{ID: "teacher:2", Email: "t2@example.com", Role: models.RoleTeacher, Name: "Teacher Two"}
	studentOne = models.User{ID: "student:1", Email: "s1@example.com", Role: models.RoleStudent, Name: "Student One"}
)

// staticResolver is the fixed-table identity resolver used in tests.
type staticResolver map[string]models.User

func (r staticResolver) Resolve(userID string) (models.User, bool) {
	u, ok := r[userID]
	return u, ok
}

type fakeConn struct {
	mu   sync.Mutex
	sent []any
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

func (c *fakeConn) last() any {
	msgs := c.messages()
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

func newTestHandler() (*Handler, *sessions.Manager) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := sessions.NewManager(sessions.Options{Logger: logger})
	resolver := staticResolver{
		teacherOne.ID: teacherOne,
		teacherTwo.ID: teacherTwo,
		studentOne.ID: studentOne,
	}
	return New(manager, resolver, logger, nil), manager
}
