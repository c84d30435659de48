package sessions

import (
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Zeshanxviii/attendance-system/events"
	"github.com/Zeshanxviii/attendance-system/models"
)

var (
	teacherOne = models.User{ID: "teacher:1", Email: "t1@example.com", Role: models.RoleTeacher, Name: "Teacher One"}
	teacherTwo = models.User{ID: "teacher:2", Email: "t2@example.com", Role: models.RoleTeacher, Name: "Teacher Two"}
	studentOne = models.User{ID: "student:1", Email: "s1@example.com", Role: models.RoleStudent, Name: "Student One"}
	studentTwo = models.User{ID: "student:2", Email: "s2@example.com", Role: models.RoleStudent, Name: "Student Two"}
)

// fakeScheduler records armed timers so tests fire them by hand.
type fakeScheduler struct {
	afters  []scheduledCall
	everies []scheduledCall
}

type scheduledCall struct {
	delay time.Duration
	fn    func()
}

func (s *fakeScheduler) After(d time.Duration, fn func()) {
	s.afters = append(s.afters, scheduledCall{delay: d, fn: fn})
}

func (s *fakeScheduler) Every(d time.Duration, fn func()) (stop func()) {
	s.everies = append(s.everies, scheduledCall{delay: d, fn: fn})
	return func() {}
}

// testClock is a settable clock injected as the manager's now func.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// capturePublisher records every published event.
type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *capturePublisher) Publish(name string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events.Event{Name: name, Payload: payload})
}

func (p *capturePublisher) all() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// fakeConn captures sent messages; fail makes every Send error.
type fakeConn struct {
	mu   sync.Mutex
	sent []any
	fail error
}

func (c *fakeConn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) messages() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.sent...)
}

func newTestManager(seed int64) (*Manager, *fakeScheduler, *capturePublisher, *testClock) {
	clock := &testClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	sched := &fakeScheduler{}
	pub := &capturePublisher{}
	m := NewManager(Options{
		Publisher: pub,
		Scheduler: sched,
		Now:       clock.Now,
		Rand:      rand.New(rand.NewSource(seed)),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return m, sched, pub, clock
}
