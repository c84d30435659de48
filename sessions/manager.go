// Package sessions is the in-memory core of the attendance service: it
// owns rooms, their attendance records and their live connections, and
// coordinates expiry. All state is ephemeral and rebuilt from zero on
// process restart; durable concerns live behind the injected
// events.Publisher.
package sessions

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Zeshanxviii/attendance-system/events"
	"github.com/Zeshanxviii/attendance-system/models"
)

// Manager holds every room's state behind one mutex. Room counts are
// small, so a single lock keeps all per-room mutations serialized
// without per-room bookkeeping. Socket writes never happen under the
// lock; mutate-then-snapshot, send after unlock.
type Manager struct {
	mu          sync.Mutex
	rooms       map[string]*models.Room
	attendance  map[string][]models.AttendanceRecord
	connections map[string]map[Conn]struct{}

	publisher events.Publisher
	scheduler Scheduler
	now       func() time.Time
	rng       *rand.Rand
	log       *slog.Logger
}

// Options carries the Manager's injected collaborators. Zero-value
// fields fall back to production defaults; tests swap in fakes.
type Options struct {
	Publisher events.Publisher
	Scheduler Scheduler
	Now       func() time.Time
	Rand      *rand.Rand
	Logger    *slog.Logger
}

func NewManager(opts Options) *Manager {
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Manager{
		rooms:       make(map[string]*models.Room),
		attendance:  make(map[string][]models.AttendanceRecord),
		connections: make(map[string]map[Conn]struct{}),
		publisher:   opts.Publisher,
		scheduler:   opts.Scheduler,
		now:         opts.Now,
		rng:         opts.Rand,
		log:         opts.Logger.With("component", "sessions"),
	}
}
