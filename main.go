package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Zeshanxviii/attendance-system/config"
	"github.com/Zeshanxviii/attendance-system/database"
	"github.com/Zeshanxviii/attendance-system/events"
	"github.com/Zeshanxviii/attendance-system/handlers"
	"github.com/Zeshanxviii/attendance-system/models"
	"github.com/Zeshanxviii/attendance-system/sessions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// user store (identity only; room state is ephemeral)
	if err := database.Connect(cfg.DatabasePath); err != nil {
		log.Fatal("Failed to connect to user database:", err)
	}
	seedUsers(logger)

	// event bus before websocket wiring
	bus := events.NewChannelPublisher(cfg.EventBuffer)
	go consumeEvents(bus, logger)

	manager := sessions.NewManager(sessions.Options{
		Publisher: bus,
		Logger:    logger,
	})
	stopSweep := manager.StartExpirySweep(cfg.SweepInterval)
	defer stopSweep()

	h := handlers.New(manager, database.Resolver{}, logger, cfg.AllowedOrigins)

	// router
	router := gin.Default()
	router.GET("/api/version", h.Version)
	router.POST("/api/room", h.CreateRoom)
	router.GET("/api/attend", h.Attend)

	logger.Info("server starting", "addr", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// consumeEvents drains the bus. Downstream persistence and analytics
// hang off this loop; for now each event is logged.
func consumeEvents(bus *events.ChannelPublisher, logger *slog.Logger) {
	for ev := range bus.Events() {
		logger.Info("domain event", "name", ev.Name, "payload", ev.Payload)
	}
}

// seedUsers puts one teacher and one student in an empty store so a
// fresh checkout is usable immediately.
func seedUsers(logger *slog.Logger) {
	n, err := database.CountUsers()
	if err != nil || n > 0 {
		return
	}
	seed := []models.User{
		{ID: "teacher:1", Email: "t1@example.com", Role: models.RoleTeacher, Name: "Teacher One"},
		{ID: "student:1", Email: "s1@example.com", Role: models.RoleStudent, Name: "Student One"},
	}
	for _, u := range seed {
		if err := database.CreateUser(u); err != nil {
			logger.Warn("seed user failed", "userId", u.ID, "error", err)
		}
	}
	logger.Info("seeded default users", "count", len(seed))
}
