package api

import (
	"github.com/gin-gonic/gin"

	"gohoras/app"
	"gohoras/internal"
	"gohoras/internal/auth"
	"gohoras/internal/config"
	"gohoras/internal/upload"
	"gohoras/ports"
)

// Server wires the REST API: auth, contests, time entries, notifications
// and uploaded photo serving.
type Server struct {
	router *gin.Engine
	cfg    *config.Config
	log    *internal.Logger

	tokens  *auth.TokenManager
	uploads *upload.Store

	users         ports.UserRepository
	contests      ports.ContestRepository
	notifications ports.NotificationRepository

	tracker  *app.TrackerService
	stats    *app.StatsService
	notifier *app.NotificationService
}

// Deps bundles everything the server needs
type Deps struct {
	Tokens  *auth.TokenManager
	Uploads *upload.Store

	Users         ports.UserRepository
	Contests      ports.ContestRepository
	Notifications ports.NotificationRepository

	Tracker  *app.TrackerService
	Stats    *app.StatsService
	Notifier *app.NotificationService
}

// NewServer creates the API server and registers all routes
func NewServer(cfg *config.Config, deps Deps) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:        gin.New(),
		cfg:           cfg,
		log:           internal.DefaultLogger,
		tokens:        deps.Tokens,
		uploads:       deps.Uploads,
		users:         deps.Users,
		contests:      deps.Contests,
		notifications: deps.Notifications,
		tracker:       deps.Tracker,
		stats:         deps.Stats,
		notifier:      deps.Notifier,
	}

	s.router.Use(gin.Logger(), gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// 10 auth attempts per 15 minutes, 10 uploads per minute, per IP
	authLimiter := perIPRateLimit(10, 15)
	uploadLimiter := perIPRateLimit(10, 1)

	s.router.Static("/uploads", s.uploads.Dir())

	api := s.router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authLimiter, s.register)
		authGroup.POST("/login", authLimiter, s.login)
		authGroup.GET("/profile", s.requireAuth, s.getProfile)
		authGroup.PUT("/profile", s.requireAuth, uploadLimiter, s.updateProfile)
		authGroup.GET("/users", s.requireAuth, s.requireAdmin, s.listUsers)
	}

	contests := api.Group("/contests", s.requireAuth)
	{
		contests.POST("", s.requireAdmin, s.createContest)
		contests.GET("", s.listContests)
		contests.GET("/my", s.listMyContests)
		contests.GET("/:id", s.getContest)
		contests.PUT("/:id", s.requireAdmin, s.updateContest)
		contests.DELETE("/:id", s.requireAdmin, s.deleteContest)
		contests.POST("/:id/members", s.requireAdmin, s.addContestMember)
		contests.DELETE("/:id/members/:userId", s.requireAdmin, s.removeContestMember)
	}

	entries := api.Group("/timeentries", s.requireAuth)
	{
		entries.POST("/entry", uploadLimiter, s.clockIn)
		entries.PUT("/exit/:id", uploadLimiter, s.clockOut)
		entries.GET("/contest/:contestId", s.listContestEntries)
		entries.GET("/my/:contestId", s.listMyEntries)
		entries.GET("/open/:contestId", s.getOpenEntry)
		entries.GET("/stats/:contestId", s.getContestStats)
		entries.GET("/stats/:contestId/export", s.exportContestStats)
		entries.GET("/daily/:contestId/:date", s.getDailyAttendance)
	}

	notifications := api.Group("/notifications", s.requireAuth)
	{
		notifications.POST("", s.requireAdmin, s.sendNotification)
		notifications.POST("/bulk", s.requireAdmin, s.sendBulkNotifications)
		notifications.GET("/my", s.listMyNotifications)
		notifications.PUT("/mark-all-read", s.markAllNotificationsRead)
		notifications.PUT("/:id/read", s.markNotificationRead)
		notifications.GET("/unread-count", s.getUnreadCount)
	}
}

// Run starts the HTTP listener
func (s *Server) Run() error {
	s.log.Info("API server listening on :%s", s.cfg.Server.Port)
	return s.router.Run(":" + s.cfg.Server.Port)
}
