package ui

import (
	"github.com/yvensrabelo/entropia-site-2-sub000/domain/vestibular"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal"
	"github.com/yvensrabelo/entropia-site-2-sub000/internal/config"
	"github.com/yvensrabelo/entropia-site-2-sub000/ports"

	"github.com/gin-gonic/gin"
)

// Server is the public-facing API: calculator, enrollment and the teacher
// descriptor endpoints. Administrative CRUD lives on the separate chi
// router, see admin.go.
type Server struct {
	router      *gin.Engine
	cutoffs     *vestibular.Table
	descriptors ports.DescriptorRepository
	schedule    ports.ScheduleRepository
	teachers    ports.TeacherRepository
	notifier    ports.EnrollmentNotifier
	logger      *internal.Logger
	cfg         *config.Config
}

// NewServer creates the public API server.
func NewServer(cfg *config.Config, cutoffs *vestibular.Table, descriptors ports.DescriptorRepository, schedule ports.ScheduleRepository, teachers ports.TeacherRepository, notifier ports.EnrollmentNotifier, logger *internal.Logger) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:      gin.Default(),
		cutoffs:     cutoffs,
		descriptors: descriptors,
		schedule:    schedule,
		teachers:    teachers,
		notifier:    notifier,
		logger:      logger,
		cfg:         cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	api.Use(RateLimit(30))
	{
		calc := api.Group("/calculadora")
		{
			calc.GET("/processos", s.handleListProcesses)
			calc.POST("/nota", s.handleComputeScore)
			calc.POST("/cota", s.handleDetermineQuota)
			calc.POST("/comparar", s.handleCompare)
		}

		api.POST("/matricula", s.handleEnrollment)

		api.GET("/descritores-v2", s.handleListDescriptors)
		api.POST("/descritores-v2", s.handleUpsertDescriptor)
		api.GET("/descritores-v2/topicos", s.handleListTopics)
		api.GET("/descritores-v2/relatorio", s.handleDescriptorReport)
	}
}

// Run starts the public API on the configured port.
func (s *Server) Run() error {
	addr := ":" + s.cfg.Server.Port
	s.logger.Info("public API listening on %s", addr)
	return s.router.Run(addr)
}
