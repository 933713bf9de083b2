package main

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"synergyApi/synergy"
)

var registerOnce sync.Once

type Server struct {
	cfg    Config
	logger *zap.Logger
}

func NewServer(cfg Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	registerOnce.Do(registerValidators)
	return &Server{cfg: cfg, logger: logger}
}

func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(s.logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Synergy-Host", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.POST("/login", s.handleLogin)
	router.POST("/grades/calculate", s.handleCalculate)

	api := router.Group("/")
	api.Use(AuthMiddleware())
	{
		api.GET("/gradebook", s.handleGradebook)
		api.GET("/attendance", s.handleAttendance)
		api.GET("/student-info", s.handleStudentInfo)
		api.GET("/documents", s.handleDocuments)
		api.GET("/documents/:guid", s.handleDocument)
		api.GET("/report-card/:guid", s.handleReportCard)
		api.GET("/mail", s.handleMail)
		api.GET("/course-history", s.handleCourseHistory)
		api.GET("/name", s.handleName)
		api.GET("/test-analysis", s.handleTestAnalysis)
	}

	return router
}

func (s *Server) clientOptions() []synergy.Option {
	opts := []synergy.Option{
		synergy.WithTimeout(s.cfg.RequestTimeout),
		synergy.WithUserAgent(s.cfg.UserAgent),
		synergy.WithLogger(s.logger),
	}
	if s.cfg.InsecureHTTP {
		opts = append(opts, synergy.WithScheme("http"))
	}
	return opts
}

func (s *Server) client(creds synergy.Credentials) *synergy.Client {
	return synergy.NewClient(creds, s.clientOptions()...)
}

func (s *Server) sessionClient(creds synergy.Credentials) *synergy.SessionClient {
	return synergy.NewSessionClient(creds, s.clientOptions()...)
}

// statusFor maps the synergy error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	var remote *synergy.RemoteError
	switch {
	case errors.Is(err, synergy.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, synergy.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &remote):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	switch status {
	case http.StatusGatewayTimeout:
		message = "the district server is not responding"
	case http.StatusBadGateway:
		message = "could not communicate with the district server: " + err.Error()
	}
	s.logger.Warn("request failed", zap.String("path", c.FullPath()), zap.Int("status", status), zap.Error(err))
	c.JSON(status, ErrorResponse{Error: message})
}
