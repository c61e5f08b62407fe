// Package server hosts the Courtly REST API: authentication, account
// management and the booking collections (courts, tariffs, reservations,
// payments, availability, training requests).
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/config"
	"github.com/courtly-dev/courtly/internal/models"
)

// Form field patterns the browser front-end used to enforce client-side;
// they are authoritative here.
var (
	telefonoPattern  = regexp.MustCompile(`^[0-9+\-\s]{7,15}$`)
	documentoPattern = regexp.MustCompile(`^[0-9]{6,12}$`)
)

// Server represents the HTTP server
type Server struct {
	router      *gin.Engine
	db          *gorm.DB
	config      *config.Config
	logger      zerolog.Logger
	validator   *validator.Validate
	asynqClient *asynq.Client
	version     string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	db, err := initDatabase(cfg, zlog)
	if err != nil {
		return nil, err
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}

	if err := initJWTSecret(db, zlog); err != nil {
		return nil, err
	}

	// Initialize validator
	validate := validator.New()

	validate.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true // optional field
		}
		return telefonoPattern.MatchString(value)
	})

	validate.RegisterValidation("documento", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return documentoPattern.MatchString(value)
	})

	// Asynq client for enqueueing background tasks (password recovery)
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr: cfg.Redis.Address,
	})

	server := &Server{
		db:          db,
		config:      cfg,
		logger:      zlog,
		validator:   validate,
		asynqClient: asynqClient,
		version:     version,
	}

	server.setupRouter()

	return server, nil
}

// initJWTSecret loads the persisted signing secret, generating one on
// first boot.
func initJWTSecret(db *gorm.DB, zlog zerolog.Logger) error {
	var cfg models.Config
	if err := db.First(&cfg).Error; err == nil {
		auth.InitializeJWT(cfg.JWTSecret)
		zlog.Debug().Msg("Loaded JWT secret from database")
		return nil
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	secret := hex.EncodeToString(secretBytes)

	if err := db.Create(&models.Config{JWTSecret: secret}).Error; err != nil {
		return fmt.Errorf("failed to persist JWT secret: %w", err)
	}

	auth.InitializeJWT(secret)
	zlog.Info().Msg("Generated JWT secret on first boot")
	return nil
}

// initDatabase initializes the database connection with production settings
func initDatabase(cfg *config.Config, zlog zerolog.Logger) (*gorm.DB, error) {
	const (
		maxOpenConns    = 8
		maxIdleConns    = 4
		connMaxLifetime = 300 // seconds
		busyTimeout     = 5000
		cacheSize       = 10000
	)

	db, err := gorm.Open(sqlite.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				LogLevel:                  logger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode must be set first for optimal concurrency
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout),
		fmt.Sprintf("PRAGMA cache_size=-%d", cacheSize),
		"PRAGMA foreign_keys=1",
		"PRAGMA temp_store=2",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			zlog.Warn().Str("pragma", pragma).Err(err).Msg("Failed to apply pragma")
		}
	}

	return db, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.config.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Public auth endpoints
	s.router.POST("/auth/login", s.login)
	s.router.POST("/auth/registro", s.registro)
	s.router.GET("/auth/usuario/:usuario/disponible", s.usuarioDisponible)
	s.router.GET("/auth/email/:email/disponible", s.emailDisponible)
	s.router.POST("/auth/recuperar-password", s.recuperarPassword)

	// Everything below requires a bearer token
	api := s.router.Group("")
	api.Use(JWTAuthMiddleware(s.db, s.logger))
	{
		api.GET("/auth/me", s.getCurrentUser)
		api.PUT("/auth/perfil", s.actualizarPerfil)
		api.PUT("/auth/cambiar-password", s.cambiarPassword)

		// Admin-managed directories
		adminOnly := api.Group("")
		adminOnly.Use(RequireRoles(s.logger, auth.RoleAdmin))
		{
			adminOnly.GET("/administradores", s.listAdministradores)
			adminOnly.GET("/administradores/:id", s.getAdministrador)
			adminOnly.POST("/administradores", s.createAdministrador)
			adminOnly.PUT("/administradores/:id", s.updateAdministrador)
			adminOnly.DELETE("/administradores/:id", s.deleteAdministrador)

			adminOnly.GET("/clientes", s.listClientes)
			adminOnly.POST("/clientes", s.createCliente)
			adminOnly.DELETE("/clientes/:id", s.deleteCliente)

			adminOnly.GET("/entrenadores", s.listEntrenadores)
			adminOnly.GET("/entrenadores/:id", s.getEntrenador)
			adminOnly.POST("/entrenadores", s.createEntrenador)
			adminOnly.PUT("/entrenadores/:id", s.updateEntrenador)
			adminOnly.DELETE("/entrenadores/:id", s.deleteEntrenador)

			adminOnly.POST("/canchas", s.createCancha)
			adminOnly.PUT("/canchas/:id", s.updateCancha)
			adminOnly.DELETE("/canchas/:id", s.deleteCancha)

			adminOnly.POST("/tarifas", s.createTarifa)
			adminOnly.PUT("/tarifas/:id", s.updateTarifa)
			adminOnly.DELETE("/tarifas/:id", s.deleteTarifa)

			adminOnly.GET("/reportes", s.listReportes)
			adminOnly.GET("/reportes/:id", s.getReporte)
			adminOnly.POST("/reportes", s.createReporte)
			adminOnly.DELETE("/reportes/:id", s.deleteReporte)
			adminOnly.GET("/reportes/filtro/fechas", s.filterReportesByFechas)
			adminOnly.GET("/reportes/filtro/cliente/:id", s.filterReportesByCliente)
		}

		// Client profile (own record) and court/tariff catalogs
		api.GET("/clientes/:id", s.getCliente)
		api.PUT("/clientes/:id", s.updateCliente)
		api.GET("/canchas", s.listCanchas)
		api.GET("/canchas/:id", s.getCancha)
		api.GET("/tarifas", s.listTarifas)
		api.GET("/tarifas/vigentes", s.listTarifasVigentes)
		api.GET("/tarifas/:id", s.getTarifa)

		// Reservations and payments (client area, shared with admins)
		reservas := api.Group("")
		reservas.Use(RequireRoles(s.logger, auth.RoleCliente, auth.RoleAdmin))
		{
			reservas.GET("/reservas", s.listReservas)
			reservas.GET("/reservas/:id", s.getReserva)
			reservas.GET("/reservas/cliente/:id", s.listReservasByCliente)
			reservas.POST("/reservas", s.createReserva)
			reservas.PUT("/reservas/:id", s.updateReserva)
			reservas.DELETE("/reservas/:id", s.deleteReserva)

			reservas.GET("/pagos", s.listPagos)
			reservas.GET("/pagos/:id", s.getPago)
			reservas.GET("/pagos/cliente/:id", s.listPagosByCliente)
			reservas.POST("/pagos", s.createPago)
			reservas.PUT("/pagos/:id", s.updatePago)
			reservas.DELETE("/pagos/:id", s.deletePago)
		}

		// Availability slots: readable by everyone, written by trainers
		api.GET("/disponibilidad", s.listDisponibilidades)
		api.GET("/disponibilidad/entrenador/:id", s.listDisponibilidadesByEntrenador)

		entrenadorOnly := api.Group("")
		entrenadorOnly.Use(RequireRoles(s.logger, auth.RoleEntrenador))
		{
			entrenadorOnly.POST("/disponibilidad", s.createDisponibilidad)
			entrenadorOnly.PUT("/disponibilidad/:id", s.updateDisponibilidad)
			entrenadorOnly.DELETE("/disponibilidad/:id", s.deleteDisponibilidad)

			entrenadorOnly.GET("/solicitudes/disponibles", s.listSolicitudesDisponibles)
			entrenadorOnly.GET("/solicitudes/entrenador/:id", s.listSolicitudesByEntrenador)
			entrenadorOnly.POST("/solicitudes/:id/aceptar/:idEntrenador", s.aceptarSolicitud)
			entrenadorOnly.POST("/solicitudes/:id/rechazar", s.rechazarSolicitud)
		}

		// Training requests: created by clients, listed per owner
		solicitudes := api.Group("")
		solicitudes.Use(RequireRoles(s.logger, auth.RoleCliente, auth.RoleAdmin))
		{
			solicitudes.POST("/solicitudes", s.createSolicitud)
			solicitudes.GET("/solicitudes", s.listSolicitudes)
			solicitudes.GET("/solicitudes/cliente/:id", s.listSolicitudesByCliente)
			solicitudes.DELETE("/solicitudes/:id", s.deleteSolicitud)
		}
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start)

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "courtly-api",
	})
}

// GetDB returns the database connection for use by workers
func (s *Server) GetDB() *gorm.DB {
	return s.db
}

// Router returns the configured gin engine, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.Server.Addr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.config.Server.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	if err := s.asynqClient.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Error closing Asynq client")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")

	// Close database connection to flush WAL writes
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing database")
		}
	}

	return nil
}
