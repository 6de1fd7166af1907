package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/moeenhealth/clinic-api/internal/config"
	"github.com/moeenhealth/clinic-api/internal/email"
	"github.com/moeenhealth/clinic-api/internal/handler"
	authHandler "github.com/moeenhealth/clinic-api/internal/handler/auth"
	availabilityHandler "github.com/moeenhealth/clinic-api/internal/handler/availability"
	bookingHandler "github.com/moeenhealth/clinic-api/internal/handler/booking"
	sessionTypeHandler "github.com/moeenhealth/clinic-api/internal/handler/sessiontype"
	therapistHandler "github.com/moeenhealth/clinic-api/internal/handler/therapist"
	"github.com/moeenhealth/clinic-api/internal/middleware"
	"github.com/moeenhealth/clinic-api/internal/model"
	"github.com/moeenhealth/clinic-api/internal/repository/postgres"
	"github.com/moeenhealth/clinic-api/internal/router"
	authService "github.com/moeenhealth/clinic-api/internal/service/auth"
	availabilityService "github.com/moeenhealth/clinic-api/internal/service/availability"
	bookingService "github.com/moeenhealth/clinic-api/internal/service/booking"
	sessionTypeService "github.com/moeenhealth/clinic-api/internal/service/sessiontype"
	therapistService "github.com/moeenhealth/clinic-api/internal/service/therapist"
	"github.com/moeenhealth/clinic-api/pkg/metrics"
	"github.com/moeenhealth/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := model.RegisterValidations(v); err != nil {
			log.Fatal().Err(err).Msg("failed to register validations")
		}
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	sessionTypeRepo := postgres.NewSessionTypeRepository(db)
	therapistRepo := postgres.NewTherapistRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	staffRepo := postgres.NewStaffRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Email sender
	var emailSvc email.Service
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		emailSvc = email.NewNoopService()
	}

	// Services
	availabilitySvc := availabilityService.NewService(sessionTypeRepo, scheduleRepo, bookingRepo)
	bookingSvc := bookingService.NewService(bookingRepo, sessionTypeRepo, outboxRepo, emailSvc)
	sessionTypeSvc := sessionTypeService.NewService(sessionTypeRepo)
	therapistSvc := therapistService.NewService(therapistRepo, scheduleRepo)
	authSvc := authService.NewService(staffRepo, security.NewBcryptHasher(0), authService.Config{
		Secret:      cfg.JWT.Secret,
		ExpiryHours: cfg.JWT.ExpiryHours,
	})

	m := metrics.NewMetrics("clinic_api", "api")

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	availabilityH := availabilityHandler.NewHandler(availabilitySvc, m)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	sessionTypeH := sessionTypeHandler.NewHandler(sessionTypeSvc)
	therapistH := therapistHandler.NewHandler(therapistSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.Security.AllowedHeaders
	}

	routerConfig := router.RouterConfig{
		CORSConfig:     corsConfig,
		RequestTimeout: cfg.Server.RequestTimeout,
		MetricsPrefix:  "clinic_api",
	}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimitRPS = cfg.RateLimit.RequestsPerSecond
		routerConfig.RateLimitBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(
		authMiddleware,
		authH,
		availabilityH,
		bookingH,
		sessionTypeH,
		therapistH,
		h,
		routerConfig,
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
