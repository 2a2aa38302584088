package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peerconnect/internal/cache"
	"peerconnect/internal/config"
	"peerconnect/internal/database"
	"peerconnect/internal/feed"
	"peerconnect/internal/gateway"
	"peerconnect/internal/middleware"
	"peerconnect/internal/modules/auth"
	"peerconnect/internal/modules/availability"
	"peerconnect/internal/modules/booking"
	"peerconnect/internal/modules/catalog"
	"peerconnect/internal/modules/chat"
	"peerconnect/internal/modules/notification"
	"peerconnect/internal/modules/profile"
	"peerconnect/internal/modules/report"
	"peerconnect/internal/modules/request"
	"peerconnect/internal/modules/review"
	"peerconnect/internal/payments"
	jwtsvc "peerconnect/internal/pkg/jwt"
	"peerconnect/internal/repository"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	cacheStore := cache.NewDBStore(db)
	if err := cacheStore.Migrate(); err != nil {
		log.Fatal("failed to migrate cache table", zap.Error(err))
	}
	if err := cacheStore.Sweep(context.Background(), cfg.CacheSweepMaxAge); err != nil {
		log.Warn("cache sweep failed", zap.Error(err))
	}
	readCache := cache.New(cacheStore, log, nil)

	broker := feed.NewBroker(log)
	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	blobs := gateway.NewDiskBlobStore(cfg.BlobDir, cfg.BlobBaseURL)
	charger := payments.New(cfg.PaymentDelay, cfg.PaymentSuccessRate)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	requestRepo := repository.NewRequestRepository(db, broker)
	bookingRepo := repository.NewBookingRepository(db, broker)
	messageRepo := repository.NewMessageRepository(db, broker)
	notifRepo := repository.NewNotificationRepository(db, broker)
	availRepo := repository.NewAvailabilityRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	reportRepo := repository.NewReportRepository(db)

	var push notification.PushSender
	if cfg.PushEnabled {
		push = notification.NewExpoPushSender(cfg.PushEndpoint)
	}
	notifService := notification.NewService(notifRepo, profileRepo, push, log)

	authService := auth.NewService(userRepo, profileRepo, jwtService)
	profileService := profile.NewService(profileRepo, blobs, readCache)
	catalogService := catalog.NewService(courseRepo, readCache)
	requestService := request.NewService(requestRepo, notifService, nil)
	bookingService := booking.NewService(bookingRepo, requestRepo, charger, notifService, log, nil)
	chatService := chat.NewService(messageRepo, readCache, notifService, nil)
	availService := availability.NewService(availRepo)
	reviewService := review.NewService(reviewRepo, notifService, nil)
	reportService := report.NewService(reportRepo, nil)

	authHandler := auth.NewHandler(authService)
	profileHandler := profile.NewHandler(profileService)
	catalogHandler := catalog.NewHandler(catalogService)
	requestHandler := request.NewHandler(requestService)
	bookingHandler := booking.NewHandler(bookingService)
	chatHandler := chat.NewHandler(chatService, broker, jwtService, log)
	notifHandler := notification.NewHandler(notifService)
	availHandler := availability.NewHandler(availService)
	reviewHandler := review.NewHandler(reviewService)
	reportHandler := report.NewHandler(reportService)

	router := gin.New()
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/blobs", cfg.BlobDir)

	v1 := router.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/", middleware.Auth(jwtService))
	authHandler.RegisterProtectedRoutes(protected)
	profileHandler.RegisterRoutes(protected)
	catalogHandler.RegisterRoutes(protected)
	requestHandler.RegisterRoutes(protected)
	bookingHandler.RegisterRoutes(protected)
	chatHandler.RegisterRoutes(protected)
	notifHandler.RegisterRoutes(protected)
	availHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)

	admin := protected.Group("/admin", middleware.RequireAdmin())
	reportHandler.RegisterRoutes(protected, admin)

	chatHandler.RegisterWS(router)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
