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

	confirmationapp "github.com/osis/backend/internal/application/confirmation"
	"github.com/osis/backend/internal/application/dispatcher"
	documentapp "github.com/osis/backend/internal/application/document"
	juryapp "github.com/osis/backend/internal/application/jury"
	supervisionapp "github.com/osis/backend/internal/application/supervision"
	trainingapp "github.com/osis/backend/internal/application/training"
	trajectoryapp "github.com/osis/backend/internal/application/trajectory"
	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/training"
	"github.com/osis/backend/internal/domain/trajectory"
	"github.com/osis/backend/internal/infrastructure/auth"
	"github.com/osis/backend/internal/infrastructure/cache"
	"github.com/osis/backend/internal/infrastructure/config"
	"github.com/osis/backend/internal/infrastructure/event"
	"github.com/osis/backend/internal/infrastructure/logger"
	"github.com/osis/backend/internal/infrastructure/notification"
	"github.com/osis/backend/internal/infrastructure/persistence"
	"github.com/osis/backend/internal/infrastructure/printing"
	"github.com/osis/backend/internal/infrastructure/scheduler"
	"github.com/osis/backend/internal/infrastructure/storage"
	"github.com/osis/backend/internal/infrastructure/telemetry"
	"github.com/osis/backend/internal/interfaces/http/handler"
	"github.com/osis/backend/internal/interfaces/http/middleware"
	"github.com/osis/backend/internal/interfaces/http/router"
)

// documentStore is the slice of the file store the server wires in: the
// presigned URL surface for the HTTP layer, raw upload for the PDF
// renderers and duplication for the admission snapshot.
type documentStore interface {
	handler.FileStore
	printing.Uploader
	reference.DocumentDuplicator
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting doctoral trajectory backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry: traces, metrics and the OTLP log bridge
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Initialize database connection with zap-mapped GORM log level
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database observability: query spans and pool metrics
	if cfg.Telemetry.Enabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          cfg.Telemetry.DBTraceEnabled,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:         "postgresql",
			WithoutVariables: true,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}

		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("db"), telemetry.DefaultDBMetricsConfig(), log)
		if err != nil {
			log.Warn("Failed to initialize database metrics", zap.Error(err))
		} else {
			if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
				log.Warn("Failed to register database metrics plugin", zap.Error(err))
			}
			if sqlDB, err := db.DB.DB(); err == nil {
				dbMetrics.SetSQLDB(sqlDB)
				dbMetrics.StartPoolStatsCollection(ctx)
				defer dbMetrics.Stop()
			}
		}
	}

	// Initialize repositories
	trajectoryRepo := persistence.NewGormTrajectoryRepository(db.DB)
	supervisionRepo := persistence.NewGormSupervisionRepository(db.DB)
	confirmationRepo := persistence.NewGormConfirmationRepository(db.DB)
	trainingRepo := persistence.NewGormTrainingRepository(db.DB)
	juryRepo := persistence.NewGormJuryRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	historian := persistence.NewGormHistorian(db.DB)
	taskQueue := persistence.NewGormTaskQueue(db.DB)
	roleStore := persistence.NewGormRoleStore(db.DB)
	webNotifications := persistence.NewGormWebNotificationStore(db.DB)

	// Reference translators bridge to the shared institutional tables
	var personTranslator reference.PersonTranslator = persistence.NewGormPersonTranslator(db.DB)
	admissionTranslator := persistence.NewGormAdmissionTranslator(db.DB)
	trainingTranslator := persistence.NewGormTrainingTranslator(db.DB)

	// Person lookups are hot on every notification; cache them in Redis
	// when available, in memory otherwise. Token revocations ride the
	// same connection so every instance sees them.
	var cacheStore cache.Store
	var tokenBlacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cfg.Redis.Host != "" {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
			cacheStore = cache.NewMemoryStore()
		} else {
			cacheStore = redisStore
			tokenBlacklist = auth.NewRedisTokenBlacklist(redisStore.Client())
		}
	} else {
		cacheStore = cache.NewMemoryStore()
	}
	personTranslator = cache.NewCachedPersonTranslator(personTranslator, cacheStore)

	// Document file store: S3-compatible when configured, stub otherwise
	var docStore documentStore
	if cfg.Storage.Endpoint != "" || cfg.Storage.AccessKeyID != "" {
		s3Store, err := storage.NewS3DocumentStore(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize document store", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure document bucket", zap.Error(err))
		}
		docStore = s3Store
		log.Info("Document store ready", zap.String("bucket", s3Store.GetBucket()))
	} else {
		docStore = storage.NewStubDocumentStore()
		log.Warn("No object storage configured, using stub document store")
	}

	// Event bus for cross-module domain events; the serializer decodes
	// inbound envelopes from the admission context
	eventSerializer := event.NewEventSerializer()
	event.RegisterAllEvents(eventSerializer)
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Outbound notifications: a web row for internal persons plus email
	var mailer notification.Mailer
	if cfg.Mail.Enabled {
		mailer = notification.NewSMTPMailer(cfg.Mail)
	} else {
		mailer = notification.NewLogMailer(log)
	}
	notifier := notification.NewNotifier(webNotifications, mailer, trajectoryRepo,
		supervisionRepo, juryRepo, personTranslator, log)

	// PDF rendering for archives and attestations
	pdfRenderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		Headless:   true,
		DisableGPU: true,
		NoSandbox:  true,
		Logger:     log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()
	archiveRenderer := printing.NewArchivePDFRenderer(pdfRenderer, docStore, log)
	attestationRenderer := printing.NewAttestationPDFRenderer(pdfRenderer, docStore, log)

	// Initialize application services
	initService := trajectoryapp.NewInitService(trajectoryRepo, supervisionRepo,
		confirmationRepo, admissionTranslator, trainingTranslator, docStore,
		roleStore, notifier, historian, eventBus, log)
	projectService := trajectoryapp.NewProjectService(trajectoryRepo, historian, log)
	archiveService := trajectoryapp.NewArchiveService(trajectoryRepo, supervisionRepo,
		confirmationRepo, trainingRepo, documentRepo, taskQueue, archiveRenderer, log)
	supervisionService := supervisionapp.NewService(supervisionRepo, trajectoryRepo,
		personTranslator, roleStore, notifier, historian, eventBus, log)
	confirmationService := confirmationapp.NewService(confirmationRepo, trajectoryRepo,
		notifier, historian, taskQueue, eventBus, log)
	attestationService := confirmationapp.NewAttestationService(confirmationRepo,
		trajectoryRepo, taskQueue, attestationRenderer, log)
	trainingService := trainingapp.NewService(trainingRepo, trajectoryRepo,
		training.NewSubmitService(trainingRepo), notifier, historian, log)
	juryService := juryapp.NewService(juryRepo, trajectoryRepo, supervisionRepo,
		personTranslator, notifier, historian, eventBus, log)
	documentService := documentapp.NewService(documentRepo, trajectoryRepo,
		notifier, historian, log)

	// The init service reacts to inbound admission events
	eventBus.Subscribe(initService)

	// Command dispatcher: every use-case is registered once by name
	d := dispatcher.New(log)
	trajectoryapp.Register(d, initService, projectService, archiveService)
	supervisionapp.Register(d, supervisionService)
	confirmationapp.Register(d, confirmationService)
	trainingapp.Register(d, trainingService)
	juryapp.Register(d, juryService)
	documentapp.Register(d, documentService)

	// Deferred-task worker: drains PDF archives and success attestations
	if cfg.Worker.Enabled {
		taskWorker := scheduler.NewTaskWorker(scheduler.TaskWorkerConfig{
			PollInterval: cfg.Worker.PollInterval,
			JobTimeout:   cfg.Worker.JobTimeout,
		}, taskQueue, log)
		taskWorker.Register(trajectory.TaskKindPDFArchive,
			scheduler.TaskProcessorFunc(archiveService.Process))
		taskWorker.Register(trajectory.TaskKindSuccessAttestation,
			scheduler.TaskProcessorFunc(attestationService.Process))
		if err := taskWorker.Start(ctx); err != nil {
			log.Fatal("Failed to start task worker", zap.Error(err))
		}
		defer func() {
			if err := taskWorker.Stop(context.Background()); err != nil {
				log.Error("Error stopping task worker", zap.Error(err))
			}
		}()
	}

	// Business metrics: pending task gauge collected periodically
	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:        meterProvider.Meter("business"),
			Logger:       log,
			TaskProvider: taskQueue,
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
		} else {
			businessMetrics.StartPeriodicCollection(ctx, time.Minute)
		}
	}

	// JWT validation for the API surface
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	trajectoryHandler := handler.NewTrajectoryHandler(d)
	supervisionHandler := handler.NewSupervisionHandler(d)
	confirmationHandler := handler.NewConfirmationHandler(d)
	trainingHandler := handler.NewTrainingHandler(d)
	juryHandler := handler.NewJuryHandler(d)
	documentHandler := handler.NewDocumentHandler(d)
	fileHandler := handler.NewFileHandler(docStore)
	notificationHandler := handler.NewNotificationHandler(webNotifications)
	eventIngressHandler := handler.NewEventIngressHandler(eventSerializer, eventBus)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics - OpenTelemetry instrumentation
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	manager := middleware.RequireRoles(auth.RoleManager)
	promoter := middleware.RequireRoles(auth.RolePromoter, auth.RoleManager)

	// Trajectory core: project, funding, cotutelle and the PDF archive
	trajectoryRoutes := router.NewDomainGroup("trajectory", "/trajectories")
	trajectoryRoutes.POST("", manager, trajectoryHandler.Initialize)
	trajectoryRoutes.GET("/:id", trajectoryHandler.Get)
	trajectoryRoutes.PUT("/:id/project", trajectoryHandler.ModifyProject)
	trajectoryRoutes.PUT("/:id/funding", trajectoryHandler.ModifyFunding)
	trajectoryRoutes.GET("/:id/cotutelle", trajectoryHandler.GetCotutelle)
	trajectoryRoutes.PUT("/:id/cotutelle", trajectoryHandler.ModifyCotutelle)
	trajectoryRoutes.POST("/:id/archive", manager, trajectoryHandler.GenerateArchive)
	trajectoryRoutes.POST("/:id/upload-url", fileHandler.CreateUploadURL)

	// Supervision group: membership and the signature round
	trajectoryRoutes.GET("/:id/supervision", supervisionHandler.Get)
	trajectoryRoutes.POST("/:id/supervision/promoters", supervisionHandler.IdentifyPromoter)
	trajectoryRoutes.POST("/:id/supervision/ca-members", supervisionHandler.IdentifyCAMember)
	trajectoryRoutes.DELETE("/:id/supervision/promoters/:memberID", supervisionHandler.RemovePromoter)
	trajectoryRoutes.DELETE("/:id/supervision/ca-members/:memberID", supervisionHandler.RemoveCAMember)
	trajectoryRoutes.PUT("/:id/supervision/promoters/:memberID/reference", supervisionHandler.DesignateReferencePromoter)
	trajectoryRoutes.POST("/:id/supervision/signatures/request", supervisionHandler.RequestSignatures)
	trajectoryRoutes.POST("/:id/supervision/members/:memberID/resend-invitation", supervisionHandler.ResendInvitation)
	trajectoryRoutes.POST("/:id/supervision/members/:memberID/approve", supervisionHandler.Approve)
	trajectoryRoutes.POST("/:id/supervision/members/:memberID/decline", supervisionHandler.Decline)
	trajectoryRoutes.POST("/:id/supervision/members/:memberID/approve-by-pdf", manager, supervisionHandler.ApproveByPDF)

	// Confirmation exam: submission, extension and the three decisions
	trajectoryRoutes.GET("/:id/confirmation", confirmationHandler.List)
	trajectoryRoutes.POST("/:id/confirmation", confirmationHandler.Submit)
	trajectoryRoutes.PUT("/:id/confirmation", manager, confirmationHandler.UpdateByCDD)
	trajectoryRoutes.PUT("/:id/confirmation/supervisor", promoter, confirmationHandler.CompleteByPromoter)
	trajectoryRoutes.POST("/:id/confirmation/extension", confirmationHandler.RequestExtension)
	trajectoryRoutes.POST("/:id/confirmation/success", manager, confirmationHandler.ConfirmSuccess)
	trajectoryRoutes.POST("/:id/confirmation/failure", manager, confirmationHandler.ConfirmFailure)
	trajectoryRoutes.POST("/:id/confirmation/retake", manager, confirmationHandler.ConfirmRetake)

	// Doctoral training: trajectory-scoped catalogue operations
	trajectoryRoutes.GET("/:id/training/activities", trainingHandler.List)
	trajectoryRoutes.POST("/:id/training/activities", trainingHandler.Create)
	trajectoryRoutes.POST("/:id/training/activities/submit", trainingHandler.SubmitBatch)
	trajectoryRoutes.POST("/:id/training/activities/approve", promoter, trainingHandler.Approve)
	trajectoryRoutes.POST("/:id/training/activities/:activityID/refuse", promoter, trainingHandler.Refuse)

	// Defence jury: composition and the institutional approval chain
	trajectoryRoutes.GET("/:id/jury", juryHandler.Get)
	trajectoryRoutes.PUT("/:id/jury/defence", juryHandler.ModifyDefence)
	trajectoryRoutes.POST("/:id/jury/members", juryHandler.AddMember)
	trajectoryRoutes.PUT("/:id/jury/members/:memberID", juryHandler.ModifyMember)
	trajectoryRoutes.DELETE("/:id/jury/members/:memberID", juryHandler.RemoveMember)
	trajectoryRoutes.PUT("/:id/jury/members/:memberID/role", juryHandler.ChangeRole)
	trajectoryRoutes.POST("/:id/jury/submit", juryHandler.Submit)
	trajectoryRoutes.POST("/:id/jury/resubmit", juryHandler.Resubmit)
	trajectoryRoutes.POST("/:id/jury/approve-by-ca", promoter, juryHandler.ApproveByCA)
	trajectoryRoutes.POST("/:id/jury/approve-by-cdd", manager, juryHandler.ApproveByCDD)
	trajectoryRoutes.POST("/:id/jury/refuse-by-cdd", manager, juryHandler.RefuseByCDD)
	trajectoryRoutes.POST("/:id/jury/approve-by-adre", manager, juryHandler.ApproveByADRE)
	trajectoryRoutes.POST("/:id/jury/refuse-by-adre", manager, juryHandler.RefuseByADRE)
	trajectoryRoutes.POST("/:id/jury/signatures/request", juryHandler.RequestSignatures)
	trajectoryRoutes.POST("/:id/jury/members/:memberID/approve", juryHandler.ApproveMember)
	trajectoryRoutes.POST("/:id/jury/members/:memberID/approve-by-pdf", manager, juryHandler.ApproveMemberByPDF)
	trajectoryRoutes.POST("/:id/jury/members/:memberID/refuse", juryHandler.RefuseMember)

	// Free documents of a trajectory
	trajectoryRoutes.GET("/:id/documents", documentHandler.List)
	trajectoryRoutes.POST("/:id/documents", documentHandler.Upload)
	trajectoryRoutes.POST("/:id/documents/request", manager, documentHandler.Request)

	// Activity operations addressed by activity, not trajectory
	activityRoutes := router.NewDomainGroup("training", "/activities")
	activityRoutes.PUT("/:activityID", trainingHandler.Update)
	activityRoutes.DELETE("/:activityID", trainingHandler.Delete)
	activityRoutes.POST("/:activityID/restore", trainingHandler.Restore)
	activityRoutes.POST("/:activityID/opinion", promoter, trainingHandler.GiveOpinion)
	activityRoutes.POST("/:activityID/enrolments", trainingHandler.Enrol)
	activityRoutes.PUT("/:activityID/enrolments/:enrolmentID/mark", manager, trainingHandler.CorrectMark)

	// Document operations addressed by document
	documentRoutes := router.NewDomainGroup("document", "/documents")
	documentRoutes.PUT("/:documentID", documentHandler.Fill)
	documentRoutes.POST("/:documentID/replace", documentHandler.Replace)
	documentRoutes.DELETE("/:documentID", manager, documentHandler.Delete)

	// Presigned download URLs for stored files
	fileRoutes := router.NewDomainGroup("files", "/files")
	fileRoutes.GET("/download-url", fileHandler.CreateDownloadURL)

	// In-app notifications of the authenticated person
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.POST("/:notificationID/read", notificationHandler.MarkRead)

	// Inbound events from other contexts (admission approvals)
	eventRoutes := router.NewDomainGroup("events", "/events")
	eventRoutes.POST("", manager, eventIngressHandler.Publish)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(trajectoryRoutes).
		Register(activityRoutes).
		Register(documentRoutes).
		Register(fileRoutes).
		Register(notificationRoutes).
		Register(eventRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
