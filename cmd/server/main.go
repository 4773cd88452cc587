package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/choreosync/api/docs"
	"github.com/choreosync/api/internal/auth"
	"github.com/choreosync/api/internal/client"
	"github.com/choreosync/api/internal/config"
	"github.com/choreosync/api/internal/cutplan"
	"github.com/choreosync/api/internal/handler"
	"github.com/choreosync/api/internal/middleware"
	"github.com/choreosync/api/internal/model"
	"github.com/choreosync/api/internal/service"
	"github.com/choreosync/api/internal/store"
	ws "github.com/choreosync/api/internal/websocket"
	"github.com/choreosync/api/internal/worker"
)

// @title          ChoreoSync API
// @version        1.0
// @description    Backend API for ChoreoSync: song analysis, section tagging and competition cut planning.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Server.ApiDomain != "" {
		docs.SwaggerInfo.Host = cfg.Server.ApiDomain
		docs.SwaggerInfo.Schemes = []string{"https"}
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
		docs.SwaggerInfo.Schemes = []string{"http"}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Redis not available: %v", err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()

	validate := validator.New()

	hub := ws.NewHub()
	go hub.Run()

	// R2 is optional; without it uploads are not stored and downloads return 503
	var storage client.StorageClient
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2Client, err := client.NewR2Client(&cfg.R2)
		if err != nil {
			log.Printf("Warning: R2 client not initialized: %v", err)
		} else {
			storage = r2Client
		}
	} else {
		log.Println("Info: R2 storage not configured")
	}

	workerClient := client.NewWorkerClient(&cfg.Worker, cfg.Webhook.Secret)
	if !workerClient.IsConfigured() {
		log.Println("Warning: worker URLs not configured, analyze/generate will fail")
	}

	// Initialize Zitadel JWKS verifier (optional - falls back to legacy JWT)
	var jwksVerifier *auth.JWKSVerifier
	if cfg.Zitadel.Issuer != "" {
		jwksVerifier, err = auth.NewJWKSVerifier(&cfg.Zitadel)
		if err != nil {
			log.Printf("Warning: JWKS verifier not initialized: %v", err)
		}
	}

	engineOpts := engineOptions(&cfg.Engine)
	songStore := store.NewSongStore(redisClient)
	projectStore := store.NewProjectStore(redisClient)

	songService := service.NewSongService(songStore, projectStore, storage, engineOpts, cfg.Preview.CacheTTL)
	projectService := service.NewProjectService(projectStore, songService)
	jobService := service.NewJobService(songStore, workerClient, asynqClient, engineOpts)
	downloadService := service.NewDownloadService(songStore, storage)
	webhookService := service.NewWebhookService(cfg.Webhook.Secret, asynqClient)

	songHandler := handler.NewSongHandler(songService, validate)
	projectHandler := handler.NewProjectHandler(projectService, validate)
	jobHandler := handler.NewJobHandler(jobService)
	downloadHandler := handler.NewDownloadHandler(downloadService, validate)
	workerHandler := handler.NewWorkerHandler(jobService, webhookService, validate)

	var verifier auth.TokenVerifier
	if jwksVerifier != nil {
		verifier = jwksVerifier
	}
	authHandler := handler.NewAuthHandler(verifier, cfg.JWT.Secret)

	var apiAuthMiddleware fiber.Handler
	if cfg.Gateway.Enabled {
		log.Println("Gateway auth mode: reading identity from X-User-* headers")
		apiAuthMiddleware = middleware.GatewayAuthMiddleware()
	} else {
		var authMiddleware *middleware.AuthMiddleware
		switch {
		case verifier != nil && cfg.JWT.Secret != "":
			authMiddleware = middleware.NewAuthMiddlewareWithFallback(verifier, cfg.JWT.Secret)
		case verifier != nil:
			authMiddleware = middleware.NewAuthMiddleware(verifier)
		default:
			authMiddleware = middleware.NewLegacyAuthMiddleware(cfg.JWT.Secret)
		}
		apiAuthMiddleware = authMiddleware.Authenticate()
	}
	rateLimiter := middleware.NewRateLimiter(redisClient)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    55 * 1024 * 1024, // upload limit plus multipart overhead
	})

	app.Use(recover.New())
	isDebug := strings.EqualFold(cfg.Server.LogLevel, "debug")
	logFormat := "[${time}] ${status} - ${latency} ${method} ${path}\n"
	if isDebug {
		logFormat = "[${time}] ${status} - ${latency} ${method} ${path} ${queryParams} ${reqHeaders}\n"
		log.Println("Debug logging enabled")
	}
	app.Use(logger.New(logger.Config{
		Format: logFormat,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"timestamp": time.Now().Unix(),
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"redis":   redisClient.Ping(c.Context()).Err() == nil,
				"r2":      storage != nil,
				"workers": workerClient.IsConfigured(),
				"webhook": cfg.Webhook.Secret != "",
				"auth":    verifier != nil || cfg.JWT.Secret != "",
			},
		})
	})

	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	// ForwardAuth verification endpoint (internal, called by Traefik)
	app.Get("/auth/verify", authHandler.Verify)

	// Worker callbacks, authenticated by the shared secret
	app.Post("/api/webhook/worker", workerHandler.Webhook)
	internal := app.Group("/internal/worker", middleware.WorkerSecret(webhookService))
	internal.Post("/songs/:songId/analysis", workerHandler.AnalysisResult)
	internal.Post("/songs/:songId/cut", workerHandler.CutResult)

	api := app.Group("/api", apiAuthMiddleware)

	projects := api.Group("/projects")
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:projectId", projectHandler.Get)
	projects.Put("/:projectId", projectHandler.Rename)
	projects.Delete("/:projectId", projectHandler.Delete)
	projects.Get("/:projectId/songs", projectHandler.Songs)

	songs := api.Group("/songs")
	songs.Post("/", rateLimiter.UploadLimit(cfg.RateLimit.UploadPerHour), songHandler.Upload)
	songs.Get("/", songHandler.List)
	songs.Get("/:songId", songHandler.Get)
	songs.Delete("/:songId", songHandler.Delete)
	songs.Put("/:songId/target", songHandler.SetTarget)
	songs.Put("/:songId/tags", songHandler.SetTags)
	songs.Post("/:songId/preview", rateLimiter.PreviewLimit(cfg.RateLimit.PreviewPerMin), songHandler.Preview)
	songs.Post("/:songId/analyze", rateLimiter.AnalyzeLimit(cfg.RateLimit.AnalyzePerHour), jobHandler.Analyze)
	songs.Post("/:songId/generate", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour), jobHandler.Generate)
	songs.Get("/:songId/jobs/:kind", jobHandler.Status)
	songs.Get("/:songId/download", downloadHandler.Get)

	api.Post("/downloads/batch", downloadHandler.Batch)

	app.Use("/ws", middleware.WebSocketUpgrade())

	// Subscribers must own the song
	app.Get("/ws/songs/:songId", apiAuthMiddleware, songHandler.RequireOwner, websocket.New(func(c *websocket.Conn) {
		hub.HandleConnection(c, c.Params("songId"))
	}))

	go startWorkerServer(cfg, redisOpt, songStore, jobService, hub)
	go startScheduler(cfg, redisOpt)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func engineOptions(cfg *config.EngineConfig) cutplan.Options {
	return cutplan.Options{
		MaxTempoPct:    cfg.MaxTempoPct,
		CrossfadeBeats: cfg.CrossfadeBeats,
		FloorBeats:     cfg.FloorBeats,
		MinCrossfade:   cfg.MinCrossfade,
		MaxCrossfade:   cfg.MaxCrossfade,
	}
}

func asynqLogLevel(level string) asynq.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return asynq.DebugLevel
	case "warn":
		return asynq.WarnLevel
	case "error":
		return asynq.ErrorLevel
	}
	return asynq.InfoLevel
}

func startWorkerServer(
	cfg *config.Config,
	redisOpt asynq.RedisClientOpt,
	songStore *store.SongStore,
	jobService *service.JobService,
	hub *ws.Hub,
) {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"notify":      6,
			"maintenance": 1,
		},
		LogLevel: asynqLogLevel(cfg.Server.LogLevel),
	})

	notifyWorker := worker.NewNotifyWorker(songStore, hub)
	sweepWorker := worker.NewSweepWorker(jobService, cfg.Worker.JobTimeout)

	mux := asynq.NewServeMux()
	mux.HandleFunc(model.TaskTypeNotify, notifyWorker.ProcessTask)
	mux.HandleFunc(model.TaskTypeSweep, sweepWorker.ProcessTask)

	if err := srv.Run(mux); err != nil {
		log.Printf("Asynq worker error: %v", err)
	}
}

// startScheduler enqueues the stale-job sweep on a fixed interval
func startScheduler(cfg *config.Config, redisOpt asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		LogLevel: asynqLogLevel(cfg.Server.LogLevel),
	})

	spec := "@every " + cfg.Worker.SweepInterval.String()
	if _, err := scheduler.Register(spec, asynq.NewTask(model.TaskTypeSweep, nil),
		asynq.Queue("maintenance"),
		asynq.MaxRetry(0),
		asynq.Timeout(cfg.Worker.SweepInterval),
	); err != nil {
		log.Printf("Failed to register sweep task: %v", err)
		return
	}

	log.Printf("Stale job sweep scheduled %s (job timeout %s)", spec, cfg.Worker.JobTimeout)
	if err := scheduler.Run(); err != nil {
		log.Printf("Asynq scheduler error: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "SERVICE_ERROR",
			"message": message,
		},
	})
}
