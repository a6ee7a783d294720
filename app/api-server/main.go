package main

import (
	"context"
	"log"
	"net/smtp"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hireboard/api/config"
	"github.com/hireboard/api/internal/api/handlers"
	"github.com/hireboard/api/internal/api/middleware"
	"github.com/hireboard/api/internal/api/routes"
	"github.com/hireboard/api/internal/cache"
	"github.com/hireboard/api/internal/events"
	"github.com/hireboard/api/internal/logger"
	"github.com/hireboard/api/internal/notify"
	"github.com/hireboard/api/internal/providers/llm"
	mongorepo "github.com/hireboard/api/internal/repositories/mongo"
	pgrepo "github.com/hireboard/api/internal/repositories/postgres"
	"github.com/hireboard/api/internal/services"
	"github.com/hireboard/api/internal/storage"
	"github.com/hireboard/api/internal/workers"
)

func main() {
	_ = godotenv.Load()

	lg := logger.New()
	ctx := context.Background()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	db, err := config.InitPostgres()
	if err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	lg.Info("PostgreSQL connected")

	rdb, err := config.InitRedis()
	if err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	lg.Info("Redis connected")

	mdb, err := config.InitMongo()
	if err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	lg.Info("MongoDB connected")

	// Optional collaborators: resume storage, analysis, embeddings, mail.
	var uploader storage.Uploader
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		store, err := storage.NewGCSStore(ctx, bucket)
		if err != nil {
			log.Fatalf("GCS init error: %v", err)
		}
		defer store.Close()
		uploader = store
	} else {
		lg.Warn("GCS_BUCKET not set; resume uploads disabled")
	}

	var provider llm.Provider
	if project := os.Getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		location := os.Getenv("GOOGLE_CLOUD_LOCATION")
		if location == "" {
			location = "us-central1"
		}
		p, err := llm.NewVertexGemini(ctx, project, location, os.Getenv("SCREENING_MODEL"))
		if err != nil {
			log.Fatalf("Vertex init error: %v", err)
		}
		defer p.Close()
		provider = p
	} else {
		lg.Warn("GOOGLE_CLOUD_PROJECT not set; resume screening disabled")
	}

	var embedder llm.Embedder
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		e, err := llm.NewGeminiEmbedder(ctx, key, os.Getenv("EMBEDDING_MODEL"))
		if err != nil {
			log.Fatalf("Embedder init error: %v", err)
		}
		defer e.Close()
		embedder = e
	}

	var notifier notify.Notifier
	if addr := os.Getenv("SMTP_ADDR"); addr != "" {
		from := os.Getenv("SMTP_FROM")
		var auth smtp.Auth
		if user := os.Getenv("SMTP_USER"); user != "" {
			host := addr
			if i := strings.IndexByte(addr, ':'); i >= 0 {
				host = addr[:i]
			}
			auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
		}
		notifier = notify.NewSMTPNotifier(addr, from, auth)
	} else {
		notifier = &notify.LogNotifier{Log: lg}
	}

	// Repositories
	appRepo := pgrepo.NewApplicationRepo(db)
	tagRepo := pgrepo.NewTagRepo(db)
	jobRepo := pgrepo.NewJobRepo(db)
	userRepo := pgrepo.NewUserRepo(db)
	alertRepo := pgrepo.NewJobAlertRepo(db)
	eventRepo := mongorepo.NewStatusEventRepo(mdb)

	// Shared infrastructure
	c := cache.NewRedisCache(rdb)
	pub := events.NewRedisPublisher(rdb)
	queue := events.NewRedisScreeningQueue(rdb)

	// Services
	alertSvc := services.NewAlertService(alertRepo, notifier, lg)
	appSvc := services.NewApplicationService(appRepo, jobRepo, eventRepo, notifier, c, pub, queue, lg)
	tagSvc := services.NewTagService(tagRepo, appRepo)
	boardSvc := services.NewBoardService(appRepo, c)
	screenSvc := services.NewScreeningService(appRepo, jobRepo, provider, embedder, c, lg)
	jobSvc := services.NewJobService(jobRepo, alertSvc)
	authSvc := services.NewAuthService(userRepo, jwtSecret, 0)

	// Background screening consumers
	pool := &workers.ScreeningWorkerPool{
		Redis:     rdb,
		Screening: screenSvc,
		Logger:    lg,
	}
	if err := pool.Start(ctx); err != nil {
		log.Fatalf("screening worker init error: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		JWTSecret:   jwtSecret,
		Auth:        handlers.NewAuthHandler(authSvc),
		Job:         handlers.NewJobHandler(jobSvc),
		Intake:      handlers.NewIntakeHandler(appSvc, uploader),
		Application: handlers.NewApplicationHandler(appSvc, screenSvc),
		Tag:         handlers.NewTagHandler(tagSvc),
		Board:       handlers.NewBoardHandler(boardSvc),
		Alert:       handlers.NewAlertHandler(alertSvc),
		WS:          handlers.NewWSHandler(rdb, lg),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
