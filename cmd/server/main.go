package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/udhekryqi/udhekryqi-backend/internal/config"
	"github.com/udhekryqi/udhekryqi-backend/internal/database"
	"github.com/udhekryqi/udhekryqi-backend/internal/handlers"
	"github.com/udhekryqi/udhekryqi-backend/internal/middleware"
	"github.com/udhekryqi/udhekryqi-backend/internal/routes"
	"github.com/udhekryqi/udhekryqi-backend/internal/services"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.IsProduction() && cfg.JWTSecret == "your-secret-key-change-in-production" {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Connect to MongoDB
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		log.Printf("MongoDB URI: %s", maskURI(cfg.MongoURI))
	}
	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB: ", err)
	}
	defer database.Disconnect(client)

	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB indexes: %v", err)
	} else {
		log.Println("✅ MongoDB indexes ensured")
	}

	// Redis only backs the rate limiter; run without it if unset
	var rdb *redis.Client
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		rdb, err = database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("⚠️  WARNING: Redis unavailable, rate limiting disabled: %v", err)
			rdb = nil
		}
	} else {
		log.Println("REDIS_URI not set, rate limiting disabled")
	}

	// Cloudinary is optional; without it uploads return 500
	var cloudinarySvc *services.CloudinaryService
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinarySvc, err = services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("File uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. File uploads will not be available")
	}

	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName)

	userSvc := services.NewUserService(db)
	tokenSvc := services.NewTokenService(db)
	postSvc := services.NewPostService(db)
	subscriberSvc := services.NewSubscriberService(db)

	h := &routes.Handlers{
		Auth:          handlers.NewAuthHandler(userSvc, tokenSvc, postSvc, mailer, cfg),
		Posts:         handlers.NewPostHandler(postSvc, userSvc, subscriberSvc, mailer, cfg),
		Subscriptions: handlers.NewSubscriptionHandler(subscriberSvc, mailer, cfg),
		Upload:        handlers.NewUploadHandler(cloudinarySvc),
		Preview:       handlers.NewPreviewHandler(postSvc, cfg),
	}

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(rdb))

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.Setup(r, h, []byte(cfg.JWTSecret))

	log.Printf("🚀 Udhëkryqi backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

// maskURI hides the password portion of a connection string in logs.
func maskURI(uri string) string {
	if !strings.Contains(uri, "@") {
		return uri
	}
	parts := strings.SplitN(uri, "@", 2)
	if idx := strings.LastIndex(parts[0], ":"); idx > strings.Index(parts[0], "//")+1 {
		return parts[0][:idx] + ":***@" + parts[1]
	}
	return uri
}
