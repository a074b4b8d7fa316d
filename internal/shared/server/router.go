package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/documents"
	"recruit-backend/internal/ingest"
	"recruit-backend/internal/llm/openai"
	"recruit-backend/internal/positions"
	"recruit-backend/internal/search"
	"recruit-backend/internal/services/health"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
	"recruit-backend/internal/shared/storage/db"
	"recruit-backend/internal/shared/storage/object"
	localstore "recruit-backend/internal/shared/storage/object/local"
	s3store "recruit-backend/internal/shared/storage/object/s3"
	"recruit-backend/internal/synthesis"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.RateLimitGroupIngest: {Rate: 0.5, Burst: 5},
				middleware.RateLimitGroupSearch: {Rate: 10, Burst: 30},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	// Dependencies
	store := newObjectStore(cfg)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var docRepo documents.Repo
	var posRepo positions.Repo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
		posRepo = &positions.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
		posRepo = positions.NewMemoryRepo()
	}

	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.EmbeddingModel, cfg.EmbeddingDim)
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}

	synthSvc := synthesis.NewService(posRepo, client)
	ingestHandler := ingest.NewHandler(ingest.NewService(docRepo, store, client, synthSvc))
	searchHandler := search.NewHandler(search.NewService(docRepo, client))
	healthSvc := health.NewService(sqlDB)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status(c.Request.Context()))
	})
	position := api.Group("/positions/:positionId")
	ingestHandler.RegisterRoutes(position)
	searchHandler.RegisterRoutes(position)

	r.GET("/metrics", metrics.Handler())

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case strings.HasSuffix(path, "/documents") && c.Request.Method == http.MethodPost:
		return middleware.RateLimitGroupIngest
	case strings.HasSuffix(path, "/search"):
		return middleware.RateLimitGroupSearch
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
