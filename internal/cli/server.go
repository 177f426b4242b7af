package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/auth"
	"speed-trivia-service/internal/blob"
	"speed-trivia-service/internal/config"
	"speed-trivia-service/internal/game"
	"speed-trivia-service/internal/infra/memory"
	"speed-trivia-service/internal/infra/postgres"
	redisinfra "speed-trivia-service/internal/infra/redis"
	transport "speed-trivia-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

// runServer wires the dependency graph. Postgres and redis are both
// optional: without postgres everything lives in memory (useful for demos
// and tests), without redis the cache and score feed stay in-process.
func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	cacheTTL := config.TTLDuration(cfg.Cache.TTL, 10*time.Minute)

	memStore := memory.NewStore()
	var (
		source app.QuizSource    = memStore
		scores app.ScoreStore    = memStore
		admin  app.AdminStore    = memStore
		ops    app.OperatorStore = memStore
	)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		source = postgres.NewQuizSource(pool)

		db := postgres.Connect(cfg.Postgres.URL)
		defer db.Close()
		pgStore := postgres.NewStore(db)
		scores = pgStore
		admin = pgStore
		ops = pgStore
	}

	var cache transport.CacheInvalidator
	if redisClient != nil {
		c := redisinfra.NewQuizCache(redisClient, source, cacheTTL)
		source = c
		cache = c
	} else {
		c := memory.NewQuizCache(source, cacheTTL)
		source = c
		cache = c
	}

	var feed app.ScoreFeed
	if redisClient != nil {
		feed = redisinfra.NewScoreFeed(redisClient)
	} else {
		feed = memory.NewScoreFeed()
	}

	mediaRoot := cfg.Media.Root
	if mediaRoot == "" {
		mediaRoot = "media"
	}
	baseURL := cfg.Media.BaseURL
	if baseURL == "" {
		baseURL = "/media"
	}
	var blobs blob.Store
	fsStore := blob.NewFSStore(mediaRoot, baseURL)
	blobs = fsStore
	serveRoot := fsStore.Root()
	if cfg.Media.S3.Bucket != "" {
		s3Store, err := blob.NewS3Store(ctx, cfg.Media.S3.Bucket, cfg.Media.S3.PublicURL)
		if err != nil {
			return err
		}
		blobs = s3Store
		serveRoot = ""
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		log.Printf("auth.jwt_secret not configured; admin logins will not survive restarts")
		secret = auth.RandomSecret()
	}
	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, 12*time.Hour)
	authn := auth.NewAuthenticator(ops, secret, tokenTTL)

	service := app.NewQuizService(source, blobs)
	mux := transport.NewRouter(transport.RouterConfig{
		Service:    service,
		Scoreboard: app.NewScoreboard(scores, feed),
		Scores:     scores,
		Feed:       feed,
		Admin:      admin,
		Auth:       authn,
		Blobs:      blobs,
		Cache:      cache,
		MediaRoot:  serveRoot,
		Session:    game.Options{},
	})

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
