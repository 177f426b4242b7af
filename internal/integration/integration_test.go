package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun/migrate"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/auth"
	"speed-trivia-service/internal/blob"
	"speed-trivia-service/internal/domain"
	"speed-trivia-service/internal/infra/postgres"
	pgmigrations "speed-trivia-service/internal/infra/postgres/migrations"
	redisinfra "speed-trivia-service/internal/infra/redis"
)

func TestPlayAndScoreboardEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := postgres.Connect(pgURL)
	defer db.Close()
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	store := postgres.NewStore(db)
	quiz, err := store.CreateQuiz(ctx, domain.QuizRecord{
		ID:             "quiz-1",
		Title:          "Integration Night",
		GradientColor1: "#111111",
		LogoPath:       "quiz-logos/night.png",
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if _, err := store.CreateQuestion(ctx, quiz.ID, domain.Question{
		Prompt:        domain.LocalizedText{EN: "2+2?", AR: "٢+٢؟"},
		Options:       domain.LocalizedOptions{EN: []string{"3", "4", "5", "6"}, AR: []string{"٣", "٤", "٥", "٦"}},
		CorrectAnswer: 1,
	}); err != nil {
		t.Fatalf("create question: %v", err)
	}

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	// Cached reads over the pgx loader.
	cache := redisinfra.NewQuizCache(redisClient, postgres.NewQuizSource(pool), 5*time.Minute)
	service := app.NewQuizService(cache, blob.NewFSStore(t.TempDir(), "/media"))

	questions := service.QuestionsFor(ctx, quiz.ID)
	if len(questions) != 1 || questions[0].Prompt.EN != "2+2?" {
		t.Fatalf("unexpected questions %+v", questions)
	}
	cfg := service.ConfigFor(ctx, quiz.ID)
	if cfg == nil || cfg.Title != "Integration Night" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.LogoURL != "/media/quiz-logos/night.png" {
		t.Fatalf("unexpected logo url %q", cfg.LogoURL)
	}

	// Score submission fans out through redis pub/sub to the scoreboard.
	feed := redisinfra.NewScoreFeed(redisClient)
	board := app.NewScoreboard(store, feed)
	snapshots, cancel, err := board.Subscribe(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if snap := waitSnapshot(t, snapshots); len(snap) != 0 {
		t.Fatalf("expected empty scoreboard, got %+v", snap)
	}

	submitter := app.NewSubmitter(store, feed)
	submitter.Submit(ctx, domain.GameResult{
		PlayerName:     "Alice",
		Score:          1,
		TotalQuestions: 1,
		Time:           4_210,
		Language:       domain.LangEnglish,
		Timestamp:      time.Now(),
		QuizID:         quiz.ID,
	})
	if got := submitter.State(); got != app.SubmitSubmitted {
		t.Fatalf("expected Submitted, got %v", got)
	}

	deadline := time.After(10 * time.Second)
	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				t.Fatal("snapshot stream closed")
			}
			if len(snap) == 1 && snap[0].PlayerName == "Alice" {
				return
			}
		case <-deadline:
			t.Fatal("score never reached the scoreboard")
		}
	}
}

func TestOperatorRoundTrip(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()

	db := postgres.Connect(pgURL)
	defer db.Close()
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := postgres.NewStore(db)

	hash, err := auth.HashPassword("first-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := store.CreateOperator(ctx, "ops@example.com", hash); err != nil {
		t.Fatalf("create operator: %v", err)
	}

	authn := auth.NewAuthenticator(store, "integration-signing-key", time.Hour)
	token, err := authn.SignIn(ctx, "ops@example.com", "first-password")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if subject, err := authn.Subject(token); err != nil || subject != "ops@example.com" {
		t.Fatalf("verify: subject=%q err=%v", subject, err)
	}

	// useradd reruns rotate the password in place.
	hash2, err := auth.HashPassword("second-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := store.CreateOperator(ctx, "ops@example.com", hash2); err != nil {
		t.Fatalf("rotate operator: %v", err)
	}
	if _, err := authn.SignIn(ctx, "ops@example.com", "first-password"); err == nil {
		t.Fatal("old password still accepted")
	}
	if _, err := authn.SignIn(ctx, "ops@example.com", "second-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func waitSnapshot(t *testing.T, ch <-chan []domain.Score) []domain.Score {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("snapshot stream closed")
		}
		return snap
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "trivia", "POSTGRES_PASSWORD": "triviapass", "POSTGRES_DB": "triviadb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://trivia:triviapass@%s:%s/triviadb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
