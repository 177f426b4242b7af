// Package http wires the service's public surface: the player and
// scoreboard websockets, the theme endpoint, static media, and the admin
// REST API.
package http

import (
	"net/http"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/auth"
	"speed-trivia-service/internal/blob"
	"speed-trivia-service/internal/game"
)

// RouterConfig collects the collaborators the routes need.
type RouterConfig struct {
	Service    *app.QuizService
	Scoreboard *app.Scoreboard
	Scores     app.ScoreStore
	Feed       app.ScoreFeed
	Admin      app.AdminStore
	Auth       *auth.Authenticator
	Blobs      blob.Store
	Cache      CacheInvalidator // optional
	MediaRoot  string           // serve /media/ from here when non-empty
	Session    game.Options
}

// NewRouter builds the full route table.
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("GET /api/theme", NewThemeHandler(cfg.Service))
	mux.HandleFunc("/ws/play", NewPlayHandler(cfg.Service, cfg.Scores, cfg.Feed, cfg.Session).ServeWS)
	mux.HandleFunc("/ws/scoreboard", NewScoreboardHandler(cfg.Scoreboard).ServeWS)

	if cfg.MediaRoot != "" {
		mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.MediaRoot))))
	}

	NewAdminHandler(cfg.Admin, cfg.Auth, cfg.Blobs, cfg.Cache).Register(mux)

	return mux
}
