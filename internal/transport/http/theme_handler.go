package http

import (
	"encoding/json"
	"net/http"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/domain"
)

// ThemeHandler serves the render parameters for the play and scoreboard
// pages. Unknown or missing quiz identifiers come back as the default
// skin, never an error.
type ThemeHandler struct {
	service *app.QuizService
}

func NewThemeHandler(service *app.QuizService) *ThemeHandler {
	return &ThemeHandler{service: service}
}

type themeResponse struct {
	Theme      domain.Theme `json:"theme"`
	Scoreboard domain.Theme `json:"scoreboard"`
}

func (h *ThemeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg := h.service.ConfigFor(r.Context(), r.URL.Query().Get("quiz"))
	resp := themeResponse{
		Theme:      domain.ThemeFor(cfg),
		Scoreboard: domain.ScoreboardThemeFor(cfg),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
