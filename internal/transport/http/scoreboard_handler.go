package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/domain"
	"speed-trivia-service/internal/i18n"
)

// ScoreboardHandler streams live top-10 snapshots for one quiz.
type ScoreboardHandler struct {
	board    *app.Scoreboard
	upgrader websocket.Upgrader
}

func NewScoreboardHandler(board *app.Scoreboard) *ScoreboardHandler {
	return &ScoreboardHandler{
		board: board,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type scoreboardEntry struct {
	Rank       int    `json:"rank"`
	Marker     string `json:"marker"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Time       string `json:"time"`
	Language   string `json:"language"`
}

type scoreboardPayload struct {
	Title   string            `json:"title"`
	Empty   string            `json:"empty,omitempty"`
	Entries []scoreboardEntry `json:"entries"`
}

// rankMarker decorates the podium ranks; everyone else gets "#N".
func rankMarker(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return "#" + strconv.Itoa(rank)
}

func scoreboardFrame(lang domain.Language, scores []domain.Score) scoreboardPayload {
	payload := scoreboardPayload{
		Title:   i18n.T(lang, "scoreboard_title"),
		Entries: make([]scoreboardEntry, 0, len(scores)),
	}
	if len(scores) == 0 {
		payload.Empty = i18n.T(lang, "scoreboard_empty")
	}
	for i, s := range scores {
		payload.Entries = append(payload.Entries, scoreboardEntry{
			Rank:       i + 1,
			Marker:     rankMarker(i + 1),
			PlayerName: s.PlayerName,
			Score:      s.Score,
			Total:      s.TotalQuestions,
			Time:       domain.FormatTime(s.Time),
			Language:   s.Language,
		})
	}
	return payload
}

// ServeWS upgrades the request and pushes a snapshot immediately, then a
// fresh one on every score change, until the client disconnects.
func (h *ScoreboardHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quiz")
	lang := domain.Language(r.URL.Query().Get("lang"))
	if !lang.Valid() {
		lang = domain.LangEnglish
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	snapshots, cancel, err := h.board.Subscribe(r.Context(), quizID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()

	// Reader goroutine: we never expect inbound frames, but reading is how
	// gorilla surfaces the close handshake.
	readerGone := make(chan struct{})
	go func() {
		defer close(readerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case scores, ok := <-snapshots:
			if !ok {
				return
			}
			frame := outboundMessage[scoreboardPayload]{Type: "scoreboard", Payload: scoreboardFrame(lang, scores)}
			if err := conn.WriteJSON(frame); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-readerGone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
