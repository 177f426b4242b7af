package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/domain"
	"speed-trivia-service/internal/game"
	"speed-trivia-service/internal/i18n"
)

// PlayHandler bridges one websocket connection to one quiz session. The
// session runs server-side; the client only renders frames and sends
// answer picks.
type PlayHandler struct {
	service  *app.QuizService
	scores   app.ScoreStore
	feed     app.ScoreFeed
	options  game.Options
	upgrader websocket.Upgrader
}

func NewPlayHandler(service *app.QuizService, scores app.ScoreStore, feed app.ScoreFeed, options game.Options) *PlayHandler {
	return &PlayHandler{
		service: service,
		scores:  scores,
		feed:    feed,
		options: options,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	OptionIndex int `json:"optionIndex"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// playFrame is one session event dressed for the wire: the raw event plus
// the localized status line the client shows for it.
type playFrame struct {
	game.Event
	Text string `json:"text,omitempty"`
}

func frameText(lang domain.Language, ev game.Event) string {
	switch ev.Type {
	case game.EventPreloading:
		return i18n.T(lang, "loading")
	case game.EventNoQuestions:
		return i18n.T(lang, "no_questions")
	case game.EventCountdown:
		if ev.Countdown == 1 {
			return i18n.T(lang, "go")
		}
		return i18n.T(lang, "get_ready")
	case game.EventResult:
		if ev.Result != nil {
			return i18n.Td(lang, "score_line", map[string]any{
				"Score": ev.Result.Score,
				"Total": ev.Result.TotalQuestions,
			})
		}
		return i18n.T(lang, "quiz_complete")
	}
	return ""
}

// ServeWS upgrades the request, starts a session for the player, and pumps
// its event stream to the socket while reading answer picks back.
func (h *PlayHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quiz")
	playerName := r.URL.Query().Get("name")
	lang := domain.Language(r.URL.Query().Get("lang"))
	if playerName == "" || !lang.Valid() {
		http.Error(w, "missing name or unsupported lang", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, stop := context.WithCancel(r.Context())
	defer stop()

	session := h.service.StartSession(ctx, quizID, playerName, lang, h.options)
	go session.Run(ctx)

	submitter := app.NewSubmitter(h.scores, h.feed)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case ev, ok := <-session.Events():
				if !ok {
					return
				}
				if ev.Type == game.EventResult && ev.Result != nil {
					submitter.Submit(ctx, *ev.Result)
					if submitter.State() == app.SubmitFailed {
						submitter.Submit(ctx, *ev.Result)
					}
				}
				frame := playFrame{Event: ev, Text: frameText(lang, ev)}
				select {
				case send <- outboundMessage[any]{Type: string(ev.Type), Payload: frame}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			if err := session.Answer(ctx, payload.OptionIndex); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	stop()
	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}
