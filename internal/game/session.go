package game

import (
	"context"
	"math/rand"
	"time"

	"speed-trivia-service/internal/domain"
)

// State identifies the phase of a quiz session.
type State int

const (
	StatePreloading State = iota
	StateCountdown
	StateActive
	StateComplete
)

// EventType tags frames emitted by a running session.
type EventType string

const (
	EventPreloading  EventType = "preloading"
	EventNoQuestions EventType = "noQuestions"
	EventCountdown   EventType = "countdown"
	EventQuestion    EventType = "question"
	EventTick        EventType = "tick"
	EventResult      EventType = "result"
)

// QuestionView is the locale-resolved frame shown for one question.
type QuestionView struct {
	Index   int      `json:"index"`
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// Event is one frame on the session's event stream.
type Event struct {
	Type      EventType          `json:"type"`
	Countdown int                `json:"countdown,omitempty"`
	Question  *QuestionView      `json:"question,omitempty"`
	Elapsed   int64              `json:"elapsed,omitempty"`
	Result    *domain.GameResult `json:"result,omitempty"`
}

// Options tunes session timing. Zero values select the production defaults;
// tests shrink the intervals instead of faking timers.
type Options struct {
	PreloadDelay      time.Duration // minimum time spent in Preloading
	CountdownFrom     int           // first countdown value
	CountdownInterval time.Duration // delay between countdown values
	TickInterval      time.Duration // elapsed-time display tick
	Rand              *rand.Rand    // permutation source
	Now               func() time.Time
}

func (o Options) withDefaults() Options {
	if o.PreloadDelay <= 0 {
		o.PreloadDelay = 500 * time.Millisecond
	}
	if o.CountdownFrom <= 0 {
		o.CountdownFrom = 3
	}
	if o.CountdownInterval <= 0 {
		o.CountdownInterval = time.Second
	}
	if o.TickInterval <= 0 {
		o.TickInterval = 10 * time.Millisecond
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type answerMsg struct {
	index int
	reply chan error
}

// Session owns one player's run from countdown to result. All state is
// confined to the goroutine running Run; callers interact through Answer
// and the event stream.
type Session struct {
	playerName string
	quizID     string
	lang       domain.Language
	questions  []ShuffledQuestion
	opts       Options

	answers chan answerMsg
	events  chan Event
	done    chan struct{}
}

// NewSession shuffles the question order and each question's options for
// the chosen locale and returns a session ready to Run. Both orders are
// fixed here and never re-derived.
func NewSession(playerName, quizID string, lang domain.Language, questions []domain.Question, opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		playerName: playerName,
		quizID:     quizID,
		lang:       lang,
		questions:  ShuffleQuestions(opts.Rand, questions, lang),
		opts:       opts,
		answers:    make(chan answerMsg),
		events:     make(chan Event, 64),
		done:       make(chan struct{}),
	}
}

// Questions exposes the fixed per-session question views.
func (s *Session) Questions() []ShuffledQuestion {
	return s.questions
}

// Events returns the session's frame stream. The channel is closed when the
// session completes or is torn down.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Answer submits the player's chosen option index for the current question.
// It blocks until the session applies the submission or tears down.
func (s *Session) Answer(ctx context.Context, optionIndex int) error {
	msg := answerMsg{index: optionIndex, reply: make(chan error, 1)}
	select {
	case s.answers <- msg:
	case <-s.done:
		return domain.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-msg.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the session through Preloading, Countdown, Active and Complete.
// It returns when the session completes or ctx is canceled; either way all
// timers are stopped and the event channel is closed.
func (s *Session) Run(ctx context.Context) {
	defer close(s.done)
	defer close(s.events)

	if !s.preload(ctx) {
		return
	}
	start, ok := s.countdown(ctx)
	if !ok {
		return
	}
	s.active(ctx, start)
}

// preload holds for the minimum display delay, then either proceeds or
// parks in the no-questions dead end until teardown.
func (s *Session) preload(ctx context.Context) bool {
	s.emit(ctx, Event{Type: EventPreloading})

	delay := time.NewTimer(s.opts.PreloadDelay)
	defer delay.Stop()
	for {
		select {
		case <-delay.C:
			if len(s.questions) == 0 {
				s.emit(ctx, Event{Type: EventNoQuestions})
				s.park(ctx)
				return false
			}
			return true
		case msg := <-s.answers:
			msg.reply <- domain.ErrSessionNotActive
		case <-ctx.Done():
			return false
		}
	}
}

// countdown emits CountdownFrom..1 one interval apart, then records the
// authoritative start instant.
func (s *Session) countdown(ctx context.Context) (time.Time, bool) {
	value := s.opts.CountdownFrom
	s.emit(ctx, Event{Type: EventCountdown, Countdown: value})

	ticker := time.NewTicker(s.opts.CountdownInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			value--
			if value <= 0 {
				return s.opts.Now(), true
			}
			s.emit(ctx, Event{Type: EventCountdown, Countdown: value})
		case msg := <-s.answers:
			msg.reply <- domain.ErrSessionNotActive
		case <-ctx.Done():
			return time.Time{}, false
		}
	}
}

func (s *Session) active(ctx context.Context, start time.Time) {
	current := 0
	score := 0
	s.emit(ctx, Event{Type: EventQuestion, Question: s.view(current)})

	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			// Display only; scoring uses the start/end instants below.
			s.tryEmit(Event{Type: EventTick, Elapsed: s.opts.Now().Sub(start).Milliseconds()})
		case msg := <-s.answers:
			if msg.index == s.questions[current].CorrectIndex {
				score++
			}
			msg.reply <- nil
			if current < len(s.questions)-1 {
				current++
				s.emit(ctx, Event{Type: EventQuestion, Question: s.view(current)})
				continue
			}
			end := s.opts.Now()
			result := domain.GameResult{
				PlayerName:     s.playerName,
				Score:          score,
				TotalQuestions: len(s.questions),
				Time:           end.Sub(start).Milliseconds(),
				Language:       s.lang,
				Timestamp:      end,
				QuizID:         s.quizID,
			}
			s.emit(ctx, Event{Type: EventResult, Result: &result})
			return
		case <-ctx.Done():
			return
		}
	}
}

// park keeps the session answering teardown-safe after the no-questions
// dead end; only administrator intervention (a new session) recovers.
func (s *Session) park(ctx context.Context) {
	for {
		select {
		case msg := <-s.answers:
			msg.reply <- domain.ErrSessionNotActive
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) view(i int) *QuestionView {
	q := s.questions[i]
	return &QuestionView{
		Index:   i,
		Total:   len(s.questions),
		Prompt:  q.Question.Prompt.Get(s.lang),
		Options: q.Options,
	}
}

func (s *Session) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}

// tryEmit coalesces display ticks: a tick is queued only when nothing else
// is pending, so a lagging consumer sees the freshest elapsed value and the
// buffer never fills with stale ticks.
func (s *Session) tryEmit(ev Event) {
	if len(s.events) > 0 {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}
