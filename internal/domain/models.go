package domain

import "time"

// Language selects one of the two supported locales.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

// Valid reports whether l is one of the supported locales.
func (l Language) Valid() bool {
	return l == LangEnglish || l == LangArabic
}

// LocalizedText holds one string per supported locale.
type LocalizedText struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Get returns the text for the given locale, falling back to English.
func (t LocalizedText) Get(lang Language) string {
	if lang == LangArabic {
		return t.AR
	}
	return t.EN
}

// LocalizedOptions holds the option list per locale. The lists are parallel
// by position across locales.
type LocalizedOptions struct {
	EN []string `json:"en"`
	AR []string `json:"ar"`
}

// Get returns the option list for the given locale, falling back to English.
func (o LocalizedOptions) Get(lang Language) []string {
	if lang == LangArabic {
		return o.AR
	}
	return o.EN
}

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is a bilingual multiple-choice question. CorrectAnswer indexes the
// canonical (unshuffled) option list and is shared by both locales.
type Question struct {
	ID            int              `json:"id"`
	Prompt        LocalizedText    `json:"question"`
	Options       LocalizedOptions `json:"options"`
	CorrectAnswer int              `json:"correctAnswer"`
}

// GameResult is the immutable outcome of one completed session.
type GameResult struct {
	PlayerName     string    `json:"playerName"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Time           int64     `json:"time"` // milliseconds
	Language       Language  `json:"language"`
	Timestamp      time.Time `json:"timestamp"`
	QuizID         string    `json:"quizId,omitempty"`
}

// QuizRecord is the stored form of a quiz skin. Image fields hold storage
// paths, not URLs; resolution to public URLs happens when a QuizConfig is
// assembled for the player-facing flow.
type QuizRecord struct {
	ID                            string    `json:"id"`
	Title                         string    `json:"title"`
	BackgroundImagePath           string    `json:"background_image_path,omitempty"`
	GradientColor1                string    `json:"gradient_color_1"`
	GradientColor2                string    `json:"gradient_color_2"`
	LogoPath                      string    `json:"logo_path,omitempty"`
	ButtonColorArabic             string    `json:"button_color_arabic"`
	ButtonColorEnglish            string    `json:"button_color_english"`
	ScoreboardBackgroundImagePath string    `json:"scoreboard_background_image_path,omitempty"`
	ScoreboardGradientColor1      string    `json:"scoreboard_gradient_color_1"`
	ScoreboardGradientColor2      string    `json:"scoreboard_gradient_color_2"`
	CreatedAt                     time.Time `json:"created_at"`
}

// QuizConfig is the player-facing view of a quiz skin with image references
// already resolved to public URLs. Empty URL fields mean "no image".
type QuizConfig struct {
	ID                           string `json:"id"`
	Title                        string `json:"title"`
	BackgroundImageURL           string `json:"backgroundImageUrl,omitempty"`
	GradientColor1               string `json:"gradientColor1"`
	GradientColor2               string `json:"gradientColor2"`
	LogoURL                      string `json:"logoUrl,omitempty"`
	ButtonColorArabic            string `json:"buttonColorArabic"`
	ButtonColorEnglish           string `json:"buttonColorEnglish"`
	ScoreboardBackgroundImageURL string `json:"scoreboardBackgroundImageUrl,omitempty"`
	ScoreboardGradientColor1     string `json:"scoreboardGradientColor1"`
	ScoreboardGradientColor2     string `json:"scoreboardGradientColor2"`
}

// Score is one leaderboard row. Rows are append-only from the player flow;
// the admin flow removes them only by deleting the whole quiz.
type Score struct {
	ID             int64     `json:"id"`
	QuizID         string    `json:"quiz_id"`
	PlayerName     string    `json:"player_name"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Time           int64     `json:"time"` // milliseconds
	Language       string    `json:"language"`
	CreatedAt      time.Time `json:"created_at"`
}

// Operator is an admin console account.
type Operator struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
