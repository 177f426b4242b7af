package domain

// Documented skin defaults, applied whenever a quiz has no stored config or
// a field is empty.
const (
	DefaultTitle              = "Speed Trivia"
	DefaultGradientColor1     = "#667eea"
	DefaultGradientColor2     = "#764ba2"
	DefaultButtonColorArabic  = "#10b981"
	DefaultButtonColorEnglish = "#3b82f6"
)

// Theme is the set of render parameters derived from a quiz skin. Empty
// image URLs mean the element is not rendered.
type Theme struct {
	Title              string `json:"title"`
	GradientColor1     string `json:"gradientColor1"`
	GradientColor2     string `json:"gradientColor2"`
	BackgroundImageURL string `json:"backgroundImageUrl,omitempty"`
	LogoURL            string `json:"logoUrl,omitempty"`
	ButtonColorArabic  string `json:"buttonColorArabic"`
	ButtonColorEnglish string `json:"buttonColorEnglish"`
}

// ThemeFor derives render parameters for the play flow. A nil config yields
// the documented defaults; callers never need to nil-check.
func ThemeFor(cfg *QuizConfig) Theme {
	theme := Theme{
		Title:              DefaultTitle,
		GradientColor1:     DefaultGradientColor1,
		GradientColor2:     DefaultGradientColor2,
		ButtonColorArabic:  DefaultButtonColorArabic,
		ButtonColorEnglish: DefaultButtonColorEnglish,
	}
	if cfg == nil {
		return theme
	}
	if cfg.Title != "" {
		theme.Title = cfg.Title
	}
	if cfg.GradientColor1 != "" {
		theme.GradientColor1 = cfg.GradientColor1
	}
	if cfg.GradientColor2 != "" {
		theme.GradientColor2 = cfg.GradientColor2
	}
	if cfg.ButtonColorArabic != "" {
		theme.ButtonColorArabic = cfg.ButtonColorArabic
	}
	if cfg.ButtonColorEnglish != "" {
		theme.ButtonColorEnglish = cfg.ButtonColorEnglish
	}
	theme.BackgroundImageURL = cfg.BackgroundImageURL
	theme.LogoURL = cfg.LogoURL
	return theme
}

// ScoreboardThemeFor derives render parameters for the scoreboard view,
// which has its own background fields but shares the quiz logo.
func ScoreboardThemeFor(cfg *QuizConfig) Theme {
	theme := ThemeFor(cfg)
	if cfg == nil {
		return theme
	}
	theme.BackgroundImageURL = cfg.ScoreboardBackgroundImageURL
	if cfg.ScoreboardGradientColor1 != "" {
		theme.GradientColor1 = cfg.ScoreboardGradientColor1
	} else {
		theme.GradientColor1 = DefaultGradientColor1
	}
	if cfg.ScoreboardGradientColor2 != "" {
		theme.GradientColor2 = cfg.ScoreboardGradientColor2
	} else {
		theme.GradientColor2 = DefaultGradientColor2
	}
	return theme
}
