package i18n

import (
	"testing"

	"speed-trivia-service/internal/domain"
)

func TestTranslatesBothLanguages(t *testing.T) {
	if got := T(domain.LangEnglish, "get_ready"); got != "Get Ready!" {
		t.Fatalf("en: got %q", got)
	}
	if got := T(domain.LangArabic, "get_ready"); got != "استعد!" {
		t.Fatalf("ar: got %q", got)
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	if got := T(domain.Language("fr"), "loading"); got != "Loading questions..." {
		t.Fatalf("got %q", got)
	}
}

func TestMissingIDReturnsID(t *testing.T) {
	if got := T(domain.LangEnglish, "no_such_message"); got != "no_such_message" {
		t.Fatalf("got %q", got)
	}
}

func TestTemplateData(t *testing.T) {
	got := Td(domain.LangEnglish, "score_line", map[string]any{"Score": 4, "Total": 5})
	if got != "You scored 4 out of 5" {
		t.Fatalf("got %q", got)
	}
}
