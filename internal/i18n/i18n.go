// Package i18n holds the player-facing strings the server sends over the
// wire: waiting-room text, countdown labels, the empty-quiz notice and the
// scoreboard title. Question text itself is bilingual in the data model
// and does not go through this bundle.
package i18n

import (
	"embed"
	"encoding/json"
	"log"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"speed-trivia-service/internal/domain"
)

//go:embed locales/*.json
var localeFS embed.FS

var bundle = newBundle()

func newBundle() *goi18n.Bundle {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		log.Fatalf("read locales dir: %v", err)
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			log.Fatalf("read locale file %s: %v", e.Name(), err)
		}
		b.MustParseMessageFileBytes(data, e.Name())
	}
	return b
}

// T translates a message ID for the player's language, falling back to
// English, then to the ID itself.
func T(lang domain.Language, msgID string) string {
	loc := goi18n.NewLocalizer(bundle, string(lang), "en")
	s, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		log.Printf("i18n: missing translation %q: %v", msgID, err)
		return msgID
	}
	return s
}

// Td translates a message ID with template data.
func Td(lang domain.Language, msgID string, data map[string]any) string {
	loc := goi18n.NewLocalizer(bundle, string(lang), "en")
	s, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: msgID, TemplateData: data})
	if err != nil {
		log.Printf("i18n: missing translation %q: %v", msgID, err)
		return msgID
	}
	return s
}
