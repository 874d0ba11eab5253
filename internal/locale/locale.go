// Package locale holds the user-facing strings that depend on the session
// language: greetings, apologies and quick-reply suggestions.
package locale

import (
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"

	"wanderlust/backend/internal/model"
)

// Fallback is the reply used when the model returns no text at all.
const Fallback = "I couldn't generate a response. Please try again."

var welcome = map[model.Language]string{
	model.LanguageEnglish: "Hello! I'm your WanderLust Guide. 🌍✈️\n\nI can help you plan trips, find amazing food, and discover hidden gems. Where would you like to go today?",
	model.LanguageUrdu:    "السلام علیکم! میں آپ کا WanderLust گائیڈ ہوں۔ 🌍✈️\n\nمیں سفر کی منصوبہ بندی، لاجواب کھانوں اور چھپے ہوئے خوبصورت مقامات کی تلاش میں آپ کی مدد کر سکتا ہوں۔ آج آپ کہاں جانا چاہیں گے؟",
}

var cleared = map[model.Language]string{
	model.LanguageEnglish: "Chat cleared! Where to next? 🌍",
	model.LanguageUrdu:    "چیٹ صاف کر دی گئی! اگلی منزل کون سی ہے؟ 🌍",
}

var apology = map[model.Language]string{
	model.LanguageEnglish: "Sorry, something went wrong. Please try again later.",
	model.LanguageUrdu:    "معذرت، کچھ غلط ہو گیا۔ براہ کرم دوبارہ کوشش کریں۔",
}

var defaultQuickReplies = map[model.Language][]string{
	model.LanguageEnglish: {"Plan a 3-day trip to Paris", "Best food in Tokyo", "Budget tips for Bali", "Historical places in Rome"},
	model.LanguageUrdu:    {"لاہور کا 3 دن کا سفر منصوبہ", "کراچی میں بہترین کھانا", "مری کے لیے بجٹ ٹپس", "اسلام آباد کے تاریخی مقامات"},
}

// Welcome is the greeting seeded into a brand-new conversation.
func Welcome(lang model.Language) string { return pick(welcome, lang) }

// Cleared is the greeting seeded after the conversation is cleared.
func Cleared(lang model.Language) string { return pick(cleared, lang) }

// Apology is the reply shown when the model could not be reached.
func Apology(lang model.Language) string { return pick(apology, lang) }

func pick(table map[model.Language]string, lang model.Language) string {
	if s, ok := table[lang]; ok {
		return s
	}
	return table[model.LanguageEnglish]
}

// QuickReplies is the per-language list of canned suggestions.
type QuickReplies struct {
	byLanguage map[model.Language][]string
}

// DefaultQuickReplies returns the built-in suggestions.
func DefaultQuickReplies() *QuickReplies {
	q := &QuickReplies{byLanguage: make(map[model.Language][]string, len(defaultQuickReplies))}
	for lang, list := range defaultQuickReplies {
		q.byLanguage[lang] = slices.Clone(list)
	}
	return q
}

type quickRepliesFile struct {
	QuickReplies map[string][]string `toml:"quick_replies"`
}

// LoadQuickReplies reads suggestion overrides from a TOML file. Languages
// missing from the file keep their built-in suggestions.
func LoadQuickReplies(path string) (*QuickReplies, error) {
	q := DefaultQuickReplies()
	if path == "" {
		return q, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read quick replies file: %w", err)
	}
	var file quickRepliesFile
	if _, err := toml.Decode(string(data), &file); err != nil {
		return nil, fmt.Errorf("could not parse quick replies file: %w", err)
	}
	for code, list := range file.QuickReplies {
		lang, ok := model.ParseLanguage(code)
		if !ok {
			return nil, fmt.Errorf("quick replies file: unknown language %q", code)
		}
		if len(list) > 0 {
			q.byLanguage[lang] = list
		}
	}
	return q, nil
}

// For returns a copy of the suggestions for lang.
func (q *QuickReplies) For(lang model.Language) []string {
	if list, ok := q.byLanguage[lang]; ok {
		return slices.Clone(list)
	}
	return slices.Clone(q.byLanguage[model.LanguageEnglish])
}
