package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderlust/backend/internal/model"
)

func TestStrings(t *testing.T) {
	assert.Equal(t, "Sorry, something went wrong. Please try again later.", Apology(model.LanguageEnglish))
	assert.Equal(t, "معذرت، کچھ غلط ہو گیا۔ براہ کرم دوبارہ کوشش کریں۔", Apology(model.LanguageUrdu))
	assert.Contains(t, Welcome(model.LanguageEnglish), "WanderLust Guide")
	assert.Equal(t, "Chat cleared! Where to next? 🌍", Cleared(model.LanguageEnglish))

	// Unknown languages fall back to English.
	assert.Equal(t, Apology(model.LanguageEnglish), Apology(model.Language("fr")))
}

func TestDefaultQuickReplies(t *testing.T) {
	q := DefaultQuickReplies()
	assert.Equal(t, "Plan a 3-day trip to Paris", q.For(model.LanguageEnglish)[0])
	assert.Len(t, q.For(model.LanguageUrdu), 4)

	// Callers get copies.
	list := q.For(model.LanguageEnglish)
	list[0] = "changed"
	assert.Equal(t, "Plan a 3-day trip to Paris", q.For(model.LanguageEnglish)[0])
}

func TestLoadQuickReplies(t *testing.T) {
	t.Run("Overrides one language", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quick_replies.toml")
		content := "[quick_replies]\nen = [\"Weekend in Lisbon\", \"Street food in Bangkok\"]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		q, err := LoadQuickReplies(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Weekend in Lisbon", "Street food in Bangkok"}, q.For(model.LanguageEnglish))
		assert.Equal(t, DefaultQuickReplies().For(model.LanguageUrdu), q.For(model.LanguageUrdu))
	})

	t.Run("Empty path uses defaults", func(t *testing.T) {
		q, err := LoadQuickReplies("")
		require.NoError(t, err)
		assert.Equal(t, DefaultQuickReplies().For(model.LanguageEnglish), q.For(model.LanguageEnglish))
	})

	t.Run("Unknown language is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "quick_replies.toml")
		require.NoError(t, os.WriteFile(path, []byte("[quick_replies]\nfr = [\"Paris\"]\n"), 0o600))

		_, err := LoadQuickReplies(path)
		assert.ErrorContains(t, err, "unknown language")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadQuickReplies(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}
