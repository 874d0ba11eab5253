package service_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wanderlust/backend/internal/llm"
	mock_llm "wanderlust/backend/internal/llm/mocks"
	"wanderlust/backend/internal/locale"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/repository"
	"wanderlust/backend/internal/service"
	"wanderlust/backend/internal/store"
)

type sessionFixture struct {
	svc      *service.SessionService
	llm      *mock_llm.MockProvider
	repo     repository.Repository
	clock    *fakeClock
	messages *store.MessageStore
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func setupSession(t *testing.T) sessionFixture {
	repo, err := repository.OpenBoltRepository(filepath.Join(t.TempDir(), "session.bolt"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	provider := mock_llm.NewMockProvider(t)
	clock := &fakeClock{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	ids := 0
	messages := store.NewMessageStore(repo, store.DefaultKey)
	svc := service.NewSessionService(messages,
		service.NewConversationClient(provider, "", service.DefaultTemperature),
		service.SessionOptions{
			Now:   clock.Now,
			NewID: func() string { ids++; return fmt.Sprintf("msg-%d", ids) },
		})

	return sessionFixture{svc: svc, llm: provider, repo: repo, clock: clock, messages: messages}
}

func TestSessionService_Init(t *testing.T) {
	ctx := context.Background()

	t.Run("Seeds English greeting when nothing is saved", func(t *testing.T) {
		f := setupSession(t)

		restored := f.svc.Init(ctx)

		assert.False(t, restored)
		messages := f.svc.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, model.RoleModel, messages[0].Role)
		assert.Equal(t, locale.Welcome(model.LanguageEnglish), messages[0].Text)
	})

	t.Run("Seeds greeting when saved data is malformed", func(t *testing.T) {
		f := setupSession(t)
		require.NoError(t, f.repo.Put(ctx, store.DefaultKey, []byte(`"{not json"`)))

		assert.NotPanics(t, func() { f.svc.Init(ctx) })
		require.Len(t, f.svc.Messages(), 1)
	})

	t.Run("Restores saved conversation", func(t *testing.T) {
		f := setupSession(t)
		saved, err := store.Marshal(parisHistory())
		require.NoError(t, err)
		require.NoError(t, f.repo.Put(ctx, store.DefaultKey, saved))

		assert.True(t, f.svc.Init(ctx))
		assert.Equal(t, parisHistory(), f.svc.Messages())
	})
}

func TestSessionService_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Appends user then model message and persists", func(t *testing.T) {
		f := setupSession(t)
		f.llm.On("GenerateContent", mock.Anything, service.DefaultModel, mock.Anything).
			Return(textResponse("Day 1: Louvre",
				llm.GroundingChunk{Web: &llm.WebSource{URI: "https://www.louvre.fr", Title: "Louvre"}},
			), nil).Once()

		sent := f.svc.Send(ctx, "Plan a 3-day trip to Paris")

		require.True(t, sent)
		messages := f.svc.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, model.RoleUser, messages[0].Role)
		assert.Equal(t, "Plan a 3-day trip to Paris", messages[0].Text)
		assert.Equal(t, model.RoleModel, messages[1].Role)
		assert.Equal(t, "Day 1: Louvre", messages[1].Text)
		assert.Len(t, messages[1].GroundingChunks, 1)
		assert.NotEqual(t, messages[0].ID, messages[1].ID)
		assert.False(t, messages[1].Timestamp.Before(messages[0].Timestamp))
		assert.Equal(t, service.StateIdle, f.svc.State())

		// The whole log was snapshotted.
		reloaded, ok := store.NewMessageStore(f.repo, store.DefaultKey).Load(ctx)
		require.True(t, ok)
		assert.Equal(t, messages, reloaded)
	})

	t.Run("User text is trimmed", func(t *testing.T) {
		f := setupSession(t)
		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(textResponse("ok"), nil).Once()

		require.True(t, f.svc.Send(ctx, "  Best food in Tokyo \n"))
		assert.Equal(t, "Best food in Tokyo", f.svc.Messages()[0].Text)
	})

	t.Run("Whitespace-only text is ignored", func(t *testing.T) {
		f := setupSession(t)
		f.svc.Init(ctx)
		before := f.svc.Messages()

		assert.False(t, f.svc.Send(ctx, " \t\n "))
		assert.Equal(t, before, f.svc.Messages())
	})

	t.Run("Provider failure yields apology message", func(t *testing.T) {
		f := setupSession(t)
		f.svc.SetLanguage(model.LanguageUrdu)
		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("dial tcp: connection refused")).Once()

		require.True(t, f.svc.Send(ctx, "لاہور کا 3 دن کا سفر منصوبہ"))
		messages := f.svc.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, locale.Apology(model.LanguageUrdu), messages[1].Text)
		assert.NotEmpty(t, messages[1].Text)
		assert.Equal(t, service.StateIdle, f.svc.State())
	})

	t.Run("Send while sending is ignored", func(t *testing.T) {
		f := setupSession(t)
		started := make(chan struct{})
		release := make(chan struct{})
		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(textResponse("first reply"), nil).Once()

		done := make(chan bool)
		go func() { done <- f.svc.Send(ctx, "first") }()
		<-started

		assert.Equal(t, service.StateSending, f.svc.State())
		assert.False(t, f.svc.Send(ctx, "second"))
		assert.False(t, f.svc.ClearConversation(ctx, true))
		assert.Len(t, f.svc.Messages(), 1)

		close(release)
		assert.True(t, <-done)

		messages := f.svc.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "first", messages[0].Text)
		assert.Equal(t, "first reply", messages[1].Text)
	})

	t.Run("Panicking provider still returns the session to idle", func(t *testing.T) {
		f := setupSession(t)
		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { panic("provider exploded") }).
			Return(nil, nil).Once()

		assert.Panics(t, func() { f.svc.Send(ctx, "first") })
		assert.Equal(t, service.StateIdle, f.svc.State())

		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(textResponse("second reply"), nil).Once()
		require.True(t, f.svc.Send(ctx, "second"))
		assert.Equal(t, "second reply", f.svc.Messages()[len(f.svc.Messages())-1].Text)
		assert.True(t, f.svc.ClearConversation(ctx, true))
	})

	t.Run("Timestamps never go backwards", func(t *testing.T) {
		f := setupSession(t)
		f.svc.Init(ctx)
		f.clock.now = f.clock.now.Add(-time.Hour)
		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(textResponse("ok"), nil).Once()

		require.True(t, f.svc.Send(ctx, "hello"))
		messages := f.svc.Messages()
		for i := 1; i < len(messages); i++ {
			assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp), "message %d", i)
		}
	})
}

func TestSessionService_ToggleLanguage(t *testing.T) {
	ctx := context.Background()
	f := setupSession(t)
	f.svc.Init(ctx)

	assert.Equal(t, model.LanguageUrdu, f.svc.ToggleLanguage())

	f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.MatchedBy(func(req *llm.GenerateContentRequest) bool {
		return strings.HasSuffix(req.SystemInstruction.Parts[0].Text, "You must reply in Urdu (Urdu script).")
	})).Return(textResponse("ٹھیک ہے"), nil).Once()
	require.True(t, f.svc.Send(ctx, "Karachi food"))

	// Existing messages are not retranslated.
	assert.Equal(t, locale.Welcome(model.LanguageEnglish), f.svc.Messages()[0].Text)

	view := f.svc.Snapshot()
	assert.Equal(t, model.LanguageUrdu, view.Language)
	assert.Equal(t, "rtl", view.Direction)
	assert.Equal(t, locale.DefaultQuickReplies().For(model.LanguageUrdu), view.QuickReplies)

	assert.Equal(t, model.LanguageEnglish, f.svc.ToggleLanguage())
	assert.False(t, f.svc.SetLanguage(model.Language("de")))
	assert.Equal(t, model.LanguageEnglish, f.svc.Language())
}

func TestSessionService_ClearConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Without confirmation nothing changes", func(t *testing.T) {
		f := setupSession(t)
		f.svc.Init(ctx)
		before := f.svc.Messages()

		assert.False(t, f.svc.ClearConversation(ctx, false))
		assert.Equal(t, before, f.svc.Messages())
	})

	t.Run("Confirmed clear leaves one greeting in the current language", func(t *testing.T) {
		f := setupSession(t)
		f.svc.Init(ctx)
		f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(textResponse("ok"), nil).Times(3)
		for _, text := range []string{"one", "two", "three"} {
			require.True(t, f.svc.Send(ctx, text))
		}
		require.Len(t, f.svc.Messages(), 7)

		f.svc.ToggleLanguage()
		assert.True(t, f.svc.ClearConversation(ctx, true))

		messages := f.svc.Messages()
		require.Len(t, messages, 1)
		assert.Equal(t, model.RoleModel, messages[0].Role)
		assert.Equal(t, locale.Cleared(model.LanguageUrdu), messages[0].Text)

		reloaded, ok := store.NewMessageStore(f.repo, store.DefaultKey).Load(ctx)
		require.True(t, ok)
		assert.Len(t, reloaded, 1)
	})
}

func TestSessionService_IndependentSessions(t *testing.T) {
	ctx := context.Background()
	f := setupSession(t)

	other := service.NewSessionService(
		store.NewMessageStore(f.repo, "another_chat"),
		service.NewConversationClient(f.llm, "", service.DefaultTemperature),
		service.SessionOptions{Language: model.LanguageUrdu},
	)
	f.svc.Init(ctx)
	other.Init(ctx)

	f.llm.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(textResponse("ok"), nil).Once()
	require.True(t, f.svc.Send(ctx, "hello"))

	assert.Len(t, f.svc.Messages(), 3)
	assert.Len(t, other.Messages(), 1)
	assert.Equal(t, locale.Welcome(model.LanguageUrdu), other.Messages()[0].Text)
}
