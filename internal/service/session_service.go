package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wanderlust/backend/internal/locale"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/store"
)

// State is the per-turn state of a session.
type State int

const (
	StateIdle State = iota
	StateSending
)

func (s State) String() string {
	if s == StateSending {
		return "sending"
	}
	return "idle"
}

// SessionOptions configures a SessionService. Zero values select defaults.
type SessionOptions struct {
	Language     model.Language
	QuickReplies *locale.QuickReplies
	Now          func() time.Time
	NewID        func() string
}

// SessionService drives one conversation: it turns a user message into a
// model request, appends both turns to the store and tracks the session
// language. Each instance owns its store, so independent sessions can run
// side by side.
type SessionService struct {
	mu           sync.Mutex
	store        *store.MessageStore
	client       *ConversationClient
	language     model.Language
	state        State
	quickReplies *locale.QuickReplies
	now          func() time.Time
	newID        func() string
}

func NewSessionService(messages *store.MessageStore, client *ConversationClient, opts SessionOptions) *SessionService {
	s := &SessionService{
		store:        messages,
		client:       client,
		language:     opts.Language,
		quickReplies: opts.QuickReplies,
		now:          opts.Now,
		newID:        opts.NewID,
	}
	if _, ok := model.ParseLanguage(string(s.language)); !ok {
		s.language = model.LanguageEnglish
	}
	if s.quickReplies == nil {
		s.quickReplies = locale.DefaultQuickReplies()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Init restores the persisted conversation, or seeds a greeting when there is
// none. It reports whether a saved conversation was restored.
func (s *SessionService) Init(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if messages, ok := s.store.Load(ctx); ok {
		slog.Info("Restored saved conversation", "key", s.store.Key(), "messages", len(messages))
		return true
	}
	_ = s.store.Append(ctx, s.newMessage(model.RoleModel, locale.Welcome(s.language), nil))
	return false
}

// Send runs one full turn. Blank text, or a call made while another turn is
// in flight, is ignored and reported as false. The lock is not held during
// the model call.
func (s *SessionService) Send(ctx context.Context, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	s.mu.Lock()
	if s.state == StateSending {
		s.mu.Unlock()
		slog.Debug("Ignoring send while a reply is pending", "key", s.store.Key())
		return false
	}
	s.state = StateSending
	_ = s.store.Append(ctx, s.newMessage(model.RoleUser, trimmed, nil))
	history := s.store.Messages()
	lang := s.language
	s.mu.Unlock()

	// The session returns to Idle even if the model call panics.
	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
	}()

	reply := s.client.SendMessage(ctx, history, text, lang)

	s.mu.Lock()
	_ = s.store.Append(ctx, s.newMessage(model.RoleModel, reply.Text, reply.GroundingChunks))
	s.mu.Unlock()
	return true
}

// ToggleLanguage flips the session language and returns the new one. Existing
// messages are not retranslated.
func (s *SessionService) ToggleLanguage() model.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = s.language.Toggle()
	return s.language
}

// SetLanguage sets the session language explicitly.
func (s *SessionService) SetLanguage(lang model.Language) bool {
	if _, ok := model.ParseLanguage(string(lang)); !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	return true
}

// ClearConversation wipes the log and seeds the "cleared" greeting in the
// current language. Nothing happens without confirmation or while a reply is
// pending.
func (s *SessionService) ClearConversation(ctx context.Context, confirmed bool) bool {
	if !confirmed {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSending {
		return false
	}

	_ = s.store.Clear(ctx)
	_ = s.store.Append(ctx, s.newMessage(model.RoleModel, locale.Cleared(s.language), nil))
	slog.Info("Conversation cleared", "key", s.store.Key(), "language", s.language)
	return true
}

func (s *SessionService) Language() model.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *SessionService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionService) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Messages()
}

// Snapshot returns everything a front end needs to draw the session.
func (s *SessionService) Snapshot() *model.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &model.SessionView{
		Messages:     s.store.Messages(),
		Language:     s.language,
		Direction:    s.language.Direction(),
		QuickReplies: s.quickReplies.For(s.language),
		State:        s.state.String(),
	}
}

// newMessage stamps a message with a fresh id and a timestamp that never
// goes backwards relative to the log. Callers hold s.mu.
func (s *SessionService) newMessage(role model.Role, text string, chunks model.GroundingChunks) model.Message {
	ts := s.now().UTC().Truncate(time.Millisecond)
	if last, ok := s.store.Last(); ok && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}
	return model.Message{
		ID:              s.newID(),
		Role:            role,
		Text:            text,
		Timestamp:       ts,
		GroundingChunks: chunks,
	}
}
