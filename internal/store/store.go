// Package store keeps the ordered conversation log of a session and
// snapshots it to a repository after every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/repository"
)

// DefaultKey is the record key used when a session is not given its own.
const DefaultKey = "wanderlust_chat"

// MessageStore is the ordered log of one session. It is not safe for
// concurrent use; the session service serializes access to it.
type MessageStore struct {
	repo     repository.Repository
	key      string
	messages []model.Message
}

func NewMessageStore(repo repository.Repository, key string) *MessageStore {
	if key == "" {
		key = DefaultKey
	}
	return &MessageStore{repo: repo, key: key}
}

// Key returns the record key the log is persisted under.
func (s *MessageStore) Key() string { return s.key }

// Append adds msg to the tail of the log and persists the whole log. The
// in-memory append stands even when persisting fails.
func (s *MessageStore) Append(ctx context.Context, msg model.Message) error {
	s.messages = append(s.messages, msg.Clone())
	return s.persist(ctx)
}

// Load reads the persisted log and adopts it as the in-memory log. It reports
// false when nothing usable is stored: a missing record, a backend error, or
// malformed data all count as absent.
func (s *MessageStore) Load(ctx context.Context) ([]model.Message, bool) {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("Failed to read saved conversation, starting fresh.", "key", s.key, "error", err)
		}
		return nil, false
	}

	messages, err := Unmarshal(data)
	if err != nil {
		slog.Warn("Saved conversation is malformed, ignoring it.", "key", s.key, "error", err)
		return nil, false
	}
	if len(messages) == 0 {
		return nil, false
	}

	s.messages = messages
	return s.Messages(), true
}

// Clear empties the log and removes the persisted record.
func (s *MessageStore) Clear(ctx context.Context) error {
	s.messages = nil
	if err := s.repo.Delete(ctx, s.key); err != nil {
		slog.Error("Failed to delete saved conversation.", "key", s.key, "error", err)
		return err
	}
	return nil
}

// Messages returns a copy of the log in conversation order.
func (s *MessageStore) Messages() []model.Message {
	out := make([]model.Message, len(s.messages))
	for i, m := range s.messages {
		out[i] = m.Clone()
	}
	return out
}

func (s *MessageStore) Len() int { return len(s.messages) }

// Last returns the most recent message, if any.
func (s *MessageStore) Last() (model.Message, bool) {
	if len(s.messages) == 0 {
		return model.Message{}, false
	}
	return s.messages[len(s.messages)-1].Clone(), true
}

func (s *MessageStore) persist(ctx context.Context) error {
	data, err := Marshal(s.messages)
	if err != nil {
		slog.Error("Failed to serialize conversation.", "key", s.key, "error", err)
		return err
	}
	if err := s.repo.Put(ctx, s.key, data); err != nil {
		slog.Error("Failed to save conversation.", "key", s.key, "error", err)
		return err
	}
	return nil
}

// Marshal serializes a conversation log as a JSON array.
func Marshal(messages []model.Message) ([]byte, error) {
	if messages == nil {
		messages = []model.Message{}
	}
	return json.Marshal(messages)
}

// Unmarshal parses a conversation log produced by Marshal.
func Unmarshal(data []byte) ([]model.Message, error) {
	var messages []model.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("could not decode conversation: %w", err)
	}
	for i, m := range messages {
		if m.ID == "" {
			return nil, fmt.Errorf("message %d has no id", i)
		}
		if !m.Role.Valid() {
			return nil, fmt.Errorf("message %d has unknown role %q", i, m.Role)
		}
	}
	return messages, nil
}
