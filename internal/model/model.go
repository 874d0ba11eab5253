package model

import (
	"time"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModel
}

// Language is the two-valued session language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageUrdu    Language = "ur"
)

// ParseLanguage converts a user-supplied code into a Language.
func ParseLanguage(code string) (Language, bool) {
	switch Language(code) {
	case LanguageEnglish, LanguageUrdu:
		return Language(code), true
	}
	return "", false
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == LanguageUrdu {
		return LanguageEnglish
	}
	return LanguageUrdu
}

// Direction returns the text direction used to display the language.
func (l Language) Direction() string {
	if l == LanguageUrdu {
		return "rtl"
	}
	return "ltr"
}

// Message stores a single turn of the conversation.
type Message struct {
	ID              string          `json:"id"`
	Role            Role            `json:"role"`
	Text            string          `json:"text"`
	Timestamp       time.Time       `json:"timestamp"`
	GroundingChunks GroundingChunks `json:"groundingChunks,omitempty"`
}

// Clone returns a copy that shares no slices with m.
func (m Message) Clone() Message {
	// Empty citations are stored as nil so the log survives a JSON round trip.
	if len(m.GroundingChunks) == 0 {
		m.GroundingChunks = nil
	} else {
		chunks := make(GroundingChunks, len(m.GroundingChunks))
		copy(chunks, m.GroundingChunks)
		m.GroundingChunks = chunks
	}
	return m
}

// SessionView is the read-only state of a session handed to front ends.
type SessionView struct {
	Messages     []Message `json:"messages"`
	Language     Language  `json:"language"`
	Direction    string    `json:"direction"`
	QuickReplies []string  `json:"quickReplies"`
	State        string    `json:"state"`
}
