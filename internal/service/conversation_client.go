package service

import (
	"context"
	"log/slog"
	"strings"

	"wanderlust/backend/internal/llm"
	"wanderlust/backend/internal/locale"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/prompt"
)

// DefaultModel is the Gemini model used when none is configured. It supports
// maps grounding.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature is the sampling temperature sent with every request.
const DefaultTemperature = 0.7

// Reply is the outcome of one model call. Failed replies carry the localized
// apology as Text and are otherwise indistinguishable to the caller.
type Reply struct {
	Text            string
	GroundingChunks model.GroundingChunks
	Failed          bool
}

// ConversationClient is the only boundary to the language-model provider.
type ConversationClient struct {
	llm         llm.Provider
	model       string
	temperature float64
}

func NewConversationClient(provider llm.Provider, modelName string, temperature float64) *ConversationClient {
	if modelName == "" {
		modelName = DefaultModel
	}
	return &ConversationClient{llm: provider, model: modelName, temperature: temperature}
}

// SendMessage issues exactly one request carrying the history and the new
// turn. When the history already ends with that user turn it is sent once,
// not repeated. It never returns an error: provider failures become an
// apology in the session language.
func (c *ConversationClient) SendMessage(ctx context.Context, history []model.Message, newMessage string, lang model.Language) Reply {
	temperature := c.temperature
	req := &llm.GenerateContentRequest{
		SystemInstruction: &llm.Content{Parts: []llm.Part{{Text: prompt.InstructionFor(lang)}}},
		Contents:          buildContents(history, newMessage),
		Tools:             []llm.Tool{{GoogleMaps: &llm.GoogleMaps{}}},
		GenerationConfig:  &llm.GenerationConfig{Temperature: &temperature},
	}

	resp, err := c.llm.GenerateContent(ctx, c.model, req)
	if err != nil {
		slog.Error("Gemini API error", "model", c.model, "language", lang, "error", err)
		return Reply{Text: locale.Apology(lang), Failed: true}
	}

	text := resp.Text()
	if text == "" {
		slog.Warn("Gemini returned no text, using fallback reply", "model", c.model, "candidates", len(resp.Candidates))
		text = locale.Fallback
	}
	return Reply{Text: text, GroundingChunks: convertChunks(resp.GroundingChunks())}
}

// buildContents maps the stored log to provider turns. Only text is sent;
// citations stay local. The history normally already ends with the new user
// turn, in which case it is not repeated.
func buildContents(history []model.Message, newMessage string) []llm.Content {
	contents := make([]llm.Content, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == model.RoleModel {
			role = "model"
		}
		contents = append(contents, llm.Content{Role: role, Parts: []llm.Part{{Text: msg.Text}}})
	}

	text := strings.TrimSpace(newMessage)
	if text == "" {
		return contents
	}
	if n := len(history); n > 0 && history[n-1].Role == model.RoleUser && history[n-1].Text == text {
		return contents
	}
	return append(contents, llm.Content{Role: "user", Parts: []llm.Part{{Text: text}}})
}

// convertChunks turns provider citations into the closed chunk type. When a
// chunk carries both variants the maps citation wins.
func convertChunks(in []llm.GroundingChunk) model.GroundingChunks {
	if len(in) == 0 {
		return nil
	}
	out := make(model.GroundingChunks, 0, len(in))
	for i, c := range in {
		switch {
		case c.Maps != nil:
			chunk := model.MapsChunk{URI: c.Maps.URI, Title: c.Maps.Title}
			if src := c.Maps.PlaceAnswerSources; src != nil {
				snippets := make([]model.ReviewSnippet, 0, len(src.ReviewSnippets))
				for _, s := range src.ReviewSnippets {
					snippets = append(snippets, model.ReviewSnippet{ReviewText: s.ReviewText})
				}
				chunk.PlaceAnswerSources = []model.PlaceAnswerSource{{ReviewSnippets: snippets}}
			}
			out = append(out, chunk)
		case c.Web != nil:
			out = append(out, model.WebChunk{URI: c.Web.URI, Title: c.Web.Title})
		default:
			slog.Debug("Dropping grounding chunk with no known source", "index", i)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
