package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wanderlust/backend/internal/llm"
	mock_llm "wanderlust/backend/internal/llm/mocks"
	"wanderlust/backend/internal/locale"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/prompt"
	"wanderlust/backend/internal/service"
)

func textResponse(text string, chunks ...llm.GroundingChunk) *llm.GenerateContentResponse {
	candidate := llm.Candidate{
		Content: &llm.Content{Role: "model", Parts: []llm.Part{{Text: text}}},
	}
	if len(chunks) > 0 {
		candidate.GroundingMetadata = &llm.GroundingMetadata{GroundingChunks: chunks}
	}
	return &llm.GenerateContentResponse{Candidates: []llm.Candidate{candidate}}
}

func parisHistory() []model.Message {
	ts := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	return []model.Message{
		{ID: "g", Role: model.RoleModel, Text: "Hello!", Timestamp: ts,
			GroundingChunks: model.GroundingChunks{model.WebChunk{URI: "https://old.example", Title: "old"}}},
		{ID: "u", Role: model.RoleUser, Text: "Plan a 3-day trip to Paris", Timestamp: ts.Add(time.Second)},
	}
}

func TestConversationClient_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Builds one request and unpacks citations", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		client := service.NewConversationClient(provider, "", service.DefaultTemperature)

		provider.On("GenerateContent", ctx, service.DefaultModel, mock.MatchedBy(func(req *llm.GenerateContentRequest) bool {
			return req.SystemInstruction.Parts[0].Text == prompt.InstructionFor(model.LanguageEnglish) &&
				*req.GenerationConfig.Temperature == 0.7 &&
				len(req.Tools) == 1 && req.Tools[0].GoogleMaps != nil &&
				len(req.Contents) == 2 &&
				req.Contents[0].Role == "model" && req.Contents[0].Parts[0].Text == "Hello!" &&
				req.Contents[1].Role == "user" && req.Contents[1].Parts[0].Text == "Plan a 3-day trip to Paris"
		})).Return(textResponse("Here is your plan.",
			llm.GroundingChunk{Web: &llm.WebSource{URI: "https://paris.fr", Title: "Paris"}},
		), nil).Once()

		reply := client.SendMessage(ctx, parisHistory(), "Plan a 3-day trip to Paris", model.LanguageEnglish)

		assert.False(t, reply.Failed)
		assert.Equal(t, "Here is your plan.", reply.Text)
		assert.Equal(t, model.GroundingChunks{model.WebChunk{URI: "https://paris.fr", Title: "Paris"}}, reply.GroundingChunks)
	})

	t.Run("Success - New turn not yet in history is appended", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		client := service.NewConversationClient(provider, "gemini-test", 0.2)

		provider.On("GenerateContent", ctx, "gemini-test", mock.MatchedBy(func(req *llm.GenerateContentRequest) bool {
			last := req.Contents[len(req.Contents)-1]
			return len(req.Contents) == 3 && last.Role == "user" && last.Parts[0].Text == "And Rome?" &&
				*req.GenerationConfig.Temperature == 0.2
		})).Return(textResponse("Rome too."), nil).Once()

		reply := client.SendMessage(ctx, parisHistory(), "  And Rome?  ", model.LanguageEnglish)
		assert.Equal(t, "Rome too.", reply.Text)
		assert.Nil(t, reply.GroundingChunks)
	})

	t.Run("Success - Urdu instruction", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		client := service.NewConversationClient(provider, "", service.DefaultTemperature)

		provider.On("GenerateContent", ctx, mock.Anything, mock.MatchedBy(func(req *llm.GenerateContentRequest) bool {
			return strings.HasSuffix(req.SystemInstruction.Parts[0].Text, "You must reply in Urdu (Urdu script).")
		})).Return(textResponse("جی ہاں"), nil).Once()

		reply := client.SendMessage(ctx, parisHistory(), "Plan a 3-day trip to Paris", model.LanguageUrdu)
		assert.Equal(t, "جی ہاں", reply.Text)
	})

	t.Run("Empty reply - Uses fallback text", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		client := service.NewConversationClient(provider, "", service.DefaultTemperature)
		provider.On("GenerateContent", ctx, mock.Anything, mock.Anything).
			Return(&llm.GenerateContentResponse{}, nil).Once()

		reply := client.SendMessage(ctx, parisHistory(), "Plan a 3-day trip to Paris", model.LanguageEnglish)
		assert.Equal(t, locale.Fallback, reply.Text)
		assert.False(t, reply.Failed)
	})

	t.Run("Failure - Provider error becomes localized apology", func(t *testing.T) {
		for _, lang := range []model.Language{model.LanguageEnglish, model.LanguageUrdu} {
			provider := mock_llm.NewMockProvider(t)
			client := service.NewConversationClient(provider, "", service.DefaultTemperature)
			provider.On("GenerateContent", ctx, mock.Anything, mock.Anything).
				Return(nil, errors.New("api returned non-200 status 401")).Once()

			reply := client.SendMessage(ctx, parisHistory(), "Plan a 3-day trip to Paris", lang)
			assert.True(t, reply.Failed)
			assert.Equal(t, locale.Apology(lang), reply.Text)
			assert.Nil(t, reply.GroundingChunks)
		}
	})
}

func TestConversationClient_GroundingConversion(t *testing.T) {
	ctx := context.Background()
	provider := mock_llm.NewMockProvider(t)
	client := service.NewConversationClient(provider, "", service.DefaultTemperature)

	provider.On("GenerateContent", ctx, mock.Anything, mock.Anything).Return(textResponse("ok",
		llm.GroundingChunk{},
		llm.GroundingChunk{Maps: &llm.MapsSource{
			URI: "https://maps.google.com/?cid=7", Title: "Badshahi Mosque",
			PlaceAnswerSources: &llm.PlaceAnswerSources{ReviewSnippets: []llm.ReviewSnippet{{ReviewText: "Stunning at sunset"}}},
		}},
		llm.GroundingChunk{
			Web:  &llm.WebSource{URI: "https://web.example", Title: "web"},
			Maps: &llm.MapsSource{URI: "https://maps.example", Title: "maps"},
		},
	), nil).Once()

	reply := client.SendMessage(ctx, nil, "Lahore", model.LanguageEnglish)

	assert.Equal(t, model.GroundingChunks{
		model.MapsChunk{
			URI: "https://maps.google.com/?cid=7", Title: "Badshahi Mosque",
			PlaceAnswerSources: []model.PlaceAnswerSource{{ReviewSnippets: []model.ReviewSnippet{{ReviewText: "Stunning at sunset"}}}},
		},
		model.MapsChunk{URI: "https://maps.example", Title: "maps"},
	}, reply.GroundingChunks)
}
