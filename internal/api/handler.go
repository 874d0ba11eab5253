package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/language"

	app_errors "wanderlust/backend/internal/errors"
	"wanderlust/backend/internal/export"
	"wanderlust/backend/internal/interfaces"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/render"
)

// supported is ordered by preference; the first entry is the fallback.
var supported = []language.Tag{language.English, language.Urdu}

var matcher = language.NewMatcher(supported)

// SessionHandler exposes one chat session over HTTP.
type SessionHandler struct {
	service  interfaces.SessionService
	renderer *render.HTMLRenderer
	loc      *time.Location
	now      func() time.Time
}

// NewSessionHandler builds a handler. Times in transcripts and rendered HTML
// are shown in loc (time.Local when nil).
func NewSessionHandler(svc interfaces.SessionService, loc *time.Location) *SessionHandler {
	if loc == nil {
		loc = time.Local
	}
	return &SessionHandler{
		service:  svc,
		renderer: render.NewHTMLRenderer(loc),
		loc:      loc,
		now:      time.Now,
	}
}

// GetSession godoc
// @Summary      Get the session
// @Description  Returns the conversation, language, text direction and quick replies.
// @Tags         Session
// @Produce      json
// @Success      200  {object}  model.SessionView
// @Router       /v1/session [get]
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.service.Snapshot())
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Runs one conversation turn and returns the updated session. Blank text or a send
// @Description  while a reply is pending is ignored and reported as sent=false.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        message  body      SendMessageRequest  true  "Message text"
// @Success      200      {object}  SendMessageResponse
// @Failure      400      {object}  ErrorResponse
// @Router       /v1/session/messages [post]
//
// The turn is not tied to the client connection: once accepted it finishes
// and is persisted even if the client goes away.
func (h *SessionHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}

	sent := h.service.Send(context.WithoutCancel(r.Context()), req.Text)
	if !sent {
		slog.Debug("Message was not sent", "length", len(req.Text))
	}
	respondWithJSON(w, http.StatusOK, SendMessageResponse{Sent: sent, Session: h.service.Snapshot()})
}

// ToggleLanguage godoc
// @Summary      Toggle the language
// @Description  Switches the session between English and Urdu. Existing messages are not retranslated.
// @Tags         Language
// @Produce      json
// @Success      200  {object}  model.SessionView
// @Router       /v1/session/language/toggle [post]
func (h *SessionHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	lang := h.service.ToggleLanguage()
	slog.Info("Session language toggled", "language", lang)
	respondWithJSON(w, http.StatusOK, h.service.Snapshot())
}

// SetLanguage godoc
// @Summary      Set the language
// @Description  Sets the session language explicitly.
// @Tags         Language
// @Accept       json
// @Produce      json
// @Param        language  body      SetLanguageRequest  true  "Language code (en or ur)"
// @Success      200       {object}  model.SessionView
// @Failure      400       {object}  ErrorResponse
// @Router       /v1/session/language [put]
func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req SetLanguageRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	if !h.service.SetLanguage(model.Language(req.Language)) {
		respondWithError(w, fmt.Errorf("%w: unsupported language %q", app_errors.ErrValidation, req.Language))
		return
	}
	respondWithJSON(w, http.StatusOK, h.service.Snapshot())
}

// NegotiateLanguage godoc
// @Summary      Negotiate the language
// @Description  Picks the session language from the Accept-Language header, falling back to English.
// @Tags         Language
// @Produce      json
// @Param        Accept-Language  header    string  false  "Preferred languages"
// @Success      200              {object}  model.SessionView
// @Router       /v1/session/language/negotiate [post]
func (h *SessionHandler) NegotiateLanguage(w http.ResponseWriter, r *http.Request) {
	lang := NegotiateLanguage(r.Header.Get("Accept-Language"))
	h.service.SetLanguage(lang)
	respondWithJSON(w, http.StatusOK, h.service.Snapshot())
}

// ClearConversation godoc
// @Summary      Clear the conversation
// @Description  Wipes the conversation and seeds a greeting, only when confirmed and no reply is pending.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        clear  body      ClearRequest  true  "Confirmation"
// @Success      200    {object}  ClearResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /v1/session/clear [post]
func (h *SessionHandler) ClearConversation(w http.ResponseWriter, r *http.Request) {
	var req ClearRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondWithError(w, err)
		return
	}
	cleared := h.service.ClearConversation(r.Context(), req.Confirmed)
	respondWithJSON(w, http.StatusOK, ClearResponse{Cleared: cleared, Session: h.service.Snapshot()})
}

// DownloadTranscript godoc
// @Summary      Download the transcript
// @Description  Returns the conversation as a plain-text attachment.
// @Tags         Export
// @Produce      plain
// @Success      200  {string}  string  "Transcript"
// @Router       /v1/session/transcript [get]
func (h *SessionHandler) DownloadTranscript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now().In(h.loc))))
	respondWithBody(w, export.MimeType, export.Transcript(h.service.Messages(), h.loc))
}

// RenderSession godoc
// @Summary      Render the conversation
// @Description  Returns the conversation as a sanitized HTML fragment with citation chips.
// @Tags         Export
// @Produce      html
// @Success      200  {string}  string  "HTML fragment"
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/session/render [get]
func (h *SessionHandler) RenderSession(w http.ResponseWriter, r *http.Request) {
	out, err := h.renderer.RenderSession(h.service.Snapshot())
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: %v", app_errors.ErrInternal, err))
		return
	}
	respondWithBody(w, "text/html; charset=utf-8", out)
}

// NegotiateLanguage maps an Accept-Language header to a supported language.
func NegotiateLanguage(acceptLanguage string) model.Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return model.LanguageEnglish
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return model.LanguageEnglish
	}
	if supported[index] == language.Urdu {
		return model.LanguageUrdu
	}
	return model.LanguageEnglish
}
