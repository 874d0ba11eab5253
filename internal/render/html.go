package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"wanderlust/backend/internal/model"
)

var pageTemplate = template.Must(template.New("session").Parse(`
{{- define "session" -}}
<div class="chat" dir="{{.Direction}}" lang="{{.Language}}">
{{- range .Messages}}{{template "message" .}}{{end -}}
</div>
{{- end -}}
{{- define "message" -}}
<div class="message message-{{.Role}}" id="msg-{{.ID}}">
<div class="bubble markdown-body">{{.Body}}</div>
{{- if .Chips}}
<div class="chips">
{{- range .Chips}}<a class="chip chip-{{.Kind}}" href="{{.URI}}" target="_blank" rel="noopener noreferrer"><span class="chip-icon">{{.Icon}}</span><span class="chip-title">{{.Title}}</span>{{if eq .Kind "maps"}}<span class="chip-external">↗</span>{{end}}</a>{{end -}}
</div>
{{- end}}
<time datetime="{{.ISO}}">{{.Clock}}</time>
</div>
{{- end -}}
`))

type htmlMessage struct {
	ID    string
	Role  model.Role
	Body  template.HTML
	Chips []chip
	ISO   string
	Clock string
}

type htmlSession struct {
	Direction string
	Language  model.Language
	Messages  []htmlMessage
}

// HTMLRenderer converts message markdown to sanitized HTML bubbles with
// grounding chips.
type HTMLRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	loc    *time.Location
}

// NewHTMLRenderer returns a renderer that shows times in loc (time.Local when nil).
func NewHTMLRenderer(loc *time.Location) *HTMLRenderer {
	if loc == nil {
		loc = time.Local
	}
	return &HTMLRenderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: bluemonday.UGCPolicy(),
		loc:    loc,
	}
}

// Markdown renders text as sanitized HTML.
func (r *HTMLRenderer) Markdown(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("could not render markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// RenderSession renders every message of the view in order.
func (r *HTMLRenderer) RenderSession(view *model.SessionView) (string, error) {
	page := htmlSession{
		Direction: view.Direction,
		Language:  view.Language,
		Messages:  make([]htmlMessage, 0, len(view.Messages)),
	}
	for _, m := range view.Messages {
		hm, err := r.message(m)
		if err != nil {
			return "", err
		}
		page.Messages = append(page.Messages, hm)
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "session", page); err != nil {
		return "", fmt.Errorf("could not render session: %w", err)
	}
	return buf.String(), nil
}

// RenderMessage renders a single message bubble.
func (r *HTMLRenderer) RenderMessage(m model.Message) (string, error) {
	hm, err := r.message(m)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "message", hm); err != nil {
		return "", fmt.Errorf("could not render message %s: %w", m.ID, err)
	}
	return buf.String(), nil
}

func (r *HTMLRenderer) message(m model.Message) (htmlMessage, error) {
	body, err := r.Markdown(m.Text)
	if err != nil {
		return htmlMessage{}, err
	}
	hm := htmlMessage{
		ID:    m.ID,
		Role:  m.Role,
		Body:  body,
		ISO:   m.Timestamp.UTC().Format(time.RFC3339),
		Clock: m.Timestamp.In(r.loc).Format("15:04"),
	}
	// Citations are only shown on model replies.
	if m.Role == model.RoleModel && len(m.GroundingChunks) > 0 {
		if hm.Chips, err = chipsFor(m.GroundingChunks); err != nil {
			return htmlMessage{}, err
		}
	}
	return hm, nil
}
