package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"wanderlust/backend/internal/model"
)

// TerminalRenderer draws messages for a terminal: markdown through glamour,
// labels and chips styled with lipgloss.
type TerminalRenderer struct {
	md    *glamour.TermRenderer
	loc   *time.Location
	user  lipgloss.Style
	guide lipgloss.Style
	clock lipgloss.Style
	web   lipgloss.Style
	maps  lipgloss.Style
}

// NewTerminalRenderer wraps markdown at width columns. An empty style picks
// one from the terminal background.
func NewTerminalRenderer(width int, style string, loc *time.Location) (*TerminalRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	md, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create markdown renderer: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	return &TerminalRenderer{
		md:    md,
		loc:   loc,
		user:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		guide: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		clock: lipgloss.NewStyle().Faint(true),
		web:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		maps:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Underline(true),
	}, nil
}

// RenderMessage returns the header line, the markdown body and, for model
// replies, one line per citation.
func (r *TerminalRenderer) RenderMessage(m model.Message) (string, error) {
	label := r.guide.Render("Guide")
	if m.Role == model.RoleUser {
		label = r.user.Render("You")
	}

	body, err := r.md.Render(m.Text)
	if err != nil {
		return "", fmt.Errorf("could not render message %s: %w", m.ID, err)
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(r.clock.Render(m.Timestamp.In(r.loc).Format("15:04")))
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")

	if m.Role != model.RoleModel || len(m.GroundingChunks) == 0 {
		return b.String(), nil
	}
	chips, err := chipsFor(m.GroundingChunks)
	if err != nil {
		return "", err
	}
	for _, c := range chips {
		style := r.web
		if c.Kind == chipMaps {
			style = r.maps
		}
		title := c.Title
		if title == "" {
			title = c.URI
		}
		fmt.Fprintf(&b, "  %s %s %s\n", c.Icon, style.Render(title), r.clock.Render(c.URI))
	}
	return b.String(), nil
}

// RenderQuickReplies lists the suggestions numbered from 1.
func (r *TerminalRenderer) RenderQuickReplies(replies []string) string {
	var b strings.Builder
	for i, text := range replies {
		fmt.Fprintf(&b, "  %s %s\n", r.clock.Render(fmt.Sprintf("/%d", i+1)), text)
	}
	return b.String()
}
