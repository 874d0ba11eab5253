package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// GroundingChunk is a citation attached to a model reply. The set of
// implementations is closed: WebChunk and MapsChunk.
type GroundingChunk interface {
	groundingChunk()
	// Link returns the citation target and its display title.
	Link() (uri, title string)
}

// WebChunk is a generic web citation.
type WebChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// MapsChunk is a location citation from the maps grounding tool.
type MapsChunk struct {
	URI                string              `json:"uri"`
	Title              string              `json:"title"`
	PlaceAnswerSources []PlaceAnswerSource `json:"placeAnswerSources,omitempty"`
}

// PlaceAnswerSource groups the review snippets backing a place answer.
type PlaceAnswerSource struct {
	ReviewSnippets []ReviewSnippet `json:"reviewSnippets"`
}

// ReviewSnippet is a single user review quoted by the maps tool.
type ReviewSnippet struct {
	ReviewText string `json:"reviewText"`
}

func (WebChunk) groundingChunk()  {}
func (MapsChunk) groundingChunk() {}

func (c WebChunk) Link() (string, string)  { return c.URI, c.Title }
func (c MapsChunk) Link() (string, string) { return c.URI, c.Title }

// ErrInvalidChunk is returned when a serialized chunk does not carry exactly one variant.
var ErrInvalidChunk = errors.New("grounding chunk must have exactly one of web or maps")

// GroundingChunks is an ordered list of citations with a tagged JSON form:
// each element is encoded as {"web": {...}} or {"maps": {...}}.
type GroundingChunks []GroundingChunk

type taggedChunk struct {
	Web  *WebChunk  `json:"web,omitempty"`
	Maps *MapsChunk `json:"maps,omitempty"`
}

func (c GroundingChunks) MarshalJSON() ([]byte, error) {
	out := make([]taggedChunk, 0, len(c))
	for i, chunk := range c {
		switch v := chunk.(type) {
		case WebChunk:
			out = append(out, taggedChunk{Web: &v})
		case MapsChunk:
			out = append(out, taggedChunk{Maps: &v})
		default:
			return nil, fmt.Errorf("grounding chunk %d: unsupported type %T", i, chunk)
		}
	}
	return json.Marshal(out)
}

func (c *GroundingChunks) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}
	var raw []taggedChunk
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	chunks := make(GroundingChunks, 0, len(raw))
	for i, t := range raw {
		switch {
		case t.Web != nil && t.Maps == nil:
			chunks = append(chunks, *t.Web)
		case t.Maps != nil && t.Web == nil:
			chunks = append(chunks, *t.Maps)
		default:
			return fmt.Errorf("grounding chunk %d: %w", i, ErrInvalidChunk)
		}
	}
	*c = chunks
	return nil
}
