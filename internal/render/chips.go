// Package render turns session messages into display output. Renderers only
// read messages; they never modify them.
package render

import (
	"fmt"

	"wanderlust/backend/internal/model"
)

type chipKind string

const (
	chipWeb  chipKind = "web"
	chipMaps chipKind = "maps"
)

type chip struct {
	Kind  chipKind
	URI   string
	Title string
	Icon  string
}

// chipsFor converts citations to chips. Every chunk type must be handled
// here; an unknown type is an error rather than a silently dropped citation.
func chipsFor(chunks model.GroundingChunks) ([]chip, error) {
	chips := make([]chip, 0, len(chunks))
	for i, c := range chunks {
		switch v := c.(type) {
		case model.MapsChunk:
			chips = append(chips, chip{Kind: chipMaps, URI: v.URI, Title: v.Title, Icon: "📍"})
		case model.WebChunk:
			chips = append(chips, chip{Kind: chipWeb, URI: v.URI, Title: v.Title, Icon: "🌐"})
		default:
			return nil, fmt.Errorf("grounding chunk %d: cannot render %T", i, c)
		}
	}
	return chips, nil
}
