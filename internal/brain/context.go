package brain

import (
	"fmt"
	"strings"

	"twiga.app/backend/internal/model"
)

// FormatContext renders retrieved chunks as prompt context. An optional
// header names the source resources; every chunk gets a heading locating it
// in its resource, followed by its content. Exercises follow the content.
func FormatContext(content, exercises []model.Chunk, resources []model.Resource) string {
	var parts []string

	switch len(resources) {
	case 0:
	case 1:
		parts = append(parts, fmt.Sprintf("### Context from the resource (%s)\n", resources[0].Name))
	default:
		titles := make([]string, len(resources))
		for i, r := range resources {
			titles[i] = fmt.Sprintf("%d. %s", r.ID, r.Name)
		}
		parts = append(parts, fmt.Sprintf("### Context from the resources (%s)\n", strings.Join(titles, ", ")))
	}

	chunks := make([]model.Chunk, 0, len(content)+len(exercises))
	chunks = append(chunks, content...)
	chunks = append(chunks, exercises...)
	for _, c := range chunks {
		parts = append(parts, chunkHeading(c), c.Content)
	}

	return strings.Join(parts, "\n")
}

func chunkHeading(c model.Chunk) string {
	title := deref(c.TopLevelSectionTitle)
	index := deref(c.TopLevelSectionIndex)
	switch {
	case title != "" && index != "":
		return fmt.Sprintf("-%s from chapter %s. %s in resource %d", c.ChunkType, index, title, c.ResourceID)
	case title != "":
		return fmt.Sprintf("-%s from section %s in resource %d", c.ChunkType, title, c.ResourceID)
	default:
		return fmt.Sprintf("-%s from resource %d", c.ChunkType, c.ResourceID)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
