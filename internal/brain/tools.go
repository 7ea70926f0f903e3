package brain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/invopop/jsonschema"

	"twiga.app/backend/common/llm"
	"twiga.app/backend/internal/model"
)

const (
	ToolSearchKnowledge  = "search_knowledge"
	ToolGenerateExercise = "generate_exercise"
)

// ClassID accepts both 4 and "4"; smaller models often quote integers in
// tool arguments.
type ClassID int64

func (c *ClassID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("class_id must be an integer: %w", err)
	}
	*c = ClassID(v)
	return nil
}

type SearchKnowledgeParams struct {
	SearchPhrase string  `json:"search_phrase" jsonschema:"required,description=A message describing the information you are looking for."`
	ClassID      ClassID `json:"class_id" jsonschema:"required,description=The class id of the course the question should be based on."`
}

type GenerateExerciseParams struct {
	Query   string  `json:"query" jsonschema:"required,description=A short message describing the desired question or exercise and the topic it should be about. Request just one question."`
	ClassID ClassID `json:"class_id" jsonschema:"required,description=The class id of the course the question should be based on."`
	Subject string  `json:"subject" jsonschema:"required,description=The subject of the course the question should be based on."`
}

type toolSpec struct {
	name        string
	description string
	schema      *jsonschema.Schema
}

// baseTools is never handed out directly; ToolsFor patches copies.
var baseTools = []toolSpec{
	{
		name:        ToolSearchKnowledge,
		description: "Get relevant information from the knowledge base.",
		schema:      llm.GenerateSchemaFrom(SearchKnowledgeParams{}),
	},
	{
		name:        ToolGenerateExercise,
		description: "Generate a single question for the students based on course literature",
		schema:      llm.GenerateSchemaFrom(GenerateExerciseParams{}),
	},
}

// ToolsFor returns the tool definitions for a teacher, with each class_id
// parameter restricted to the given classes and described by a JSON map of
// class name to ID. No classes means no tools.
func ToolsFor(classes []model.Class) ([]llm.Tool, error) {
	if len(classes) == 0 {
		return nil, nil
	}

	available := make(map[string]int64, len(classes))
	ids := make([]any, 0, len(classes))
	for _, c := range classes {
		available[classLabel(c)] = c.ID
		ids = append(ids, c.ID)
	}
	availableJSON, err := json.Marshal(available)
	if err != nil {
		return nil, fmt.Errorf("encoding available classes: %w", err)
	}

	tools := make([]llm.Tool, 0, len(baseTools))
	for _, def := range baseTools {
		params, err := llm.SchemaMap(def.schema)
		if err != nil {
			return nil, fmt.Errorf("copying %s schema: %w", def.name, err)
		}

		if props, ok := params["properties"].(map[string]any); ok {
			if classID, ok := props["class_id"].(map[string]any); ok {
				classID["description"] = "The class ID for the course. Available classes: " + string(availableJSON)
				classID["enum"] = ids
			}
		}

		tools = append(tools, llm.Tool{
			Name:        def.name,
			Description: def.description,
			Parameters:  params,
		})
	}
	return tools, nil
}

func classLabel(c model.Class) string {
	if c.Name != "" {
		return c.Name
	}
	return c.SubjectName + " " + c.GradeLevel.Display()
}
