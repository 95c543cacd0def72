package services

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the shape every submitted document must have: task id → list of
// question/answer pairs, where an answer is text or a list of records.
const documentSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "array",
		"items": {
			"type": "object",
			"required": ["question", "answer"],
			"properties": {
				"question": {"type": "string", "minLength": 1},
				"answer": {
					"oneOf": [
						{"type": "string"},
						{"type": "array", "items": {"type": "object", "additionalProperties": {"type": "string"}}}
					]
				}
			}
		}
	}
}`

var documentSchemaLoader = gojsonschema.NewStringLoader(documentSchema)

// BuildDocument rebuilds every stored page and collects its response, task by task in
// journey order. A stored page that no longer resolves fails the whole build with
// *form.UnknownPageError.
func BuildDocument(registry *form.Registry, artifact *models.Artifact) (models.Document, error) {
	doc := make(models.Document)
	seen := make(map[string]bool, len(artifact.Data))

	for _, section := range registry.Sections(artifact.Type) {
		for _, task := range section.Tasks {
			stored, ok := artifact.Data[task.ID]
			if !ok {
				continue
			}

			seen[task.ID] = true

			for _, pageID := range sortedKeys(stored) {
				if _, ok := task.Page(pageID); !ok {
					return nil, &form.UnknownPageError{PageID: pageID}
				}
			}

			entries := make([]models.QuestionAnswer, 0)

			for _, factory := range task.Pages {
				body, ok := stored[factory.Name]
				if !ok {
					continue
				}

				page, err := factory.New(form.BodyFrom(body).Clone(), artifact, "")
				if err != nil {
					return nil, fmt.Errorf("failed to build page %s/%s: %w", task.ID, factory.Name, err)
				}

				entries = append(entries, page.Response().Entries()...)
			}

			doc[task.ID] = entries
		}
	}

	for _, taskID := range sortedKeys(artifact.Data) {
		if seen[taskID] {
			continue
		}

		pages := sortedKeys(artifact.Data[taskID])
		pageID := taskID

		if len(pages) > 0 {
			pageID = pages[0]
		}

		return nil, &form.UnknownPageError{PageID: pageID}
	}

	return doc, nil
}

// ValidateDocument checks doc against the document schema.
func ValidateDocument(doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	result, err := gojsonschema.Validate(documentSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	return &DocumentError{Problems: problems}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
