package generate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Draft is the JSON contract the model is asked to honor.
type Draft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ParseDraft decodes a model reply into a draft. Replies that wrap the JSON
// in prose or code fences are salvaged by extracting the outermost brace pair.
// Anything else is a malformed response and counts against the retry budget.
func ParseDraft(text string) (Draft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Draft{}, errors.New("malformed draft: empty reply")
	}

	var draft Draft
	if err := json.Unmarshal([]byte(text), &draft); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end <= start {
			return Draft{}, fmt.Errorf("malformed draft: %w", err)
		}
		if subErr := json.Unmarshal([]byte(text[start:end+1]), &draft); subErr != nil {
			return Draft{}, fmt.Errorf("malformed draft: %w", err)
		}
	}

	if strings.TrimSpace(draft.Subject) == "" || strings.TrimSpace(draft.Body) == "" {
		return Draft{}, errors.New("malformed draft: missing subject or body")
	}
	return draft, nil
}
