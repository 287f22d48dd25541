package schema

import (
	"fmt"
	"strings"
)

type QuestionType string

const (
	QuestionTypeText     QuestionType = "text"
	QuestionTypeNumber   QuestionType = "number"
	QuestionTypeDropdown QuestionType = "dropdown"
)

// Question is a single dynamically defined form question.
// Options are meaningful only for dropdown questions and are ignored otherwise.
type Question struct {
	ID      string
	Label   string
	Type    QuestionType
	Options []string
}

// Schema is the ordered question set owned by a form. Question IDs are unique
// within one schema. A schema is immutable once submissions reference it;
// editing a form never revalidates existing submissions.
type Schema []Question

func (s Schema) Question(id string) (Question, bool) {
	for _, question := range s {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// ParseQuestions checks a form definition before it is accepted: every
// question needs a non-empty unique id, a known type, and dropdowns need at
// least one option.
func ParseQuestions(questions []Question) (Schema, error) {
	seen := make(map[string]struct{}, len(questions))
	parsed := make(Schema, 0, len(questions))
	for index, question := range questions {
		id := strings.TrimSpace(question.ID)
		if id == "" {
			return nil, fmt.Errorf("question %d: id is required", index)
		}
		if _, duplicate := seen[id]; duplicate {
			return nil, fmt.Errorf("question %q: duplicate id", id)
		}
		seen[id] = struct{}{}

		switch question.Type {
		case QuestionTypeText, QuestionTypeNumber:
		case QuestionTypeDropdown:
			if len(question.Options) == 0 {
				return nil, fmt.Errorf("question %q: dropdown requires options", id)
			}
		default:
			return nil, fmt.Errorf("question %q: unknown type %q", id, question.Type)
		}

		parsed = append(parsed, Question{
			ID:      id,
			Label:   strings.TrimSpace(question.Label),
			Type:    question.Type,
			Options: append([]string(nil), question.Options...),
		})
	}
	return parsed, nil
}
