package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type FieldErrorCode string

const (
	FieldErrorMissingRequired FieldErrorCode = "missing_required_field"
	FieldErrorInvalidOption   FieldErrorCode = "invalid_option_value"
	FieldErrorTypeMismatch    FieldErrorCode = "type_mismatch"
)

type FieldError struct {
	QuestionID string
	Code       FieldErrorCode
	Value      any
}

func (e FieldError) Error() string {
	switch e.Code {
	case FieldErrorMissingRequired:
		return fmt.Sprintf("question %q: answer is required", e.QuestionID)
	case FieldErrorInvalidOption:
		return fmt.Sprintf("question %q: %v is not an allowed option", e.QuestionID, e.Value)
	case FieldErrorTypeMismatch:
		return fmt.Sprintf("question %q: %v is not a number", e.QuestionID, e.Value)
	default:
		return fmt.Sprintf("question %q: invalid answer", e.QuestionID)
	}
}

// ValidationError aggregates every field error for one validation pass so a
// caller can present the complete correction list in a single response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		messages = append(messages, field.Error())
	}
	return "answers rejected: " + strings.Join(messages, "; ")
}

// Value is a validated, typed answer for one question.
type Value struct {
	Kind   QuestionType
	Text   string
	Number float64
	Option string
}

// ValidatedAnswers is the result of a successful validation pass. Raw keeps
// the answer snapshot exactly as submitted, which is what gets persisted and
// dispatched; Values carries the per-question typed interpretation.
type ValidatedAnswers struct {
	Raw    map[string]any
	Values map[string]Value
}

// ValidateAnswers checks an answer payload against a schema. It is a pure
// function: every question must be present, dropdown answers must be drawn
// from the question's options, and number answers must be numerically
// interpretable. Keys not covered by the schema are ignored. All failures are
// collected and returned together as a *ValidationError.
func ValidateAnswers(formSchema Schema, answers map[string]any) (ValidatedAnswers, error) {
	var fields []FieldError
	values := make(map[string]Value, len(formSchema))

	for _, question := range formSchema {
		raw, present := answers[question.ID]
		if !present {
			fields = append(fields, FieldError{
				QuestionID: question.ID,
				Code:       FieldErrorMissingRequired,
			})
			continue
		}

		switch question.Type {
		case QuestionTypeNumber:
			number, ok := asNumber(raw)
			if !ok {
				fields = append(fields, FieldError{
					QuestionID: question.ID,
					Code:       FieldErrorTypeMismatch,
					Value:      raw,
				})
				continue
			}
			values[question.ID] = Value{Kind: QuestionTypeNumber, Number: number}
		case QuestionTypeDropdown:
			option, ok := raw.(string)
			if !ok || !containsOption(question.Options, option) {
				fields = append(fields, FieldError{
					QuestionID: question.ID,
					Code:       FieldErrorInvalidOption,
					Value:      raw,
				})
				continue
			}
			values[question.ID] = Value{Kind: QuestionTypeDropdown, Option: option}
		default:
			values[question.ID] = Value{Kind: QuestionTypeText, Text: fmt.Sprint(raw)}
		}
	}

	if len(fields) > 0 {
		return ValidatedAnswers{}, &ValidationError{Fields: fields}
	}

	snapshot := make(map[string]any, len(answers))
	for key, value := range answers {
		snapshot[key] = value
	}
	return ValidatedAnswers{Raw: snapshot, Values: values}, nil
}

func asNumber(raw any) (float64, bool) {
	switch value := raw.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		parsed, err := value.Float64()
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func containsOption(options []string, candidate string) bool {
	for _, option := range options {
		if option == candidate {
			return true
		}
	}
	return false
}
