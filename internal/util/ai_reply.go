package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/cv-matcher/internal/model"
)

var (
	ErrMalformedJSON      = errors.New("malformed json")
	ErrIncompleteAnalysis = errors.New("incomplete analysis")
)

var (
	// opening fence, optional language hint, content, closing fence
	fencedBlockRe = regexp.MustCompile("(?s)^```[\\w+.-]*[ \\t]*\\r?\\n?(.*?)\\s*```$")
	leadingTicks  = regexp.MustCompile("^`{1,3}")
	trailingTicks = regexp.MustCompile("`{1,3}$")
)

// FieldViolation describes why one field of the reply was rejected.
type FieldViolation struct {
	Field  string
	Reason string
}

// ShapeError is returned when the reply parses as JSON but does not carry the expected fields.
type ShapeError struct {
	Violations []FieldViolation
}

func (e *ShapeError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}
	return fmt.Sprintf("incomplete analysis: %s", strings.Join(parts, "; "))
}

func (e *ShapeError) Unwrap() error { return ErrIncompleteAnalysis }

// StripCodeFence returns the JSON payload of an AI reply, removing a surrounding
// Markdown code fence if the whole reply is one. Backticks inside the payload are kept.
func StripCodeFence(reply string) string {
	cleaned := strings.TrimSpace(reply)
	if m := fencedBlockRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}
	cleaned = leadingTicks.ReplaceAllString(cleaned, "")
	cleaned = trailingTicks.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ParseEvaluation normalizes a raw AI reply and validates it into an EvaluationResult.
// Errors wrap ErrMalformedJSON when the payload is not JSON and ErrIncompleteAnalysis
// (as *ShapeError) when it is JSON of the wrong shape.
func ParseEvaluation(reply string) (*model.EvaluationResult, error) {
	cleaned := StripCodeFence(reply)

	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &ShapeError{Violations: []FieldViolation{{Field: "$", Reason: "expected an object"}}}
	}

	var violations []FieldViolation
	score, v := numberField(obj, "score")
	violations = appendViolation(violations, v)
	summary, v := stringField(obj, "summary")
	violations = appendViolation(violations, v)
	strengths, v := stringField(obj, "strengths")
	violations = appendViolation(violations, v)
	gaps, v := stringField(obj, "gaps")
	violations = appendViolation(violations, v)
	suggestions, v := stringField(obj, "suggestions")
	violations = appendViolation(violations, v)

	if len(violations) > 0 {
		return nil, &ShapeError{Violations: violations}
	}

	return &model.EvaluationResult{
		Score:       score,
		Summary:     summary,
		Strengths:   strengths,
		Gaps:        gaps,
		Suggestions: suggestions,
	}, nil
}

func appendViolation(list []FieldViolation, v *FieldViolation) []FieldViolation {
	if v == nil {
		return list
	}
	return append(list, *v)
}

func numberField(obj map[string]any, name string) (float64, *FieldViolation) {
	raw, present := obj[name]
	switch {
	case !present:
		return 0, &FieldViolation{Field: name, Reason: "missing"}
	case raw == nil:
		return 0, &FieldViolation{Field: name, Reason: "null"}
	}
	n, ok := raw.(float64)
	if !ok {
		return 0, &FieldViolation{Field: name, Reason: fmt.Sprintf("expected number, got %s", jsonKind(raw))}
	}
	return n, nil
}

func stringField(obj map[string]any, name string) (string, *FieldViolation) {
	raw, present := obj[name]
	switch {
	case !present:
		return "", &FieldViolation{Field: name, Reason: "missing"}
	case raw == nil:
		return "", &FieldViolation{Field: name, Reason: "null"}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &FieldViolation{Field: name, Reason: fmt.Sprintf("expected string, got %s", jsonKind(raw))}
	}
	return s, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
