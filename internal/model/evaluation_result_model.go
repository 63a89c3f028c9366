package model

// EvaluationResult is the compatibility report produced for a single CV / job description pair.
// Score is expected in 0-100 but is passed through as returned by the model.
type EvaluationResult struct {
	Score       float64 `json:"score"`
	Summary     string  `json:"summary"`
	Strengths   string  `json:"strengths"`
	Gaps        string  `json:"gaps"`
	Suggestions string  `json:"suggestions"`
}
