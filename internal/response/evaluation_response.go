package response

import "github.com/fadilmartias/cv-matcher/internal/model"

// EvaluationResponse is the envelope returned for every evaluation, successful or not.
// Result is null whenever OK is false.
type EvaluationResponse struct {
	OK      bool                    `json:"ok"`
	Message string                  `json:"message"`
	Result  *model.EvaluationResult `json:"result"`

	Kind model.FailureKind `json:"-"`
}

func Success(result *model.EvaluationResult) EvaluationResponse {
	return EvaluationResponse{OK: true, Message: model.MessageSuccess, Result: result, Kind: model.FailureNone}
}

func Failure(kind model.FailureKind, message string) EvaluationResponse {
	return EvaluationResponse{OK: false, Message: message, Kind: kind}
}
