package model

type FailureKind string

const (
	FailureNone               FailureKind = "none"
	FailureUploadRejected     FailureKind = "upload_rejected"
	FailureExtraction         FailureKind = "extraction_failed"
	FailureServiceUnavailable FailureKind = "service_unavailable"
	FailureEmptyResponse      FailureKind = "empty_response"
	FailureMalformedJSON      FailureKind = "malformed_json"
	FailureIncompleteAnalysis FailureKind = "incomplete_analysis"
)

// User-facing messages. Keep them stable, the frontend matches on ok/message only.
const (
	MessageSuccess            = "Evaluation completed"
	MessageServiceUnavailable = "The AI service is currently unavailable, please try again in a moment"
	MessageEmptyResponse      = "The AI service returned an empty response"
	MessageMalformedJSON      = "The AI service returned malformed JSON"
	MessageIncompleteAnalysis = "The AI service returned an incomplete analysis"
)
