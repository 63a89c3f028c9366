package dto

// UploadedDocument is a PDF that already passed the upload gate.
type UploadedDocument struct {
	Field    string
	Filename string
	Data     []byte
}

// Labels used in user facing messages.
const (
	FieldCV             = "cv"
	FieldJobDescription = "job_description"
)

func Label(field string) string {
	switch field {
	case FieldCV:
		return "CV"
	case FieldJobDescription:
		return "job description"
	default:
		return field
	}
}
