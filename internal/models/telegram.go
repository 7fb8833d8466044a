package models

// UploadResult holds the result of a sendDocument call.
type UploadResult struct {
	Uploaded    bool
	StatusCode  int
	Body        string
	Description string // Bot API error description, if the body carried one
	Error       error
}
