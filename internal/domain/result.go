package domain

// UploadResult is the payload returned for a submitted artifact.
// Either Message or Error is set; a payload with neither is an implicit success.
type UploadResult struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// QueryResult is the payload returned for a submitted question
type QueryResult struct {
	Answer         string `json:"answer,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
	Error          string `json:"error,omitempty"`
}
