package models

// BatchResult summarises a batch job run.
type BatchResult struct {
	ToProcess int `json:"toProcess"`
	Processed int `json:"processed"`
	Errors    int `json:"errors"`
	Emails    int `json:"emails,omitempty"`
	Messages  int `json:"messages,omitempty"`
}
