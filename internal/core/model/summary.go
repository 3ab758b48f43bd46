package model

// EgoSummary is the JSON object the summary prompt asks the LLM for.
type EgoSummary struct {
	Summary string `json:"summary"`
}
