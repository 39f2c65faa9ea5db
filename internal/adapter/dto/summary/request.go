package summary

// GenerateRequest represents the request to generate a summary
type GenerateRequest struct {
	Transcript string `json:"transcript" example:"Alice: let's ship on Friday."`
	Prompt     string `json:"prompt" example:"Summarize in bullet points for executives"`
}

// SaveRequest represents the request to save an edited summary. Edited may
// be empty; only the summary ID is required.
type SaveRequest struct {
	SummaryID string `json:"summaryId" validate:"notblank" example:"3f1b2c4d-5e6f-4a1b-9c2d-7e8f9a0b1c2d"`
	Edited    string `json:"edited"`
}
