package summary

import "time"

// SummaryResponse is the stored summary record as exposed by the API
type SummaryResponse struct {
	ID         string    `json:"id"`
	Transcript string    `json:"transcript"`
	Prompt     string    `json:"prompt"`
	Generated  string    `json:"generated"`
	Edited     string    `json:"edited"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GenerateResponse is returned after a successful generation
type GenerateResponse struct {
	OK        bool   `json:"ok"`
	SummaryID string `json:"summaryId"`
	Generated string `json:"generated"`
}

// DocResponse wraps a single summary record
type DocResponse struct {
	OK  bool             `json:"ok"`
	Doc *SummaryResponse `json:"doc"`
}
