package entities

import (
	"time"
)

// Summary is one summarization request: the input transcript and prompt,
// the raw provider output and the user's edited copy of it.
type Summary struct {
	ID         string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	Transcript string    `json:"transcript" gorm:"type:text;not null"`
	Prompt     string    `json:"prompt" gorm:"type:text;not null"`
	Generated  string    `json:"generated" gorm:"type:text;not null"`
	Edited     string    `json:"edited" gorm:"type:text;not null"`
	Model      string    `json:"model,omitempty" gorm:"type:varchar(100)"`
	CreatedAt  time.Time `json:"createdAt" gorm:"not null"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

// NewSummary creates a summary whose edited text starts out equal to the
// generated text. The ID is assigned by the store on insert.
func NewSummary(transcript, prompt, generated, model string, now time.Time) *Summary {
	return &Summary{
		Transcript: transcript,
		Prompt:     prompt,
		Generated:  generated,
		Edited:     generated,
		Model:      model,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
