package presenter

import (
	summaryDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ToSummaryResponse converts a Summary entity to its response DTO
func ToSummaryResponse(s *entities.Summary) *summaryDTO.SummaryResponse {
	if s == nil {
		return nil
	}
	return &summaryDTO.SummaryResponse{
		ID:         s.ID,
		Transcript: s.Transcript,
		Prompt:     s.Prompt,
		Generated:  s.Generated,
		Edited:     s.Edited,
		Model:      s.Model,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
