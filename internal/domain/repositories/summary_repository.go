package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// SummaryRepository persists summary records. Implementations return
// entities.ErrSummaryNotFound when no record matches an id, including ids
// that are malformed for the underlying store.
type SummaryRepository interface {
	// Create inserts s and assigns its ID
	Create(ctx context.Context, s *entities.Summary) error
	GetByID(ctx context.Context, id string) (*entities.Summary, error)
	// UpdateEdited replaces the edited text and bumps updatedAt, returning
	// the record as stored after the update
	UpdateEdited(ctx context.Context, id, edited string, at time.Time) (*entities.Summary, error)
}
