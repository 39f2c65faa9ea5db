package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository backed by GORM
func NewSummaryRepository(db *gorm.DB) repo.SummaryRepository {
	return &summaryRepository{db: db}
}

// Create inserts a new summary, assigning a UUID when none is set
func (r *summaryRepository) Create(ctx context.Context, s *entities.Summary) error {
	if s == nil {
		return errors.New("summary cannot be nil")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

// GetByID retrieves a summary by ID
func (r *summaryRepository) GetByID(ctx context.Context, id string) (*entities.Summary, error) {
	var s entities.Summary
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSummaryNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateEdited sets edited/updated_at in one statement and reads the row
// back through RETURNING
func (r *summaryRepository) UpdateEdited(ctx context.Context, id, edited string, at time.Time) (*entities.Summary, error) {
	var s entities.Summary
	res := r.db.WithContext(ctx).
		Model(&s).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"edited":     edited,
			"updated_at": at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, entities.ErrSummaryNotFound
	}
	return &s, nil
}
