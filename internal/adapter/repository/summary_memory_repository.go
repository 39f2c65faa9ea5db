package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	repo "github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

// MemorySummaryRepository keeps summaries in process memory. Records are
// copied on the way in and out so callers never share state with the store.
type MemorySummaryRepository struct {
	mu    sync.RWMutex
	items map[string]entities.Summary
}

var _ repo.SummaryRepository = (*MemorySummaryRepository)(nil)

// NewMemorySummaryRepository creates an empty in-memory repository
func NewMemorySummaryRepository() *MemorySummaryRepository {
	return &MemorySummaryRepository{
		items: make(map[string]entities.Summary),
	}
}

// Create stores a copy of s under a fresh UUID
func (m *MemorySummaryRepository) Create(_ context.Context, s *entities.Summary) error {
	if s == nil {
		return errors.New("summary cannot be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	m.items[s.ID] = *s
	return nil
}

// GetByID returns a copy of the stored summary
func (m *MemorySummaryRepository) GetByID(_ context.Context, id string) (*entities.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, exists := m.items[id]
	if !exists {
		return nil, entities.ErrSummaryNotFound
	}
	return &item, nil
}

// UpdateEdited replaces the edited text. updatedAt never moves backwards or
// repeats, even when the clock has not advanced between two saves.
func (m *MemorySummaryRepository) UpdateEdited(_ context.Context, id, edited string, at time.Time) (*entities.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, exists := m.items[id]
	if !exists {
		return nil, entities.ErrSummaryNotFound
	}
	if !at.After(item.UpdatedAt) {
		at = item.UpdatedAt.Add(time.Microsecond)
	}
	item.Edited = edited
	item.UpdatedAt = at
	m.items[id] = item
	return &item, nil
}

// Len reports how many summaries are stored
func (m *MemorySummaryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
