package summary

import (
	"context"
	stdErrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	domainrepo "github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/metrics"
	pkgai "github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// Service generates, saves and fetches summaries
type Service interface {
	// Generate calls the completion provider and stores the result. When the
	// provider succeeds but the store fails, the output still carries the
	// generated text (without an ID) next to the error.
	Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error)
	Save(ctx context.Context, id, edited string) (*entities.Summary, error)
	GetByID(ctx context.Context, id string) (*entities.Summary, error)
}

// GenerateInput is the user's transcript and optional instruction
type GenerateInput struct {
	Transcript string
	Prompt     string
}

// GenerateOutput is the stored record's ID and the generated text
type GenerateOutput struct {
	SummaryID string
	Generated string
}

// Option configures the service
type Option func(*summaryService)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *summaryService) {
		s.now = now
	}
}

type summaryService struct {
	repo      domainrepo.SummaryRepository
	completer pkgai.Completer
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

// NewSummaryService constructs a new summary service
func NewSummaryService(
	repo domainrepo.SummaryRepository,
	completer pkgai.Completer,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts ...Option,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &summaryService{
		repo:      repo,
		completer: completer,
		metrics:   m,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *summaryService) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	messages := BuildMessages(in.Transcript, in.Prompt)

	started := time.Now()
	completion, err := s.completer.Complete(ctx, messages)
	if err != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeUpstreamError)
		s.logger.Error("summary.generate.provider_failed",
			zap.String("model", s.completer.Model()),
			zap.Error(err),
		)
		return nil, errors.ErrAISummaryFailed(err)
	}
	s.metrics.ObserveCompletion(time.Since(started), completion.PromptTokens, completion.CompletionTokens)

	model := completion.Model
	if model == "" {
		model = s.completer.Model()
	}
	record := entities.NewSummary(in.Transcript, in.Prompt, completion.Text, model, s.now())
	if err := s.repo.Create(ctx, record); err != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeStoreError)
		s.logger.Error("summary.generate.store_failed", zap.Error(err))
		return &GenerateOutput{Generated: completion.Text}, errors.ErrDBQueryFailed("insert summary", err)
	}

	s.metrics.ObserveGeneration(metrics.OutcomeSuccess)
	s.logger.Info("summary.generate.success",
		zap.String("summary_id", record.ID),
		zap.String("model", model),
		zap.Bool("custom_prompt", strings.TrimSpace(in.Prompt) != ""),
	)
	return &GenerateOutput{SummaryID: record.ID, Generated: completion.Text}, nil
}

func (s *summaryService) Save(ctx context.Context, id, edited string) (*entities.Summary, error) {
	if strings.TrimSpace(id) == "" {
		s.metrics.ObserveSave(metrics.OutcomeInvalid)
		return nil, errors.ErrMissingSummaryID()
	}

	doc, err := s.repo.UpdateEdited(ctx, id, edited, s.now())
	if err != nil {
		if stdErrors.Is(err, entities.ErrSummaryNotFound) {
			s.metrics.ObserveSave(metrics.OutcomeInvalid)
			return nil, errors.ErrSummaryNotFound(id)
		}
		s.metrics.ObserveSave(metrics.OutcomeStoreError)
		return nil, errors.ErrDBQueryFailed("update summary", err)
	}

	s.metrics.ObserveSave(metrics.OutcomeSuccess)
	return doc, nil
}

func (s *summaryService) GetByID(ctx context.Context, id string) (*entities.Summary, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.ErrSummaryNotFound(id)
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSummaryNotFound) {
			return nil, errors.ErrSummaryNotFound(id)
		}
		return nil, errors.ErrDBQueryFailed("get summary", err)
	}
	return doc, nil
}
