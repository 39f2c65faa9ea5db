package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	summaryDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/presenter"
	summaryuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/summary"
)

// Summary handles summary generation, saving and retrieval
type Summary struct {
	svc    summaryuse.Service
	logger *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(svc summaryuse.Service, logger *zap.Logger) *Summary {
	return &Summary{svc: svc, logger: logger}
}

// Generate produces a summary from a transcript and stores it
// @Summary      Generate summary
// @Description  Calls the completion provider with the transcript and optional instruction, then stores the result
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request  body      summaryDTO.GenerateRequest   true  "Transcript and instruction"
// @Success      200      {object}  summaryDTO.GenerateResponse
// @Failure      400      {object}  common.ErrorResponse  "Malformed JSON"
// @Failure      500      {object}  common.ErrorResponse  "Provider or store failure"
// @Router       /api/ai/generate [post]
func (h *Summary) Generate(c echo.Context) error {
	var req summaryDTO.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	out, err := h.svc.Generate(c.Request().Context(), summaryuse.GenerateInput{
		Transcript: req.Transcript,
		Prompt:     req.Prompt,
	})
	if err != nil {
		if out != nil {
			return HandleGenerateError(h.logger, c, err, out.Generated)
		}
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, summaryDTO.GenerateResponse{
		OK:        true,
		SummaryID: out.SummaryID,
		Generated: out.Generated,
	})
}

// Save stores the user's edit of a summary
// @Summary      Save edited summary
// @Description  Replaces the edited text of a stored summary and bumps updatedAt
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request  body      summaryDTO.SaveRequest  true  "Summary ID and edited text"
// @Success      200      {object}  summaryDTO.DocResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing summaryId"
// @Failure      404      {object}  common.ErrorResponse  "Summary not found"
// @Failure      500      {object}  common.ErrorResponse  "Store failure"
// @Router       /api/ai/save [post]
func (h *Summary) Save(c echo.Context) error {
	var req summaryDTO.SaveRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingSummaryID())
	}

	doc, err := h.svc.Save(c.Request().Context(), req.SummaryID, req.Edited)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, summaryDTO.DocResponse{
		OK:  true,
		Doc: presenter.ToSummaryResponse(doc),
	})
}

// Get returns a stored summary
// @Summary      Get summary
// @Tags         AI
// @Produce      json
// @Param        id   path      string  true  "Summary ID"
// @Success      200  {object}  summaryDTO.DocResponse
// @Failure      404  {object}  common.ErrorResponse  "Summary not found"
// @Failure      500  {object}  common.ErrorResponse  "Store failure"
// @Router       /api/ai/{id} [get]
func (h *Summary) Get(c echo.Context) error {
	doc, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, summaryDTO.DocResponse{
		OK:  true,
		Doc: presenter.ToSummaryResponse(doc),
	})
}
