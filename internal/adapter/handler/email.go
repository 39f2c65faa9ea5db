package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	emailDTO "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/email"
	emailuse "github.com/johnquangdev/meeting-summarizer/internal/usecase/email"
)

// Email handles outbound email
type Email struct {
	svc    emailuse.Service
	logger *zap.Logger
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(svc emailuse.Service, logger *zap.Logger) *Email {
	return &Email{svc: svc, logger: logger}
}

// Send emails a summary to one or more recipients
// @Summary      Send summary by email
// @Description  Sends the body as plain text with an HTML alternative. "to" accepts a comma-separated string or a list.
// @Tags         Email
// @Accept       json
// @Produce      json
// @Param        request  body      emailDTO.SendRequest  true  "Recipients, subject and body"
// @Success      200      {object}  emailDTO.SendResponse
// @Failure      400      {object}  common.ErrorResponse  "Missing or invalid recipients or body"
// @Failure      500      {object}  common.ErrorResponse  "Delivery failure"
// @Router       /api/email/send [post]
func (h *Email) Send(c echo.Context) error {
	var req emailDTO.SendRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingEmailFields())
	}

	info, err := h.svc.Send(c.Request().Context(), emailuse.SendInput{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, emailDTO.SendResponse{OK: true, Info: info})
}
