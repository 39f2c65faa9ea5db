package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/common"
)

// getRequestID reads X-Request-ID from the request, falling back to the one
// the RequestID middleware set on the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes body with 200 OK using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, body interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}
	return c.JSON(http.StatusOK, body)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	return renderError(logger, c, err, common.ErrorResponse{})
}

// HandleGenerateError renders err while still handing back text that was
// generated before the failure
func HandleGenerateError(logger *zap.Logger, c echo.Context, err error, generated string) error {
	return renderError(logger, c, err, common.ErrorResponse{Generated: generated})
}

func renderError(logger *zap.Logger, c echo.Context, err error, body common.ErrorResponse) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Stringer("app_code", appErr.Code),
			zap.Error(err),
		}
		if len(appErr.Details) > 0 {
			fields = append(fields, zap.Any("details", appErr.Details))
		}
		logger.Error("http.response.error", fields...)
	}

	body.OK = false
	body.Error = appErr.Message
	body.Code = appErr.Code
	if appErr.Raw != nil {
		body.Info = appErr.Raw.Error()
	}

	status := appErr.HTTPCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, body)
}

// NewHTTPErrorHandler renders errors raised outside the handlers (unmatched
// routes, body limit, recovered panics) with the same envelope HandleError uses
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if stdErrors.As(err, &httpErr) {
			err = errors.FromHTTPError(httpErr.Code, http.StatusText(httpErr.Code), err)
		}

		if rerr := HandleError(logger, c, err); rerr != nil && logger != nil {
			logger.Error("http.response.write_failed", zap.Error(rerr))
		}
	}
}
