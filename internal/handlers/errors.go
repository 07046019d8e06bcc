package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SscSPs/savings_ledger/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Parameter string `json:"parameter,omitempty"`
	Value     any    `json:"value,omitempty"`
	EntityID  string `json:"entityId,omitempty"`
}

// useJSONFieldNames makes validator report fields by their json tag, so
// binding failures name the request parameter the client actually sent.
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
}

// bindingError converts a ShouldBind failure into a validation error for the first offending field.
func bindingError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewValidationError(fe.Field(), fe.Value(), "failed the '"+fe.Tag()+"' rule")
	}
	return apperrors.NewValidationError("body", nil, "invalid request format: "+err.Error())
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrCalendarViolation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotActive),
		errors.Is(err, apperrors.ErrAlreadyReversed),
		errors.Is(err, apperrors.ErrTransferLinked),
		errors.Is(err, apperrors.ErrNegativeBalance),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 600 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Server errors hide their cause behind fallback.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, errorResponse{Error: fallback})
		return
	}

	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	resp := errorResponse{Error: err.Error()}
	if de, ok := apperrors.AsDomainError(err); ok {
		resp.Error = de.Message
		resp.Code = de.Code
		resp.Parameter = de.Parameter
		resp.Value = de.Value
		resp.EntityID = de.EntityID
	}
	c.JSON(status, resp)
}
