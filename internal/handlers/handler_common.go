package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/bank_api/internal/apperrors"
	"github.com/SscSPs/bank_api/internal/core/domain"
	"github.com/SscSPs/bank_api/internal/dto"
	"github.com/SscSPs/bank_api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindRequest decodes the JSON body into req. A malformed body or a missing
// field is answered with 400 and false is returned.
func bindRequest(c *gin.Context, req any, operation string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: describeBindError(err)})
		return false
	}
	return true
}

func describeBindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return fmt.Sprintf("Missing required field(s): %s", strings.Join(fields, ", "))
	}
	return "Invalid request format: " + err.Error()
}

// respondStatus writes the engine outcome. Outcomes always travel with HTTP 200;
// the application code lives in the body.
func respondStatus(c *gin.Context, username string, status domain.Status) {
	if status.Succeeded() {
		middleware.SetUsername(c, username)
	}
	c.JSON(http.StatusOK, dto.ToStatusResponse(status))
}

// respondError maps a rejected amount to a 400 and any other failure to a 500.
func respondError(c *gin.Context, err error, operation string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Rejected request", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Amount would take a balance out of range"})
		return
	}
	if errors.Is(err, apperrors.ErrBankAccountMissing) {
		logger.Error("BANK account is not registered", slog.String("operation", operation))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "BANK account is not registered"})
		return
	}
	logger.Error("Operation failed", slog.String("operation", operation), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fmt.Sprintf("Failed to %s", operation)})
}
