package adaptor

import (
	"errors"
	"net/http"

	"github.com/khmelm/api-yamdb/internal/usecase"
	"github.com/khmelm/api-yamdb/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError memetakan error class dari usecase ke status HTTP.
// Duplicate review dan review/title mismatch dilaporkan 400, bukan 404.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, usecase.ErrInvalidCode),
		errors.Is(err, usecase.ErrDuplicateReview),
		errors.Is(err, usecase.ErrReviewTitleMismatch),
		errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
