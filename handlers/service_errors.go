package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hireflow/talent-gateway/remote"
	"github.com/hireflow/talent-gateway/services/candidates"
	"github.com/hireflow/talent-gateway/utils"
)

// HandleServiceError maps service errors to HTTP responses following
// the thin handler pattern. Validation failures become 400 prompts
// caught before any network call happened; terminal backend failures
// become 502/404 with the best available message.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case utils.IsValidationError(err):
		details := map[string]interface{}{}
		for field, message := range utils.GetValidationFields(err) {
			details[field] = message
		}
		if writeErr := utils.WriteBadRequest(w, err.Error(), details); writeErr != nil {
			logger.Error("failed to write bad request response", zap.Error(writeErr))
		}

	case errors.Is(err, candidates.ErrUnknownStatus):
		if writeErr := utils.WriteBadRequest(w, err.Error(), nil); writeErr != nil {
			logger.Error("failed to write bad request response", zap.Error(writeErr))
		}

	case isNotFound(err):
		if writeErr := utils.WriteNotFound(w, remote.UserMessage(err)); writeErr != nil {
			logger.Error("failed to write not found response", zap.Error(writeErr))
		}

	default:
		// Terminal tier failure of a remote operation.
		logger.Error("backend operation failed", zap.Error(err))
		if writeErr := utils.WriteBadGateway(w, remote.UserMessage(err)); writeErr != nil {
			logger.Error("failed to write bad gateway response", zap.Error(writeErr))
		}
	}
}

func isNotFound(err error) bool {
	var callErr *remote.CallError
	return errors.As(err, &callErr) &&
		callErr.Kind == remote.KindStatus &&
		callErr.StatusCode == http.StatusNotFound
}
