package handlers

import (
	"errors"
	"net/http"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models/task"

	"go.uber.org/zap"
)

// handleValidationError переводит доменную ошибку валидации в 400-ответ.
// Возвращает false, если ошибка другого рода.
func handleValidationError(w http.ResponseWriter, err error) bool {
	var validationErr *task.ValidationError
	if !errors.As(err, &validationErr) {
		return false
	}

	logger.Warn("HTTP: Ошибка валидации",
		zap.String("field", validationErr.Field),
		zap.String("reason", validationErr.Reason))

	responseWithJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "VALIDATION_ERROR",
		"field":  validationErr.Field,
		"reason": validationErr.Reason,
	})
	return true
}
