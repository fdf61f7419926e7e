package list_blocks

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/BMP-BookingService/internal/api/handlers"
	"github.com/m04kA/BMP-BookingService/internal/api/middleware"
	"github.com/m04kA/BMP-BookingService/internal/service/blocks"
	"github.com/m04kA/BMP-BookingService/internal/service/blocks/models"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidFrom       = "некорректный формат параметра from, ожидается RFC 3339"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/blocks
// Query params: from (опционально, RFC 3339 - только блоки, заканчивающиеся после этого момента)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем businessId из URL
	vars := mux.Vars(r)
	businessIDStr := vars["businessId"]

	businessID, err := strconv.ParseInt(businessIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/blocks - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /businesses/{id}/blocks - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем from из query параметров (опционально)
	var fromPtr *time.Time
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/blocks - Invalid from param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		fromPtr = &from
	}

	// Получаем блоки (сервис проверит права менеджера)
	result, err := h.service.List(r.Context(), &models.ListBlocksRequest{
		UserID:     userID,
		BusinessID: businessID,
		From:       fromPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/blocks - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("GET /businesses/{id}/blocks - Access denied: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /businesses/{id}/blocks - Failed to list blocks: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/blocks - Blocks retrieved successfully: business_id=%d, user_id=%d, count=%d",
		businessID, userID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
