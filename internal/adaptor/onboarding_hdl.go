package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"go.uber.org/zap"
)

type OnboardingHandler struct {
	service usecase.OnboardingService
	log     *zap.Logger
}

func NewOnboardingHandler(service usecase.OnboardingService, log *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		service: service,
		log:     log.With(zap.String("handler", "onboarding")),
	}
}

// CompleteClient handles POST /api/onboarding/client (customer, identity only)
func (h *OnboardingHandler) CompleteClient(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ClientOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	customer, err := h.service.CompleteClient(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "complete client onboarding")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// CompleteProvider handles POST /api/provider/onboarding (provider, identity only)
func (h *OnboardingHandler) CompleteProvider(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.ProviderOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	provider, err := h.service.CompleteProvider(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "complete provider onboarding")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// GetProviderProfile handles GET /api/provider/profile (provider, identity only)
func (h *OnboardingHandler) GetProviderProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	profile, err := h.service.GetProviderProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "get provider profile")
		return
	}

	utils.ResponseSuccess(w, "success", profile)
}

func (h *OnboardingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
