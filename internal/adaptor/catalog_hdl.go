package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Princeyelab/GlamgoYelab-sub005/internal/dto/request"
	"github.com/Princeyelab/GlamgoYelab-sub005/internal/usecase"
	"github.com/Princeyelab/GlamgoYelab-sub005/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListProviders handles GET /api/providers (public)
func (h *CatalogHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	providers, err := h.service.ListProviders(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list providers")
		return
	}

	utils.ResponseSuccess(w, "success", providers)
}

// GetProvider handles GET /api/providers/{id} (public)
func (h *CatalogHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")
	if providerID == "" {
		utils.ResponseBadRequest(w, "Provider ID is required", nil)
		return
	}

	provider, err := h.service.GetProvider(r.Context(), providerID)
	if err != nil {
		h.handleServiceError(w, err, "get provider")
		return
	}

	utils.ResponseSuccess(w, "success", provider)
}

// GetProviderServices handles GET /api/providers/{id}/services (public)
func (h *CatalogHandler) GetProviderServices(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "id")
	if providerID == "" {
		utils.ResponseBadRequest(w, "Provider ID is required", nil)
		return
	}

	services, err := h.service.GetProviderServices(r.Context(), providerID)
	if err != nil {
		h.handleServiceError(w, err, "get provider services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

// CreateService handles POST /api/provider/services (provider)
func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.CreateService(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create service")
		return
	}

	utils.ResponseCreated(w, "success", service)
}

// UpdateService handles PUT /api/provider/services/{id} (provider)
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	serviceID := chi.URLParam(r, "id")
	if serviceID == "" {
		utils.ResponseBadRequest(w, "Service ID is required", nil)
		return
	}

	var req request.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	service, err := h.service.UpdateService(r.Context(), userID, serviceID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update service")
		return
	}

	utils.ResponseSuccess(w, "success", service)
}

// ListOwnServices handles GET /api/provider/services (provider)
func (h *CatalogHandler) ListOwnServices(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	services, err := h.service.ListOwnServices(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err, "list own services")
		return
	}

	utils.ResponseSuccess(w, "success", services)
}

func (h *CatalogHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
