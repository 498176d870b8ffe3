package list_facilities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/RentEase-BookingService/internal/api/handlers"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities"
	"github.com/m04kA/RentEase-BookingService/internal/service/facilities/models"
	"github.com/m04kA/RentEase-BookingService/pkg/ptr"
)

const (
	msgInvalidFilter = "некорректные параметры поиска"
)

type Handler struct {
	service FacilitiesService
	logger  Logger
}

func NewHandler(service FacilitiesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facilities?query=&location=&sport=&priceMin=&priceMax=&page=&perPage=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListFacilitiesRequest{
		Query:    query.Get("query"),
		Location: query.Get("location"),
		Sport:    query.Get("sport"),
	}

	if raw := query.Get("priceMin"); raw != "" {
		req.PriceMin = ptr.Ptr(raw)
	}
	if raw := query.Get("priceMax"); raw != "" {
		req.PriceMax = ptr.Ptr(raw)
	}
	if raw := query.Get("page"); raw != "" {
		req.Page, _ = strconv.Atoi(raw)
	}
	if raw := query.Get("perPage"); raw != "" {
		req.PerPage, _ = strconv.Atoi(raw)
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, facilities.ErrInvalidInput):
			h.logger.Warn("GET /facilities - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /facilities - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facilities - Found %d facilities (page=%d)", len(result.Facilities), result.Page)
	handlers.RespondJSON(w, http.StatusOK, result)
}
