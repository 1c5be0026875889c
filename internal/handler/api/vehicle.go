package api

import (
	"errors"
	"net/http"
	"strconv"

	resdto "exechire/internal/handler/dto/response"
	"exechire/internal/handler/httperr"
	"exechire/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	vehicleQueries queries.VehicleQueries
}

func NewVehicleHandler(vehicleQueries queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		vehicleQueries: vehicleQueries,
	}
}

// @Summary List vehicles
// @Description List the vehicle catalog, optionally filtered
// @Tags vehicles
// @Produce json
// @Param category query string false "Filter by category"
// @Param available query bool false "Filter by availability"
// @Param featured query bool false "Filter by featured flag"
// @Success 200 {array} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	filter, err := parseVehicleFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters")
		return
	}

	views, err := h.vehicleQueries.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	resdto.JSON(c, http.StatusOK, resdto.FromVehicleViews(views))
}

// @Summary Get vehicle
// @Description Get a single vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} resdto.VehicleResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid vehicle ID format")
		return
	}

	view, err := h.vehicleQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	resdto.JSON(c, http.StatusOK, resdto.FromVehicleView(view))
}

func parseVehicleFilter(c *gin.Context) (queries.VehicleFilter, error) {
	var filter queries.VehicleFilter

	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if raw := c.Query("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("invalid available parameter")
		}
		filter.Available = &available
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("invalid featured parameter")
		}
		filter.Featured = &featured
	}

	return filter, nil
}
