package screenings

import (
	"errors"
	"net/http"

	"seatly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateScreening(ctx *gin.Context) {
	var req CreateScreeningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	screening, err := c.service.CreateScreening(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", scheduleStatusCode(err), "Failed to create screening", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Screening created successfully", screening, nil)
}

func (c *Controller) GetScreening(ctx *gin.Context) {
	screening, err := c.service.GetScreening(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "screening not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get screening", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screening retrieved successfully", screening, nil)
}

func (c *Controller) ListScreenings(ctx *gin.Context) {
	list, err := c.service.ListScreenings(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list screenings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screenings retrieved successfully", list, nil)
}

func (c *Controller) UpdateScreening(ctx *gin.Context) {
	var req UpdateScreeningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	screening, err := c.service.UpdateScreening(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		statusCode := scheduleStatusCode(err)
		if err.Error() == "screening not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update screening", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screening updated successfully", screening, nil)
}

func (c *Controller) DeleteScreening(ctx *gin.Context) {
	if err := c.service.DeleteScreening(ctx.Request.Context(), ctx.Param("id")); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "screening not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete screening", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Screening deleted successfully", nil, nil)
}

func scheduleStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrWindowInverted):
		return http.StatusBadRequest
	case errors.Is(err, ErrHallOverlap):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
