package halls

import (
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

func (c *Controller) CreateHall(ctx *gin.Context) {
	var req CreateHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hall, err := c.service.CreateHall(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "hall name already in use" {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to create hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hall created successfully", hall, nil)
}

func (c *Controller) GetHall(ctx *gin.Context) {
	hall, err := c.service.GetHall(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "hall not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall retrieved successfully", hall, nil)
}

func (c *Controller) ListHalls(ctx *gin.Context) {
	list, err := c.service.ListHalls(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list halls", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Halls retrieved successfully", list, nil)
}

func (c *Controller) UpdateHall(ctx *gin.Context) {
	var req UpdateHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hall, err := c.service.UpdateHall(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch err.Error() {
		case "hall not found":
			statusCode = http.StatusNotFound
		case "hall name already in use":
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall updated successfully", hall, nil)
}

func (c *Controller) DeleteHall(ctx *gin.Context) {
	if err := c.service.DeleteHall(ctx.Request.Context(), ctx.Param("id")); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "hall not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall deleted successfully", nil, nil)
}

func (c *Controller) GetSeats(ctx *gin.Context) {
	seats, err := c.service.GetSeats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}
