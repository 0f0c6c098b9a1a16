package movies

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

func (c *Controller) CreateMovie(ctx *gin.Context) {
	var req CreateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	movie, err := c.service.CreateMovie(ctx.Request.Context(), req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Movie created successfully", movie, nil)
}

func (c *Controller) GetMovie(ctx *gin.Context) {
	id := ctx.Param("id")

	movie, err := c.service.GetMovie(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "movie not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie retrieved successfully", movie, nil)
}

func (c *Controller) ListMovies(ctx *gin.Context) {
	list, err := c.service.ListMovies(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list movies", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movies retrieved successfully", list, nil)
}

func (c *Controller) UpdateMovie(ctx *gin.Context) {
	id := ctx.Param("id")

	var req UpdateMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	movie, err := c.service.UpdateMovie(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "movie not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie updated successfully", movie, nil)
}

func (c *Controller) DeleteMovie(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.service.DeleteMovie(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err.Error() == "movie not found" {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete movie", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Movie deleted successfully", nil, nil)
}
