package movies

import (
	"github.com/gin-gonic/gin"
)

// SetupMovieRoutes registers movie routes. Reads are public, writes require
// the admin middleware supplied by the caller.
func SetupMovieRoutes(rg *gin.RouterGroup, controller *Controller, requireAdmin gin.HandlerFunc) {
	movies := rg.Group("/movies")
	{
		movies.GET("", controller.ListMovies)
		movies.GET("/:id", controller.GetMovie)

		movies.POST("", requireAdmin, controller.CreateMovie)
		movies.PATCH("/:id", requireAdmin, controller.UpdateMovie)
		movies.DELETE("/:id", requireAdmin, controller.DeleteMovie)
	}
}
