package screenings

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupScreeningRoutes registers screening catalog routes. Reads are public,
// writes require the admin middleware supplied by the caller. Seat-map and
// hold routes live in the inventory package.
func SetupScreeningRoutes(rg *gin.RouterGroup, controller *Controller, requireAdmin gin.HandlerFunc) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidators(v)
	}

	screenings := rg.Group("/screenings")
	{
		screenings.GET("", controller.ListScreenings)
		screenings.GET("/:id", controller.GetScreening)

		screenings.POST("", requireAdmin, controller.CreateScreening)
		screenings.PATCH("/:id", requireAdmin, controller.UpdateScreening)
		screenings.DELETE("/:id", requireAdmin, controller.DeleteScreening)
	}
}
