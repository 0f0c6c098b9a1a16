package halls

import (
	"github.com/gin-gonic/gin"
)

// SetupHallRoutes registers hall routes. Reads are public, writes require
// the admin middleware supplied by the caller.
func SetupHallRoutes(rg *gin.RouterGroup, controller *Controller, requireAdmin gin.HandlerFunc) {
	halls := rg.Group("/halls")
	{
		halls.GET("", controller.ListHalls)
		halls.GET("/:id", controller.GetHall)
		halls.GET("/:id/seats", controller.GetSeats)

		halls.POST("", requireAdmin, controller.CreateHall)
		halls.PATCH("/:id", requireAdmin, controller.UpdateHall)
		halls.DELETE("/:id", requireAdmin, controller.DeleteHall)
	}
}
