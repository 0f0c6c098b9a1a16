package inventory

import (
	"github.com/gin-gonic/gin"
)

// SetupInventoryRoutes registers the booking surface. Seat map, hold,
// release, live feed and commit are public (identified by client ID only);
// the reservation ledger views and cancel are admin.
func SetupInventoryRoutes(rg *gin.RouterGroup, controller *Controller, requireAdmin gin.HandlerFunc) {
	screenings := rg.Group("/screenings")
	{
		screenings.GET("/:id/seat-map", controller.GetSeatMap)
		screenings.POST("/:id/hold", controller.HoldSeats)
		screenings.POST("/:id/release", controller.ReleaseSeats)
		screenings.GET("/:id/live", controller.LiveUpdates)
	}

	reservations := rg.Group("/reservations")
	{
		reservations.POST("", controller.CommitReservation)

		reservations.GET("", requireAdmin, controller.ListReservations)
		reservations.GET("/:id", requireAdmin, controller.GetReservation)
		reservations.POST("/:id/cancel", requireAdmin, controller.CancelReservation)
	}
}
