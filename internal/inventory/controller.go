package inventory

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seatly/internal/notify"
	"seatly/internal/shared/utils/response"
)

// ClientIDHeader carries the anonymous requester identity. The header wins
// over a client_id in the request body.
const ClientIDHeader = "X-Client-Id"

type Controller struct {
	service Service
	hub     *notify.Hub
}

func NewController(service Service, hub *notify.Hub) *Controller {
	return &Controller{service: service, hub: hub}
}

// clientID resolves the requester identity from header or body value.
func clientID(ctx *gin.Context, bodyValue string) string {
	if header := ctx.GetHeader(ClientIDHeader); header != "" {
		return header
	}
	return bodyValue
}

// conflictStatusCode maps the inventory error taxonomy onto HTTP statuses.
func conflictStatusCode(err error) int {
	if conflict, ok := AsConflict(err); ok {
		if conflict.Kind == KindInvalidSeat {
			return http.StatusBadRequest
		}
		return http.StatusConflict
	}
	switch {
	case errors.Is(err, ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrScreeningNotFound), errors.Is(err, ErrReservationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyCancelled):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// conflictPayload exposes the offending seats so the client can re-render
// exactly which selections failed.
func conflictPayload(err error) interface{} {
	if conflict, ok := AsConflict(err); ok {
		return gin.H{"kind": conflict.Kind, "seat_ids": conflict.SeatIDs}
	}
	return err.Error()
}

func (c *Controller) GetSeatMap(ctx *gin.Context) {
	screeningID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screening ID", nil, err.Error())
		return
	}

	seatMap, err := c.service.GetSeatMap(ctx.Request.Context(), screeningID, ctx.GetHeader(ClientIDHeader))
	if err != nil {
		response.RespondJSON(ctx, "error", conflictStatusCode(err), "Failed to get seat map", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat map retrieved successfully", seatMap, nil)
}

func (c *Controller) HoldSeats(ctx *gin.Context) {
	screeningID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screening ID", nil, err.Error())
		return
	}

	var req HoldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	requester := clientID(ctx, req.ClientID)
	if requester == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Client ID is required", nil, "provide X-Client-Id header or client_id field")
		return
	}

	hold, err := c.service.Hold(ctx.Request.Context(), screeningID, requester, req)
	if err != nil {
		response.RespondJSON(ctx, "error", conflictStatusCode(err), "Failed to hold seats", nil, conflictPayload(err))
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats held successfully", hold, nil)
}

func (c *Controller) ReleaseSeats(ctx *gin.Context) {
	screeningID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screening ID", nil, err.Error())
		return
	}

	var req ReleaseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	requester := clientID(ctx, req.ClientID)
	if requester == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Client ID is required", nil, "provide X-Client-Id header or client_id field")
		return
	}

	if err := c.service.Release(ctx.Request.Context(), screeningID, requester, req); err != nil {
		response.RespondJSON(ctx, "error", conflictStatusCode(err), "Failed to release seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seats released successfully", nil, nil)
}

func (c *Controller) CommitReservation(ctx *gin.Context) {
	var req CommitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	requester := clientID(ctx, req.ClientID)
	if requester == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Client ID is required", nil, "provide X-Client-Id header or client_id field")
		return
	}

	reservation, err := c.service.Commit(ctx.Request.Context(), requester, req)
	if err != nil {
		response.RespondJSON(ctx, "error", conflictStatusCode(err), "Failed to commit reservation", nil, conflictPayload(err))
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation committed successfully", reservation, nil)
}

func (c *Controller) ListReservations(ctx *gin.Context) {
	if screening := ctx.Query("screening_id"); screening != "" {
		screeningID, err := uuid.Parse(screening)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screening ID", nil, err.Error())
			return
		}
		list, err := c.service.ListReservations(ctx.Request.Context(), screeningID)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list reservations", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", list, nil)
		return
	}

	client := ctx.Query("client_id")
	if client == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Missing filter", nil, "provide screening_id or client_id query parameter")
		return
	}
	list, err := c.service.ListClientReservations(ctx.Request.Context(), client)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list reservations", nil, err.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", list, nil)
}

func (c *Controller) GetReservation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	reservation, err := c.service.GetReservation(ctx.Request.Context(), id)
	if err != nil {
		response.RespondJSON(ctx, "error", conflictStatusCode(err), "Failed to get reservation", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", reservation, nil)
}

func (c *Controller) CancelReservation(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid reservation ID", nil, err.Error())
		return
	}

	// Admin endpoint; no ownership restriction.
	reservation, err := c.service.Cancel(ctx.Request.Context(), id, "")
	if err != nil {
		response.RespondJSON(ctx, "error", conflictStatusCode(err), "Failed to cancel reservation", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled successfully", reservation, nil)
}

// LiveUpdates streams seat deltas for one screening as server-sent events.
// The client reacts by re-fetching the seat map.
func (c *Controller) LiveUpdates(ctx *gin.Context) {
	screeningID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid screening ID", nil, err.Error())
		return
	}

	deltas, cancel := c.hub.Subscribe(screeningID)
	defer cancel()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Header().Set("X-Accel-Buffering", "no")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case delta, ok := <-deltas:
			if !ok {
				return false
			}
			ctx.SSEvent("seat_update", delta)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
