package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

type bookSeatRequest struct {
	RouteID    int64  `json:"route_id"`
	SeatNumber string `json:"seat_number"`
}

// POST /api/book-seat
//
// The wire contract is fixed: 200 with a message on success, 409 on an
// already-booked seat (410 when the legacy status is configured), 400 with
// "Invalid data received" on a malformed payload.
func BookSeat(env intconfig.Env) gin.HandlerFunc {
	conflictStatus := http.StatusConflict
	if env.LegacyConflictGone {
		conflictStatus = http.StatusGone
	}

	return func(c *gin.Context) {
		identity, ok := middleware.GetIdentity(c)
		if !ok {
			RespondError(c, http.StatusUnauthorized, "login required", nil)
			return
		}

		var req bookSeatRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.RouteID == 0 || req.SeatNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid data received"})
			return
		}

		svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
		if err := svc.Book(req.RouteID, req.SeatNumber, identity); err != nil {
			if domain.IsConflict(err) {
				c.JSON(conflictStatus, gin.H{
					"message": fmt.Sprintf("Seat %s is already booked.", req.SeatNumber),
				})
				return
			}
			RespondDomainError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Booking successful for seat %s", req.SeatNumber),
		})
	}
}

// GET /api/my-bookings
func MyBookings(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	bookings, err := svc.MyBookings(identity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// DELETE /api/bookings/:seatId
func CancelBooking(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	seatID, err := strconv.ParseInt(c.Param("seatId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid seat id", err)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	if err := svc.Cancel(seatID, identity); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully!"})
}

// GET /api/bookings/:seatId/e-ticket
func BookingETicket(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}

	seatID, err := strconv.ParseInt(c.Param("seatId"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid seat id", err)
		return
	}

	svc := services.TicketService{RequestID: middleware.GetRequestID(c)}
	pdf, filename, err := svc.GenerateETicket(seatID, identity)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
