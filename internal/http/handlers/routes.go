package handlers

import (
	"net/http"
	"strconv"

	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/routes
func ListRoutes(c *gin.Context) {
	svc := services.RouteService{RequestID: middleware.GetRequestID(c)}
	routes, err := svc.List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// POST /api/routes (admin)
func CreateRoute(c *gin.Context) {
	var req models.RouteInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.RouteService{RequestID: middleware.GetRequestID(c)}
	routeID, err := svc.Create(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Bus route and seats added successfully!",
		"route_id": routeID,
	})
}

// DELETE /api/routes/:id (admin)
func DeleteRoute(c *gin.Context) {
	routeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid route id", err)
		return
	}

	svc := services.RouteService{RequestID: middleware.GetRequestID(c)}
	if err := svc.Delete(routeID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/routes/:id/seats
func ListRouteSeats(c *gin.Context) {
	routeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid route id", err)
		return
	}

	svc := services.BookingService{RequestID: middleware.GetRequestID(c)}
	seats, err := svc.ListSeats(routeID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route_id": routeID, "seats": seats})
}
