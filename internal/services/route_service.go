package services

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

const maxSeatsPerRoute = 100

type RouteService struct {
	RouteRepo repositories.RouteRepo
	DB        *sql.DB
	RequestID string
}

func (s RouteService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RouteService) routes() repositories.RouteRepo {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepo{DB: s.db()}
}

func (s RouteService) List() ([]models.Route, error) {
	routes, err := s.routes().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return routes, nil
}

// Create validates the admin input and inserts the route together with its
// generated seat set in one transaction.
func (s RouteService) Create(in models.RouteInput) (int64, error) {
	in.RouteName = strings.TrimSpace(in.RouteName)
	in.BusName = strings.TrimSpace(in.BusName)
	in.DepartureTime = strings.TrimSpace(in.DepartureTime)

	if in.RouteName == "" {
		return 0, domain.ValidationError{Field: "route_name", Msg: "required"}
	}
	if in.BusName == "" {
		return 0, domain.ValidationError{Field: "bus_name", Msg: "required"}
	}
	if in.DepartureTime == "" {
		return 0, domain.ValidationError{Field: "departure_time", Msg: "required"}
	}
	if in.Price < 0 {
		return 0, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	if in.SeatCount < 1 || in.SeatCount > maxSeatsPerRoute {
		return 0, domain.ValidationError{
			Field: "num_seats",
			Msg:   fmt.Sprintf("must be between 1 and %d", maxSeatsPerRoute),
		}
	}

	routeID, err := s.routes().CreateWithSeats(in)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "routes", "create_route",
		fmt.Sprintf("route_id=%d seats=%d", routeID, in.SeatCount))
	return routeID, nil
}

// Delete removes the route and its seats together.
func (s RouteService) Delete(routeID int64) error {
	if routeID <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "invalid id"}
	}

	deleted, err := s.routes().Delete(routeID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{Resource: "route"}
	}

	utils.LogEvent(s.RequestID, "routes", "delete_route", fmt.Sprintf("route_id=%d", routeID))
	return nil
}
