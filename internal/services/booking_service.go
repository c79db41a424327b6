package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"
)

// BookingService owns the seat availability state machine: the only
// transitions are available -> booked (Book) and booked -> available
// (Cancel), serialized per seat by the repository's conditional updates.
type BookingService struct {
	SeatRepo  repositories.SeatRepo
	RouteRepo repositories.RouteRepo
	DB        *sql.DB
	RequestID string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

func (s BookingService) routes() repositories.RouteRepo {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepo{DB: s.db()}
}

// ListSeats returns the availability projection for a route, ordered by
// seat id. A route with zero seats yields an empty list; an unknown route
// is NotFound rather than silently empty.
func (s BookingService) ListSeats(routeID int64) ([]models.SeatView, error) {
	if routeID <= 0 {
		return nil, domain.ValidationError{Field: "route_id", Msg: "invalid id"}
	}
	if _, err := s.routes().GetByID(routeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "route"}
		}
		return nil, domain.InternalError{Err: err}
	}

	seats, err := s.seats().ListByRoute(routeID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	out := make([]models.SeatView, 0, len(seats))
	for _, seat := range seats {
		out = append(out, models.SeatView{
			SeatNumber: seat.SeatNumber,
			Available:  !seat.IsBooked,
		})
	}
	return out, nil
}

// Book attempts the available -> booked transition for one seat. Exactly
// one of any set of concurrent callers wins; the rest observe Conflict.
func (s BookingService) Book(routeID int64, seatNumber string, user domain.Identity) error {
	seatNumber = strings.TrimSpace(seatNumber)
	if routeID <= 0 || seatNumber == "" {
		return domain.ValidationError{Field: "seat", Msg: "route and seat number required"}
	}

	booked, err := s.seats().Book(routeID, seatNumber, user.UserID)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if booked {
		utils.LogEvent(s.RequestID, "booking", "book_seat",
			fmt.Sprintf("route_id=%d seat=%s user_id=%d", routeID, seatNumber, user.UserID))
		return nil
	}

	// Zero rows affected: distinguish a missing seat from a lost race.
	if _, err := s.seats().GetByRouteAndNumber(routeID, seatNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "seat"}
		}
		return domain.InternalError{Err: err}
	}
	return domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("Seat %s is already booked.", seatNumber)}
}

// Cancel releases a booked seat. Only the booking owner (or an admin) may
// cancel; anyone else gets Forbidden even for a valid seat id.
func (s BookingService) Cancel(seatID int64, user domain.Identity) error {
	if seatID <= 0 {
		return domain.ValidationError{Field: "seat_id", Msg: "invalid id"}
	}

	cancelled, err := s.seats().Cancel(seatID, user.UserID, user.IsAdmin())
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if cancelled {
		utils.LogEvent(s.RequestID, "booking", "cancel_booking",
			fmt.Sprintf("seat_id=%d user_id=%d", seatID, user.UserID))
		return nil
	}

	seat, err := s.seats().GetByID(seatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "seat"}
		}
		return domain.InternalError{Err: err}
	}
	if !seat.IsBooked {
		return domain.NotFoundError{Resource: "booking"}
	}
	return domain.ForbiddenError{Msg: "booking belongs to another user"}
}

// MyBookings lists the caller's booked seats joined with route details.
func (s BookingService) MyBookings(user domain.Identity) ([]models.BookingView, error) {
	bookings, err := s.seats().ListBookedByUser(user.UserID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return bookings, nil
}
