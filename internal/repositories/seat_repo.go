package repositories

import (
	"database/sql"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
)

type SeatRepo struct {
	DB *sql.DB
}

func (r SeatRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r SeatRepo) ListByRoute(routeID int64) ([]models.Seat, error) {
	rows, err := r.db().Query(`
		SELECT id, route_id, seat_number, is_booked, COALESCE(booked_by, 0)
		FROM seats
		WHERE route_id = ?
		ORDER BY id ASC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Seat{}
	for rows.Next() {
		var s models.Seat
		if err := rows.Scan(&s.ID, &s.RouteID, &s.SeatNumber, &s.IsBooked, &s.BookedBy); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r SeatRepo) GetByID(id int64) (models.Seat, error) {
	var s models.Seat
	err := r.db().QueryRow(`
		SELECT id, route_id, seat_number, is_booked, COALESCE(booked_by, 0)
		FROM seats
		WHERE id = ?
	`, id).Scan(&s.ID, &s.RouteID, &s.SeatNumber, &s.IsBooked, &s.BookedBy)
	return s, err
}

func (r SeatRepo) GetByRouteAndNumber(routeID int64, seatNumber string) (models.Seat, error) {
	var s models.Seat
	err := r.db().QueryRow(`
		SELECT id, route_id, seat_number, is_booked, COALESCE(booked_by, 0)
		FROM seats
		WHERE route_id = ? AND seat_number = ?
	`, routeID, strings.TrimSpace(seatNumber)).Scan(&s.ID, &s.RouteID, &s.SeatNumber, &s.IsBooked, &s.BookedBy)
	return s, err
}

// Book performs the single atomic transition from available to booked.
// The is_booked guard in the WHERE clause means concurrent callers
// serialize on the row lock and at most one update takes effect; the
// loser sees zero rows affected.
func (r SeatRepo) Book(routeID int64, seatNumber string, userID int64) (bool, error) {
	res, err := r.db().Exec(`
		UPDATE seats
		SET is_booked = 1, booked_by = ?
		WHERE route_id = ? AND seat_number = ? AND is_booked = 0
	`, userID, routeID, strings.TrimSpace(seatNumber))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// Cancel releases a booked seat. Unless the caller is an admin, the
// booked_by guard restricts the update to the booking owner.
func (r SeatRepo) Cancel(seatID, userID int64, admin bool) (bool, error) {
	var (
		res sql.Result
		err error
	)
	if admin {
		res, err = r.db().Exec(`
			UPDATE seats
			SET is_booked = 0, booked_by = NULL
			WHERE id = ? AND is_booked = 1
		`, seatID)
	} else {
		res, err = r.db().Exec(`
			UPDATE seats
			SET is_booked = 0, booked_by = NULL
			WHERE id = ? AND is_booked = 1 AND booked_by = ?
		`, seatID, userID)
	}
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ListBookedByUser joins seats with their routes for the caller's
// bookings view.
func (r SeatRepo) ListBookedByUser(userID int64) ([]models.BookingView, error) {
	rows, err := r.db().Query(`
		SELECT seats.id, routes.route_name, seats.seat_number, routes.departure_time, routes.price
		FROM seats
		JOIN routes ON seats.route_id = routes.id
		WHERE seats.is_booked = 1 AND seats.booked_by = ?
		ORDER BY seats.id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BookingView{}
	for rows.Next() {
		var b models.BookingView
		if err := rows.Scan(&b.SeatID, &b.RouteName, &b.SeatNumber, &b.DepartureTime, &b.Price); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
