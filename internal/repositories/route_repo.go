package repositories

import (
	"database/sql"
	"fmt"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"
)

type RouteRepo struct {
	DB *sql.DB
}

func (r RouteRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepo) List() ([]models.Route, error) {
	rows, err := r.db().Query(`
		SELECT id, route_name, bus_name, departure_time, price
		FROM routes
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.RouteName, &rt.BusName, &rt.DepartureTime, &rt.Price); err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepo) GetByID(id int64) (models.Route, error) {
	var rt models.Route
	err := r.db().QueryRow(`
		SELECT id, route_name, bus_name, departure_time, price
		FROM routes
		WHERE id = ?
	`, id).Scan(&rt.ID, &rt.RouteName, &rt.BusName, &rt.DepartureTime, &rt.Price)
	return rt, err
}

// CreateWithSeats inserts the route row and its seat set in one
// transaction. Seats are numbered Seat-1..Seat-N and start available;
// a failure mid-generation rolls everything back.
func (r RouteRepo) CreateWithSeats(in models.RouteInput) (int64, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO routes (route_name, bus_name, departure_time, price)
		VALUES (?, ?, ?, ?)
	`, in.RouteName, in.BusName, in.DepartureTime, in.Price)
	if err != nil {
		return 0, err
	}
	routeID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for n := 1; n <= in.SeatCount; n++ {
		seatNumber := fmt.Sprintf("Seat-%d", n)
		if _, err := tx.Exec(`
			INSERT INTO seats (route_id, seat_number, is_booked)
			VALUES (?, ?, 0)
		`, routeID, seatNumber); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return routeID, nil
}

// Delete removes the route and its seats in one transaction. Returns false
// when the route does not exist.
func (r RouteRepo) Delete(id int64) (bool, error) {
	tx, err := r.db().Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM seats WHERE route_id = ?`, id); err != nil {
		return false, err
	}

	res, err := tx.Exec(`DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return affected > 0, nil
}
