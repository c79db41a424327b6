package models

// Seat is one bookable unit of capacity on a route. BookedBy references
// the owning user when the seat is booked, zero otherwise.
type Seat struct {
	ID         int64  `json:"id"`
	RouteID    int64  `json:"route_id"`
	SeatNumber string `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
	BookedBy   int64  `json:"booked_by,omitempty"`
}

// SeatView is the availability projection returned to clients.
type SeatView struct {
	SeatNumber string `json:"seat_number"`
	Available  bool   `json:"available"`
}

// BookingView is one row of a user's bookings, joined with route details.
type BookingView struct {
	SeatID        int64  `json:"seat_id"`
	RouteName     string `json:"route_name"`
	SeatNumber    string `json:"seat_number"`
	DepartureTime string `json:"departure_time"`
	Price         int64  `json:"price"`
}
