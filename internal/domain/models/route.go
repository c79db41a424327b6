package models

// Route is one scheduled bus trip. Price is stored in the smallest
// currency unit (cents).
type Route struct {
	ID            int64  `json:"id"`
	RouteName     string `json:"route_name"`
	BusName       string `json:"bus_name"`
	DepartureTime string `json:"departure_time"`
	Price         int64  `json:"price"`
}

// RouteInput carries admin-provided route details plus the number of seats
// to generate alongside the route.
type RouteInput struct {
	RouteName     string `json:"route_name"`
	BusName       string `json:"bus_name"`
	DepartureTime string `json:"departure_time"`
	Price         int64  `json:"price"`
	SeatCount     int    `json:"num_seats"`
}
