package services

import (
	"testing"

	"busbooking/internal/domain"
)

func TestTicketServiceGenerate(t *testing.T) {
	loader := func(seatID int64) (ticketData, error) {
		return ticketData{
			SeatID:        seatID,
			SeatNumber:    "Seat-1",
			RouteName:     "NYC-BOS",
			BusName:       "Greyhound",
			DepartureTime: "08:00",
			Price:         4500,
			PassengerName: "alice",
			OwnerID:       7,
		}, nil
	}

	svc := TicketService{Loader: loader}

	owner := domain.Identity{UserID: 7, Username: "alice", Role: domain.RoleUser}
	pdf, filename, err := svc.GenerateETicket(101, owner)
	if err != nil {
		t.Fatalf("GenerateETicket returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatal("GenerateETicket returned empty data")
	}

	admin := domain.Identity{UserID: 1, Username: "admin", Role: domain.RoleAdmin}
	if _, _, err := svc.GenerateETicket(101, admin); err != nil {
		t.Fatalf("admin should be able to fetch any ticket, got %v", err)
	}
}

func TestTicketServiceForbiddenForNonOwner(t *testing.T) {
	svc := TicketService{Loader: func(seatID int64) (ticketData, error) {
		return ticketData{SeatID: seatID, OwnerID: 7}, nil
	}}

	stranger := domain.Identity{UserID: 9, Username: "bob", Role: domain.RoleUser}
	_, _, err := svc.GenerateETicket(101, stranger)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected Forbidden for non-owner, got %v", err)
	}
}
