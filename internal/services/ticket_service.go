package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders a PDF e-ticket for a booked seat.
type TicketService struct {
	SeatRepo  repositories.SeatRepo
	RouteRepo repositories.RouteRepo
	UserRepo  repositories.UserRepo
	DB        *sql.DB
	RequestID string
	Loader    func(seatID int64) (ticketData, error)
}

type ticketData struct {
	SeatID        int64
	SeatNumber    string
	RouteName     string
	BusName       string
	DepartureTime string
	Price         int64
	PassengerName string
	OwnerID       int64
}

func (s TicketService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TicketService) seats() repositories.SeatRepo {
	if s.SeatRepo.DB != nil {
		return s.SeatRepo
	}
	return repositories.SeatRepo{DB: s.db()}
}

func (s TicketService) routes() repositories.RouteRepo {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepo{DB: s.db()}
}

func (s TicketService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

// GenerateETicket builds the PDF (bytes, filename) for one booked seat.
// Only the booking owner or an admin may fetch it.
func (s TicketService) GenerateETicket(seatID int64, user domain.Identity) ([]byte, string, error) {
	data, err := s.loadTicketData(seatID)
	if err != nil {
		return nil, "", err
	}
	if data.OwnerID != user.UserID && !user.IsAdmin() {
		return nil, "", domain.ForbiddenError{Msg: "booking belongs to another user"}
	}
	utils.LogEvent(s.RequestID, "tickets", "generate_eticket", fmt.Sprintf("seat_id=%d", seatID))
	return buildETicketPDF(data)
}

func (s TicketService) loadTicketData(seatID int64) (ticketData, error) {
	if s.Loader != nil {
		return s.Loader(seatID)
	}

	var out ticketData
	seat, err := s.seats().GetByID(seatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, domain.NotFoundError{Resource: "seat"}
		}
		return out, domain.InternalError{Err: err}
	}
	if !seat.IsBooked {
		return out, domain.NotFoundError{Resource: "booking"}
	}

	route, err := s.routes().GetByID(seat.RouteID)
	if err != nil {
		return out, domain.InternalError{Err: err}
	}

	out = ticketData{
		SeatID:        seat.ID,
		SeatNumber:    seat.SeatNumber,
		RouteName:     route.RouteName,
		BusName:       route.BusName,
		DepartureTime: route.DepartureTime,
		Price:         route.Price,
		OwnerID:       seat.BookedBy,
	}
	if owner, err := s.users().GetByID(seat.BookedBy); err == nil {
		out.PassengerName = owner.Username
	}
	return out, nil
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger : %s", safe(d.PassengerName, "-")),
		fmt.Sprintf("Route     : %s", safe(d.RouteName, "-")),
		fmt.Sprintf("Bus       : %s", safe(d.BusName, "-")),
		fmt.Sprintf("Seat      : %s", safe(d.SeatNumber, "-")),
		fmt.Sprintf("Departure : %s", safe(d.DepartureTime, "-")),
		fmt.Sprintf("Price     : %s", formatPrice(d.Price)),
		fmt.Sprintf("Ticket    : TCK-%d-%s", d.SeatID, safeFilenamePart(d.SeatNumber)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket is valid for one passenger (one seat). Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%d_%s.pdf", d.SeatID, safeFilenamePart(d.PassengerName+"_"+d.SeatNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// formatPrice renders an amount of cents as dollars.
func formatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
