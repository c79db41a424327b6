package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, env intconfig.Env) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock init")
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = nil
		db.Close()
	})

	if env.JWTSecret == "" {
		env.JWTSecret = testSecret
	}
	return NewRouter(env), mock
}

func signToken(t *testing.T, userID int64, username, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err, "sign token")
	return signed
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBookingEndToEnd(t *testing.T) {
	r, mock := newTestServer(t, intconfig.Env{})
	adminTok := signToken(t, 1, "admin", "admin")
	aliceTok := signToken(t, 7, "alice", "user")

	// Admin creates NYC-BOS with two seats.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO routes").
		WithArgs("NYC-BOS", "Greyhound", "08:00", int64(4500)).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO seats").
		WithArgs(int64(42), "Seat-1").
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec("INSERT INTO seats").
		WithArgs(int64(42), "Seat-2").
		WillReturnResult(sqlmock.NewResult(102, 1))
	mock.ExpectCommit()

	w := doJSON(r, http.MethodPost, "/api/routes", adminTok, gin.H{
		"route_name":     "NYC-BOS",
		"bus_name":       "Greyhound",
		"departure_time": "08:00",
		"price":          4500,
		"num_seats":      2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Alice books Seat-1.
	mock.ExpectExec("UPDATE seats SET is_booked = 1").
		WithArgs(int64(7), int64(42), "Seat-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w = doJSON(r, http.MethodPost, "/api/book-seat", aliceTok, gin.H{
		"route_id":    42,
		"seat_number": "Seat-1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Booking successful for seat Seat-1")

	// Booking Seat-1 again is a conflict, not an error.
	mock.ExpectExec("UPDATE seats SET is_booked = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, route_id, seat_number, is_booked").
		WithArgs(int64(42), "Seat-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "seat_number", "is_booked", "booked_by"}).
			AddRow(101, 42, "Seat-1", true, 7))

	w = doJSON(r, http.MethodPost, "/api/book-seat", aliceTok, gin.H{
		"route_id":    42,
		"seat_number": "Seat-1",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Seat Seat-1 is already booked.")

	// My bookings has exactly the one entry.
	mock.ExpectQuery("FROM seats").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_name", "seat_number", "departure_time", "price"}).
			AddRow(101, "NYC-BOS", "Seat-1", "08:00", 4500))

	w = doJSON(r, http.MethodGet, "/api/my-bookings", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var listing struct {
		Bookings []models.BookingView `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Bookings, 1)
	assert.Equal(t, "NYC-BOS", listing.Bookings[0].RouteName)
	assert.Equal(t, "Seat-1", listing.Bookings[0].SeatNumber)

	// Cancel, then the bookings view is empty again.
	mock.ExpectExec("UPDATE seats SET is_booked = 0").
		WithArgs(int64(101), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w = doJSON(r, http.MethodDelete, "/api/bookings/101", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	mock.ExpectQuery("FROM seats").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_name", "seat_number", "departure_time", "price"}))

	w = doJSON(r, http.MethodGet, "/api/my-bookings", aliceTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	listing.Bookings = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	assert.Empty(t, listing.Bookings)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSeatMalformedPayload(t *testing.T) {
	r, _ := newTestServer(t, intconfig.Env{})
	tok := signToken(t, 7, "alice", "user")

	for _, body := range []any{
		gin.H{},
		gin.H{"route_id": 42},
		gin.H{"seat_number": "Seat-1"},
		"not json",
	} {
		w := doJSON(r, http.MethodPost, "/api/book-seat", tok, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid data received")
	}
}

func TestBookSeatRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t, intconfig.Env{})

	w := doJSON(r, http.MethodPost, "/api/book-seat", "", gin.H{
		"route_id":    42,
		"seat_number": "Seat-1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookSeatLegacyConflictStatus(t *testing.T) {
	r, mock := newTestServer(t, intconfig.Env{LegacyConflictGone: true})
	tok := signToken(t, 7, "alice", "user")

	mock.ExpectExec("UPDATE seats SET is_booked = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, route_id, seat_number, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "seat_number", "is_booked", "booked_by"}).
			AddRow(101, 42, "Seat-1", true, 9))

	w := doJSON(r, http.MethodPost, "/api/book-seat", tok, gin.H{
		"route_id":    42,
		"seat_number": "Seat-1",
	})
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Contains(t, w.Body.String(), "already booked")
}

func TestRouteManagementIsAdminOnly(t *testing.T) {
	r, _ := newTestServer(t, intconfig.Env{})
	userTok := signToken(t, 7, "alice", "user")

	w := doJSON(r, http.MethodPost, "/api/routes", userTok, gin.H{
		"route_name":     "NYC-BOS",
		"bus_name":       "Greyhound",
		"departure_time": "08:00",
		"num_seats":      2,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/routes/42", userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookUnknownSeatIsNotFound(t *testing.T) {
	r, mock := newTestServer(t, intconfig.Env{})
	tok := signToken(t, 7, "alice", "user")

	mock.ExpectExec("UPDATE seats SET is_booked = 1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, route_id, seat_number, is_booked").
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "seat_number", "is_booked", "booked_by"}))

	w := doJSON(r, http.MethodPost, "/api/book-seat", tok, gin.H{
		"route_id":    42,
		"seat_number": "Seat-99",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
