package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type AuthService struct {
	UserRepo  repositories.UserRepo
	DB        *sql.DB
	Secret    []byte
	RequestID string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

// Signup stores a bcrypt-hashed credential row with the default user role.
// A taken username is Conflict and leaves the existing row untouched.
func (s AuthService) Signup(username, password string) (models.PublicUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.PublicUser{}, domain.ValidationError{Field: "username", Msg: "required"}
	}
	if len(password) < 4 {
		return models.PublicUser{}, domain.ValidationError{Field: "password", Msg: "too short"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Err: err}
	}

	id, err := s.users().Create(username, string(hash), domain.RoleUser)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return models.PublicUser{}, domain.ConflictError{Resource: "username", Msg: "already exists"}
		}
		return models.PublicUser{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "signup", fmt.Sprintf("user_id=%d", id))
	return models.PublicUser{ID: id, Username: username, Role: domain.RoleUser}, nil
}

// Login verifies the credential and issues a signed session token carrying
// the user id and role. The admin account is an ordinary hashed row; there
// is no out-of-band credential compare.
func (s AuthService) Login(username, password string) (string, models.PublicUser, error) {
	user, err := s.users().GetByUsername(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.PublicUser{}, domain.UnauthorizedError{Msg: "incorrect username or password"}
		}
		return "", models.PublicUser{}, domain.InternalError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicUser{}, domain.UnauthorizedError{Msg: "incorrect username or password"}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", models.PublicUser{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d role=%s", user.ID, user.Role))
	return signed, user.ToPublic(), nil
}

// BootstrapAdmin upserts the administrative credential from configuration
// at startup. Skipped when no admin password is configured.
func (s AuthService) BootstrapAdmin(username, password string) error {
	if strings.TrimSpace(password) == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users().UpsertAdmin(username, string(hash)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "bootstrap_admin", fmt.Sprintf("username=%s", username))
	return nil
}
