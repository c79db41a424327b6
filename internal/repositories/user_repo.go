package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "busbooking/internal/config"
	"busbooking/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

// ErrDuplicateUsername signals a unique-key collision on users.username.
var ErrDuplicateUsername = errors.New("username already exists")

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepo) GetByUsername(username string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = ?
	`, strings.TrimSpace(username)).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	return u, err
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = ?
	`, id).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
	)
	return u, err
}

// Create inserts a credential row. The unique key on username is the
// authority on duplicates; a racing insert surfaces as ErrDuplicateUsername
// and leaves the existing row untouched.
func (r UserRepo) Create(username, passwordHash, role string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
	`, strings.TrimSpace(username), passwordHash, role)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertAdmin seeds the administrative account with a fresh hash and the
// admin role, replacing any stale credentials from a previous start.
func (r UserRepo) UpsertAdmin(username, passwordHash string) error {
	_, err := r.db().Exec(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, 'admin')
		ON DUPLICATE KEY UPDATE password_hash=VALUES(password_hash), role='admin'
	`, strings.TrimSpace(username), passwordHash)
	return err
}
