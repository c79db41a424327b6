package domain

// Identity carries the authenticated caller through a request. Every
// operation that needs the caller receives this explicitly; there is no
// process-wide session state.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
