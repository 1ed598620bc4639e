package models

// User roles.
const (
	RoleAdmin        = "admin"
	RoleEditor       = "editor"
	RoleViewer       = "viewer"
	RoleOrganisateur = "organisateur"
)

// User account statuses.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"
)

// ProtectedUserEmail is the distinguished account that can never be deleted.
const ProtectedUserEmail = "sall@gmail.com"

// User is a console account. Password holds the bcrypt hash; email and
// joinedDate are immutable after creation.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	JoinedDate string `json:"joinedDate"`
}

// UserPublic is the API-facing view of a User, without the password hash.
type UserPublic struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	JoinedDate string `json:"joinedDate"`
}

// ToPublic strips the password hash for API responses.
func (u User) ToPublic() UserPublic {
	return UserPublic{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		JoinedDate: u.JoinedDate,
	}
}

// Session is the record persisted under the session key while a user is
// logged in, and removed again on logout.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
