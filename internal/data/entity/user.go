package entity

type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleProvider
}

// User is the shared login identity. Role-specific profile data lives in the
// customers / providers tables keyed by the same ID.
type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	Role         Role   `db:"role"`
}
