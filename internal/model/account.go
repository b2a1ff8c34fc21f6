package model

// Roles accepted in access tokens.
const (
	RoleCustomer = "CUSTOMER"
	RoleOperator = "OPERATOR"
)

// Account is a login configured through AUTH_USERS. Only the bcrypt hash
// of the password is kept.
type Account struct {
	Username     string
	Role         string
	PasswordHash string
}
