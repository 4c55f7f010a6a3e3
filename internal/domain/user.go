package domain

// User is the directory record for an account. TenantID ("hubspot") links a
// user to its telemetry rows; it is null for incomplete accounts and is
// irrelevant to an admin's read scope.
type User struct {
	ID           int64
	Nome         string
	Sobrenome    string
	Email        string
	PasswordHash string
	Role         Role
	TenantID     *int64
}
