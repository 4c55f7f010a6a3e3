package dto

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the contract with the dashboard client; "perfil" is the
// role and "hubspot" the tenant id.
type LoginResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Perfil  string `json:"perfil"`
	Hubspot *int64 `json:"hubspot"`
	Name    string `json:"name"`
}

// LogoutResponse payload for POST /logout.
type LogoutResponse struct {
	OK bool `json:"ok"`
}
