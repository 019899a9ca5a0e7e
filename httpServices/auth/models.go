package auth

// LoginRequest is the credential payload forwarded to the auth provider.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the sign-up payload forwarded to the auth provider.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Identity is the provider's view of the authenticated user.
type Identity struct {
	Uuid     string `json:"uuid"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// SessionResponse carries the provider-issued tokens plus the identity.
type SessionResponse struct {
	Status  string   `json:"status"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message,omitempty"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh,omitempty"`
	User    Identity `json:"user"`
}
