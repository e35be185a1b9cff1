package handler

// registerUserRequest is the POST /users body. Roles is optional; only
// known role names (ADMIN, MODERATOR) are honored.
type registerUserRequest struct {
	Mail     string   `json:"mail"     validate:"required,email"`
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// loginResponse carries the minted bearer token.
type loginResponse struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"errormessage"`
	Token        string `json:"token"`
}
