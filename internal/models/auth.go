package models

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the register request body; Password2 must repeat Password.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// AuthStatus is the body of the status endpoint.
type AuthStatus struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user,omitempty"`
}

// User is the account summary embedded in [AuthStatus].
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is the body returned by a successful login or registration.
type AuthResult struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
}
