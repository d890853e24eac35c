package models

// CreateUserRequest is the POST /users request body
type CreateUserRequest struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// UpdateUserRequest is the PUT /users/{id} request body.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email    *string  `json:"email"`
	Password *string  `json:"password"`
	Roles    []string `json:"roles"`
}

// CreateResultRequest is the POST /results request body
type CreateResultRequest struct {
	Result *float64 `json:"result"`
	Time   *string  `json:"time"`
	UserID *int     `json:"userId"`
}

// UpdateResultRequest is the PUT /results/{id} request body.
// Nil fields are left unchanged.
type UpdateResultRequest struct {
	Result *float64 `json:"result"`
	Time   *string  `json:"time"`
}

// LoginRequest is the POST /login request body.
// Username carries the account email.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
