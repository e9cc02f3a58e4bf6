package dto

// SignupRequest is the body of POST /api/auth/signup.
// Credential fields come first so their violations are reported before the name's.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"Invalid email address"`
	Password string `json:"password" validate:"required,min=6" msg:"Password must be at least 6 characters"`
	Name     string `json:"name" validate:"required,min=2" msg:"Name must be at least 2 characters"`
}

type SignupUserDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SignupResponse struct {
	Message string        `json:"message"`
	User    SignupUserDTO `json:"user"`
}
