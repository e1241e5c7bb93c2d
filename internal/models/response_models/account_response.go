package response_models

type AccountLoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}
