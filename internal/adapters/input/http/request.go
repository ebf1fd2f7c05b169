package http

type (
	// IdentityRequest struct - HTTP request DTO for the identity gate
	IdentityRequest struct {
		Email string `json:"email" validate:"required,max=254" form:"email"`
	}

	// MessageRequest struct - HTTP request DTO for one user message
	MessageRequest struct {
		Message string `json:"message" validate:"required,max=4000" form:"message"`
	}
)
