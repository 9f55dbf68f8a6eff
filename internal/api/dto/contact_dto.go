package dto

// ContactSubmitRequest is the POST /api/contact payload.
type ContactSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactStatusRequest is the PATCH /api/contact/:id/status payload.
type ContactStatusRequest struct {
	Status string `json:"status"`
}
