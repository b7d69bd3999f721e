package models

type AnalyzeRequest struct {
	JobDescription string `form:"jobDescription" validate:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Model  string `json:"model"`
}
