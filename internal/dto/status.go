package dto

import "github.com/SscSPs/bank_api/internal/core/domain"

// StatusResponse is the envelope every engine outcome is reported in.
type StatusResponse struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"Amount added to account"`
}

// ToStatusResponse converts a domain.Status into its response envelope.
func ToStatusResponse(s domain.Status) StatusResponse {
	return StatusResponse{Status: s.Code(), Message: s.Message()}
}

// ErrorResponse is returned for malformed requests and internal failures.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid request format"`
}
