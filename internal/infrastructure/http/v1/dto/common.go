// Package dto defines request and response shapes for the HTTP API.
package dto

// IDResponse is returned on resource creation.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
