package dto

// CustomerRequest creates or updates a customer.
type CustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	GSTIN   *string `json:"gstin"`
}
