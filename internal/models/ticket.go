package models

// TicketType is one ticket allocation of an event. Quantity is the total
// allocation, not a live counter; QuantitySold is supplied externally (sales
// happen outside this system) and defaults to zero.
type TicketType struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	QuantitySold int     `json:"quantitySold,omitempty"`
	Description  string  `json:"description,omitempty"`
}
