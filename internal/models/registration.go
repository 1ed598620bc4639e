package models

// VisitorRegistration is the latest public visitor registration, kept as a
// single record for ticket issuance. A new registration replaces the previous
// one.
type VisitorRegistration struct {
	TicketID   string `json:"ticketId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Profession string `json:"profession,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}
