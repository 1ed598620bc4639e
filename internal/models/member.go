package models

// OrganizationMember belongs to the organizing team roster. RegistrationDate
// is set once at creation.
type OrganizationMember struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	RegistrationDate string `json:"registrationDate"`
}
