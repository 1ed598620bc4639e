package models

// Participant types. Exhibitors and investors form the matchmaking pool.
const (
	ParticipantVisitor   = "visitor"
	ParticipantExhibitor = "exhibitor"
	ParticipantInvestor  = "investor"
	ParticipantMedia     = "media"
	ParticipantPartner   = "partner"
)

// ParticipantTypes are the accepted values for Participant.Type.
var ParticipantTypes = []string{
	ParticipantVisitor,
	ParticipantExhibitor,
	ParticipantInvestor,
	ParticipantMedia,
	ParticipantPartner,
}

// Participant is a registered attendee of one event. RegistrationDate is set
// once at creation and preserved across updates.
type Participant struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Type             string `json:"type"`
	Organization     string `json:"organization,omitempty"`
	RegistrationDate string `json:"registrationDate"`
}

// ValidParticipantType reports whether t is one of the accepted types.
func ValidParticipantType(t string) bool {
	for _, v := range ParticipantTypes {
		if v == t {
			return true
		}
	}
	return false
}
