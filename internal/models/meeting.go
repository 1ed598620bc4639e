package models

// Meeting pairs an exhibitor with an investor for one event. The
// participant name/type fields are snapshots copied at submit time; they do
// not follow later changes to the referenced participants, and deleting a
// participant leaves them in place.
type Meeting struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Participant1ID   string `json:"participant1Id"`
	Participant2ID   string `json:"participant2Id"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Location         string `json:"location,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Participant1Name string `json:"participant1Name"`
	Participant1Type string `json:"participant1Type"`
	Participant2Name string `json:"participant2Name"`
	Participant2Type string `json:"participant2Type"`
}
