package models

// Lifecycle statuses shown in the console. StatusCancelled is only reachable
// through an explicit override on the event record.
const (
	StatusUpcoming  = "À venir"
	StatusOngoing   = "En cours"
	StatusFinished  = "Terminé"
	StatusCancelled = "Annulé"
)

// EventCategories are the accepted values for Event.Category.
var EventCategories = []string{
	"conference",
	"workshop",
	"hackathon",
	"networking",
	"exhibition",
	"seminar",
	"webinar",
}

// Event is a managed event. Dates are YYYY-MM-DD strings.
// Status is derived from the dates on every read and stripped before persisting;
// StatusUpdate is the explicit override that bypasses derivation.
type Event struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	EndDate      string `json:"endDate,omitempty"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Capacity     int    `json:"capacity"`
	Image        string `json:"image,omitempty"`
	StatusUpdate string `json:"statusUpdate,omitempty"`
	Status       string `json:"status,omitempty"`
}

// ValidCategory reports whether c is one of the accepted event categories.
func ValidCategory(c string) bool {
	for _, v := range EventCategories {
		if v == c {
			return true
		}
	}
	return false
}
