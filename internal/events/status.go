package events

import (
	"time"

	"github.com/afrinov/expo-backend/internal/models"
)

// dateLayout is the wire format for event dates.
const dateLayout = "2006-01-02"

// DeriveStatus computes the lifecycle status of an event at the given
// instant. An explicit override on the record always wins. Otherwise the
// status follows from where today falls relative to the event's date range,
// comparing whole days only. The end date defaults to the start date for
// single-day events.
func DeriveStatus(e models.Event, now time.Time) string {
	if e.StatusUpdate != "" {
		return e.StatusUpdate
	}

	start, err := time.ParseInLocation(dateLayout, e.Date, now.Location())
	if err != nil {
		return models.StatusUpcoming
	}
	end := start
	if e.EndDate != "" {
		if parsed, err := time.ParseInLocation(dateLayout, e.EndDate, now.Location()); err == nil {
			end = parsed
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case !today.Before(start) && !today.After(end):
		return models.StatusOngoing
	case today.Before(start):
		return models.StatusUpcoming
	default:
		return models.StatusFinished
	}
}
