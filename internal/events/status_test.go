package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/afrinov/expo-backend/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDeriveStatusRelativeToDates(t *testing.T) {
	e := models.Event{Date: "2025-05-12", EndDate: "2025-05-14"}

	assert.Equal(t, models.StatusUpcoming, DeriveStatus(e, date(2025, 5, 11)))
	assert.Equal(t, models.StatusOngoing, DeriveStatus(e, date(2025, 5, 12)))
	assert.Equal(t, models.StatusOngoing, DeriveStatus(e, date(2025, 5, 13)))
	assert.Equal(t, models.StatusOngoing, DeriveStatus(e, date(2025, 5, 14)))
	assert.Equal(t, models.StatusFinished, DeriveStatus(e, date(2025, 5, 15)))
}

func TestDeriveStatusComparesWholeDays(t *testing.T) {
	e := models.Event{Date: "2025-05-12", EndDate: "2025-05-12"}

	// Late evening of the event day still counts as ongoing.
	evening := time.Date(2025, 5, 12, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, models.StatusOngoing, DeriveStatus(e, evening))
}

func TestDeriveStatusSingleDayDefaultsEndToStart(t *testing.T) {
	e := models.Event{Date: "2024-06-18"}

	assert.Equal(t, models.StatusOngoing, DeriveStatus(e, date(2024, 6, 18)))
	assert.Equal(t, models.StatusFinished, DeriveStatus(e, date(2024, 6, 19)))
}

func TestDeriveStatusOverrideWins(t *testing.T) {
	e := models.Event{Date: "2099-01-01", StatusUpdate: models.StatusCancelled}
	assert.Equal(t, models.StatusCancelled, DeriveStatus(e, date(2025, 1, 1)))
}

func TestDeriveStatusUnparsableDateFallsBack(t *testing.T) {
	e := models.Event{Date: "not-a-date"}
	assert.Equal(t, models.StatusUpcoming, DeriveStatus(e, date(2025, 1, 1)))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "afrinov-tech-summit-2025", Slugify("Afrinov Tech Summit 2025"))
	assert.Equal(t, "conference-cybersecurite", Slugify("Conférence Cybersécurité"))
	assert.Equal(t, "workshop-ia-big-data", Slugify("Workshop IA & Big Data"))
	assert.Equal(t, "evenement", Slugify("  Événement!  "))
}
