package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/events"
	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/participants"
	"github.com/afrinov/expo-backend/internal/scans"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/internal/tickets"
)

func setupService(t *testing.T) (*Service, *events.Repository, *participants.Repository, *tickets.Repository, *scans.Repository) {
	t.Helper()
	mem := store.NewMemoryStore()
	eventRepo := events.NewRepository(mem, nil)
	participantRepo := participants.NewRepository(mem, nil)
	ticketRepo := tickets.NewRepository(mem, nil)
	scanRepo := scans.NewRepository(mem, nil)
	svc := NewService(eventRepo, participantRepo, ticketRepo, scanRepo, nil)
	return svc, eventRepo, participantRepo, ticketRepo, scanRepo
}

func TestForEventAggregatesSalesAndRevenue(t *testing.T) {
	ctx := context.Background()
	svc, _, participantRepo, ticketRepo, _ := setupService(t)

	event := models.Event{ID: "ev1", Title: "Salon Tech"}

	_, err := ticketRepo.Create(ctx, "ev1", models.TicketType{Name: "Standard", Price: 100, Quantity: 50, QuantitySold: 2})
	require.NoError(t, err)
	_, err = ticketRepo.Create(ctx, "ev1", models.TicketType{Name: "VIP", Price: 200, Quantity: 20, QuantitySold: 2})
	require.NoError(t, err)

	_, err = participantRepo.Create(ctx, "ev1", models.Participant{Name: "A", Email: "a@x.com", Type: models.ParticipantExhibitor})
	require.NoError(t, err)
	_, err = participantRepo.Create(ctx, "ev1", models.Participant{Name: "B", Email: "b@x.com", Type: models.ParticipantVisitor})
	require.NoError(t, err)
	_, err = participantRepo.Create(ctx, "ev1", models.Participant{Name: "C", Email: "c@x.com", Type: models.ParticipantVisitor})
	require.NoError(t, err)

	report, err := svc.ForEvent(ctx, event)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalParticipants)
	assert.Equal(t, 4, report.TotalTicketsSold)
	assert.InDelta(t, 600.0, report.TotalRevenue, 0.001)

	// The first empty read seeds the demo scans, three of which are valid.
	assert.Equal(t, 3, report.ValidScans)
	assert.InDelta(t, 75.0, report.AttendanceRate, 0.001)

	assert.ElementsMatch(t, []TypeCount{
		{Name: models.ParticipantVisitor, Value: 2},
		{Name: models.ParticipantExhibitor, Value: 1},
	}, report.ParticipantTypes)
}

func TestForEventAttendanceZeroWhenNothingSold(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, scanRepo := setupService(t)

	// Valid scans exist, but with zero tickets sold the rate stays zero
	// instead of dividing by zero.
	scanned, err := scanRepo.ListFor(ctx, "ev2")
	require.NoError(t, err)
	require.NotEmpty(t, scanned)

	report, err := svc.ForEvent(ctx, models.Event{ID: "ev2", Title: "Atelier"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalTicketsSold)
	assert.Zero(t, report.AttendanceRate)
	assert.Positive(t, report.ValidScans)
}

func TestOverallSumsAcrossCatalog(t *testing.T) {
	ctx := context.Background()
	svc, eventRepo, _, ticketRepo, _ := setupService(t)

	catalog, err := eventRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 4)

	_, err = ticketRepo.Create(ctx, catalog[0].ID, models.TicketType{Name: "Standard", Price: 50, Quantity: 100, QuantitySold: 10})
	require.NoError(t, err)
	_, err = ticketRepo.Create(ctx, catalog[1].ID, models.TicketType{Name: "Standard", Price: 25, Quantity: 100, QuantitySold: 4})
	require.NoError(t, err)

	summary, err := svc.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalEvents)
	assert.Equal(t, 14, summary.TotalTicketsSold)
	assert.InDelta(t, 600.0, summary.TotalRevenue, 0.001)
	assert.Len(t, summary.Events, 4)
}
