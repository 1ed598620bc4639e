package scans

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/store"
)

// Repository handles per-event gate-scan records. An event whose scan list
// is first read empty gets a small demo batch so the console has something
// to show before a gate device connects.
type Repository struct {
	col    *store.ScopedCollection[models.ScannedTicket]
	now    func() time.Time
	logger *zap.Logger
}

func NewRepository(s store.Store, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		col:    store.NewScopedCollection[models.ScannedTicket](s, store.KeyEventScannedTickets, logger),
		now:    time.Now,
		logger: logger,
	}
}

func (r *Repository) demoScans(eventID string) []models.ScannedTicket {
	now := r.now()
	stamp := func(agoHours int) string {
		return now.Add(-time.Duration(agoHours) * time.Hour).UTC().Format(time.RFC3339)
	}
	return []models.ScannedTicket{
		{ID: "ticket001", EventID: eventID, ParticipantName: "Alice Dupont", Type: "VIP", ScanTime: stamp(1), Status: models.ScanStatusValid},
		{ID: "ticket002", EventID: eventID, ParticipantName: "Bob Martin", Type: "Standard", ScanTime: stamp(2), Status: models.ScanStatusValid},
		{ID: "ticket003", EventID: eventID, ParticipantName: "Charlie Durand", Type: "Étudiant", ScanTime: stamp(3), Status: models.ScanStatusInvalid},
		{ID: "ticket004", EventID: eventID, ParticipantName: "Diana Moreau", Type: "VIP", ScanTime: stamp(4), Status: models.ScanStatusValid},
	}
}

// ListFor returns an event's scan records, seeding the demo batch when the
// list is empty.
func (r *Repository) ListFor(ctx context.Context, eventID string) ([]models.ScannedTicket, error) {
	scans, err := r.col.ListFor(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if len(scans) == 0 {
		scans = r.demoScans(eventID)
		if err := r.col.SaveFor(ctx, eventID, scans); err != nil {
			return nil, err
		}
		r.logger.Info("seeded demo scans", zap.String("event_id", eventID))
	}
	return scans, nil
}

// Append records one gate scan. A ticket id already scanned for the event
// comes back invalid, so re-entries stand out on the console.
func (r *Repository) Append(ctx context.Context, payload models.ScanPayload) (models.ScannedTicket, error) {
	scans, err := r.ListFor(ctx, payload.EventID)
	if err != nil {
		return models.ScannedTicket{}, err
	}

	status := models.ScanStatusValid
	for _, s := range scans {
		if s.ID == payload.TicketID {
			status = models.ScanStatusInvalid
			break
		}
	}

	scannedAt := payload.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = r.now()
	}
	record := models.ScannedTicket{
		ID:              payload.TicketID,
		EventID:         payload.EventID,
		ParticipantName: payload.ParticipantName,
		Type:            payload.TicketType,
		ScanTime:        scannedAt.UTC().Format(time.RFC3339),
		Status:          status,
	}
	scans = append(scans, record)
	if err := r.col.SaveFor(ctx, payload.EventID, scans); err != nil {
		return models.ScannedTicket{}, err
	}
	return record, nil
}
