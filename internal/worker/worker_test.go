package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/scans"
	"github.com/afrinov/expo-backend/internal/store"
	"github.com/afrinov/expo-backend/pkg/queue"
)

func scanJob(t *testing.T, payload models.ScanPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{
		ID:        "job-1",
		Type:      queue.JobTypeScan,
		Payload:   raw,
		CreatedAt: time.Now(),
	}
}

func TestProcessAppendsScanRecord(t *testing.T) {
	ctx := context.Background()
	repo := scans.NewRepository(store.NewMemoryStore(), nil)
	processor := NewScanProcessor(repo, nil, nil)

	err := processor.Process(ctx, scanJob(t, models.ScanPayload{
		EventID:         "ev1",
		TicketID:        "AFR-100",
		ParticipantName: "Mariam Sy",
		TicketType:      "Standard",
		ScannedAt:       time.Now(),
	}))
	require.NoError(t, err)

	records, err := repo.ListFor(ctx, "ev1")
	require.NoError(t, err)

	var found *models.ScannedTicket
	for i := range records {
		if records[i].ID == "AFR-100" {
			found = &records[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, models.ScanStatusValid, found.Status)
}

func TestRunStopsPromptlyOnCancel(t *testing.T) {
	// Port 1 refuses connections, so Dequeue keeps erroring and Run sits in
	// its retry backoff when the context is cancelled.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()

	repo := scans.NewRepository(store.NewMemoryStore(), nil)
	processor := NewScanProcessor(repo, queue.NewQueue(rdb, nil), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		processor.Run(ctx)
		close(done)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestProcessRejectsUnknownJobType(t *testing.T) {
	repo := scans.NewRepository(store.NewMemoryStore(), nil)
	processor := NewScanProcessor(repo, nil, nil)

	err := processor.Process(context.Background(), &queue.Job{ID: "j", Type: "mystery"})
	assert.Error(t, err)
}

func TestProcessRejectsIncompletePayload(t *testing.T) {
	repo := scans.NewRepository(store.NewMemoryStore(), nil)
	processor := NewScanProcessor(repo, nil, nil)

	err := processor.Process(context.Background(), scanJob(t, models.ScanPayload{TicketID: "AFR-1"}))
	assert.Error(t, err)
}
