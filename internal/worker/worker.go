package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/scans"
	"github.com/afrinov/expo-backend/pkg/queue"
)

// ScanProcessor consumes gate-scan jobs and appends the resulting records to
// the event's scan list.
type ScanProcessor struct {
	scans  *scans.Repository
	queue  *queue.Queue
	logger *zap.Logger
}

// NewScanProcessor creates a gate-scan processor.
func NewScanProcessor(scanRepo *scans.Repository, q *queue.Queue, logger *zap.Logger) *ScanProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScanProcessor{scans: scanRepo, queue: q, logger: logger}
}

// Process executes one scan ingestion job.
func (p *ScanProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeScan {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload models.ScanPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	if payload.EventID == "" || payload.TicketID == "" {
		return fmt.Errorf("incomplete scan payload: event=%q ticket=%q", payload.EventID, payload.TicketID)
	}

	record, err := p.scans.Append(ctx, payload)
	if err != nil {
		return fmt.Errorf("append scan: %w", err)
	}

	p.logger.Info("scan recorded",
		zap.String("event_id", payload.EventID),
		zap.String("ticket_id", record.ID),
		zap.String("status", record.Status))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *ScanProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("scan worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				p.logger.Info("scan worker stopping")
				return
			}
			p.logger.Warn("dequeue error", zap.Error(err))
			if !p.backoff(ctx) {
				return
			}
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			if !p.backoff(ctx) {
				return
			}
			continue
		}
	}
}

// backoff waits RetryBackoff before the next attempt. It returns false when
// the context is cancelled during the wait so Run can stop immediately.
func (p *ScanProcessor) backoff(ctx context.Context) bool {
	timer := time.NewTimer(queue.RetryBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		p.logger.Info("scan worker stopping")
		return false
	case <-timer.C:
		return true
	}
}
