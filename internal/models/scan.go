package models

import "time"

// Scan statuses.
const (
	ScanStatusValid   = "valid"
	ScanStatusInvalid = "invalid"
)

// ScannedTicket is one gate-scan record. The console only reads these;
// records are produced by the scan-ingest worker.
type ScannedTicket struct {
	ID              string `json:"id"`
	EventID         string `json:"eventId,omitempty"`
	ParticipantName string `json:"participantName"`
	Type            string `json:"type"`
	ScanTime        string `json:"scanTime"`
	Status          string `json:"status"`
}

// ScanPayload is the job body a gate device submits for ingestion.
type ScanPayload struct {
	EventID         string    `json:"eventId"`
	TicketID        string    `json:"ticketId"`
	ParticipantName string    `json:"participantName"`
	TicketType      string    `json:"ticketType"`
	ScannedAt       time.Time `json:"scannedAt"`
}
