package reports

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/afrinov/expo-backend/internal/events"
	"github.com/afrinov/expo-backend/internal/models"
	"github.com/afrinov/expo-backend/internal/participants"
	"github.com/afrinov/expo-backend/internal/scans"
	"github.com/afrinov/expo-backend/internal/tickets"
)

// EventReport aggregates one event's registration, sales, and gate data.
type EventReport struct {
	EventID           string           `json:"eventId"`
	EventName         string           `json:"eventName"`
	Status            string           `json:"status"`
	TotalParticipants int              `json:"totalParticipants"`
	TotalTicketsSold  int              `json:"totalTicketsSold"`
	TotalRevenue      float64          `json:"totalRevenue"`
	ValidScans        int              `json:"validScans"`
	AttendanceRate    float64          `json:"attendanceRate"`
	ParticipantTypes  []TypeCount      `json:"participantTypes"`
	TicketSalesByType []TicketTypeSale `json:"ticketSalesByType"`
}

// TypeCount is one slice of the participant-type breakdown.
type TypeCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TicketTypeSale is one bar of the sales-by-ticket-type chart.
type TicketTypeSale struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
}

// Summary totals the per-event reports across the whole catalog.
type Summary struct {
	TotalEvents       int           `json:"totalEvents"`
	TotalParticipants int           `json:"totalParticipants"`
	TotalTicketsSold  int           `json:"totalTicketsSold"`
	TotalRevenue      float64       `json:"totalRevenue"`
	Events            []EventReport `json:"events"`
}

// Service builds reports from the live collections.
type Service struct {
	events       *events.Repository
	participants *participants.Repository
	tickets      *tickets.Repository
	scans        *scans.Repository
	logger       *zap.Logger
}

func NewService(
	eventRepo *events.Repository,
	participantRepo *participants.Repository,
	ticketRepo *tickets.Repository,
	scanRepo *scans.Repository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		events:       eventRepo,
		participants: participantRepo,
		tickets:      ticketRepo,
		scans:        scanRepo,
		logger:       logger,
	}
}

// ForEvent builds the report of one event.
func (s *Service) ForEvent(ctx context.Context, event models.Event) (EventReport, error) {
	roster, err := s.participants.ListFor(ctx, event.ID)
	if err != nil {
		return EventReport{}, err
	}
	allocations, err := s.tickets.ListFor(ctx, event.ID)
	if err != nil {
		return EventReport{}, err
	}
	scanned, err := s.scans.ListFor(ctx, event.ID)
	if err != nil {
		return EventReport{}, err
	}

	report := EventReport{
		EventID:           event.ID,
		EventName:         event.Title,
		Status:            event.Status,
		TotalParticipants: len(roster),
	}

	for _, t := range allocations {
		report.TotalTicketsSold += t.QuantitySold
		report.TotalRevenue += t.Price * float64(t.QuantitySold)
		report.TicketSalesByType = append(report.TicketSalesByType, TicketTypeSale{
			Name: t.Name,
			Sold: t.QuantitySold,
		})
	}

	for _, scan := range scanned {
		if scan.Status == models.ScanStatusValid {
			report.ValidScans++
		}
	}
	if report.TotalTicketsSold > 0 {
		rate := float64(report.ValidScans) / float64(report.TotalTicketsSold) * 100
		report.AttendanceRate = math.Round(rate*10) / 10
	}

	counts := make(map[string]int)
	for _, p := range roster {
		counts[p.Type]++
	}
	for _, t := range models.ParticipantTypes {
		if counts[t] > 0 {
			report.ParticipantTypes = append(report.ParticipantTypes, TypeCount{Name: t, Value: counts[t]})
		}
	}
	return report, nil
}

// Overall builds the cross-event summary.
func (s *Service) Overall(ctx context.Context) (Summary, error) {
	catalog, err := s.events.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{TotalEvents: len(catalog), Events: make([]EventReport, 0, len(catalog))}
	for _, e := range catalog {
		report, err := s.ForEvent(ctx, e)
		if err != nil {
			return Summary{}, err
		}
		summary.TotalParticipants += report.TotalParticipants
		summary.TotalTicketsSold += report.TotalTicketsSold
		summary.TotalRevenue += report.TotalRevenue
		summary.Events = append(summary.Events, report)
	}
	return summary, nil
}
