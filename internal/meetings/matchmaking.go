package meetings

import (
	"errors"

	"github.com/afrinov/expo-backend/internal/models"
)

var (
	// ErrSelfMeeting is returned when both sides of a meeting are the same
	// participant.
	ErrSelfMeeting = errors.New("a participant cannot meet themselves")
	// ErrSameRolePairing is returned when both sides share the same role.
	ErrSameRolePairing = errors.New("participants cannot share the same role")
)

// snapshotUnknown fills the name/type snapshots when the referenced
// participant cannot be resolved.
const snapshotUnknown = "N/A"

// Eligible reports whether a participant can take part in matchmaking. Only
// exhibitors and investors qualify.
func Eligible(p models.Participant) bool {
	return p.Type == models.ParticipantExhibitor || p.Type == models.ParticipantInvestor
}

// EligibleParticipants filters an event's roster down to the matchmaking pool.
func EligibleParticipants(participants []models.Participant) []models.Participant {
	out := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if Eligible(p) {
			out = append(out, p)
		}
	}
	return out
}

// CandidatesFor returns the pool members who may be paired with the chosen
// participant: everyone except the chosen one and those sharing its role.
// With no participant chosen, the whole pool qualifies.
func CandidatesFor(pool []models.Participant, chosenID string) []models.Participant {
	if chosenID == "" {
		return pool
	}
	var chosen *models.Participant
	for i := range pool {
		if pool[i].ID == chosenID {
			chosen = &pool[i]
			break
		}
	}
	out := make([]models.Participant, 0, len(pool))
	for _, p := range pool {
		if p.ID == chosenID {
			continue
		}
		if chosen != nil && p.Type == chosen.Type {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ValidatePairing re-checks a submitted pair against the pool. Both rules are
// enforced on the resolved records, so a stale form cannot sneak an invalid
// pair through.
func ValidatePairing(pool []models.Participant, p1ID, p2ID string) error {
	if p1ID != "" && p1ID == p2ID {
		return ErrSelfMeeting
	}
	var p1, p2 *models.Participant
	for i := range pool {
		if pool[i].ID == p1ID {
			p1 = &pool[i]
		}
		if pool[i].ID == p2ID {
			p2 = &pool[i]
		}
	}
	if p1 != nil && p2 != nil && p1.Type == p2.Type {
		return ErrSameRolePairing
	}
	return nil
}

// Snapshot copies the names and types of the resolved pair onto the meeting.
// Unresolved references snapshot as N/A; the copies are deliberate and do not
// follow later roster changes.
func Snapshot(m *models.Meeting, pool []models.Participant) {
	m.Participant1Name, m.Participant1Type = snapshotUnknown, snapshotUnknown
	m.Participant2Name, m.Participant2Type = snapshotUnknown, snapshotUnknown
	for _, p := range pool {
		if p.ID == m.Participant1ID {
			m.Participant1Name, m.Participant1Type = p.Name, p.Type
		}
		if p.ID == m.Participant2ID {
			m.Participant2Name, m.Participant2Type = p.Name, p.Type
		}
	}
}
