package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type JuntaStatus string

const (
	JuntaStatusActive    JuntaStatus = "ACTIVE"
	JuntaStatusArchived  JuntaStatus = "ARCHIVED"
	JuntaStatusCompleted JuntaStatus = "COMPLETED"
	JuntaStatusCancelled JuntaStatus = "CANCELLED"
)

// ClosedStatuses are the statuses listed by the archive.
var ClosedStatuses = []JuntaStatus{JuntaStatusArchived, JuntaStatusCompleted, JuntaStatusCancelled}

// Junta is a rotating savings pool
type Junta struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	StartDate     time.Time    `json:"start_date" db:"start_date"`
	Duration      int          `json:"duration" db:"duration"`
	Status        JuntaStatus  `json:"status" db:"status"`
	ArchivedAt    *time.Time   `json:"archived_at,omitempty" db:"archived_at"`
	EndedAt       *time.Time   `json:"ended_at,omitempty" db:"ended_at"`
	ArchiveReason *string      `json:"archive_reason,omitempty" db:"archive_reason"`
	FinalReport   *FinalReport `json:"-" db:"final_report"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

func (j *Junta) IsActive() bool {
	return j.Status == JuntaStatusActive
}

// EndDate is the last scheduled collection day
func (j *Junta) EndDate() time.Time {
	if j.Duration <= 0 {
		return j.StartDate
	}
	return j.StartDate.AddDate(0, 0, j.Duration-1)
}

// Days lists every scheduled collection day in ascending order
func (j *Junta) Days() []time.Time {
	days := make([]time.Time, 0, j.Duration)
	for i := 0; i < j.Duration; i++ {
		days = append(days, j.StartDate.AddDate(0, 0, i))
	}
	return days
}

// Share is one participant of a junta with a fixed daily commitment
type Share struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	JuntaID         uuid.UUID       `json:"junta_id" db:"junta_id"`
	UserID          *string         `json:"user_id,omitempty" db:"user_id"`
	Name            string          `json:"name" db:"name"`
	DailyCommitment decimal.Decimal `json:"daily_commitment" db:"daily_commitment"`
	Position        int             `json:"position" db:"roster_order"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// DisplayName never returns an empty string
func (s *Share) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.UserID != nil && *s.UserID != "" {
		return *s.UserID
	}
	return "Unnamed"
}
