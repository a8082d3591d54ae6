package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParticipantFinalReport is one participant's line of an archive report
type ParticipantFinalReport struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	DailyCommitment decimal.Decimal `json:"daily_commitment"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalExpected   decimal.Decimal `json:"total_expected"`
	CompleteDays    int             `json:"complete_days"`
	ComplianceRate  decimal.Decimal `json:"compliance_rate"`
	FinalDebt       decimal.Decimal `json:"final_debt"`
	TurnsReceived   []int           `json:"turns_received"`
}

type ReportPeriod struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	TotalDays int    `json:"total_days"`
}

type GlobalStats struct {
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalExpected    decimal.Decimal `json:"total_expected"`
	GlobalCompliance decimal.Decimal `json:"global_compliance"`
	TotalDebt        decimal.Decimal `json:"total_debt"`
	ParticipantCount int             `json:"participant_count"`
}

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

// FinalReport is the immutable snapshot written when a junta is archived.
// It is stored as a JSON document and never recomputed from live rows.
type FinalReport struct {
	JuntaID       uuid.UUID                `json:"junta_id"`
	JuntaName     string                   `json:"junta_name"`
	Period        ReportPeriod             `json:"period"`
	Participants  []ParticipantFinalReport `json:"participants"`
	GlobalStats   GlobalStats              `json:"global_stats"`
	Timeline      []TimelineEvent          `json:"timeline"`
	ArchivedAt    time.Time                `json:"archived_at"`
	ArchiveReason *string                  `json:"archive_reason"`
}

// Value stores the report as JSON text
func (r FinalReport) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads the report back from a JSON column
func (r *FinalReport) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = FinalReport{}
		return nil
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("cannot scan %T into FinalReport", src)
	}
}

// ArchivedJuntaSummary is a row of the archive listing
type ArchivedJuntaSummary struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Status           JuntaStatus     `json:"status"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date"`
	ParticipantCount int             `json:"participant_count"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalExpected    decimal.Decimal `json:"total_expected"`
	ComplianceRate   decimal.Decimal `json:"compliance_rate"`
	ArchivedAt       time.Time       `json:"archived_at"`
	ArchiveReason    *string         `json:"archive_reason"`
}
