package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chicpic/backend/internal/domain/shared"
	"github.com/lib/pq"
)

// RunStatus is the lifecycle state of an ingestion run
type RunStatus string

const (
	RunStatusRunning    RunStatus = "running"
	RunStatusCommitted  RunStatus = "committed"
	RunStatusRolledBack RunStatus = "rolled_back"
)

// Tally counts reconciled entities per entity type
type Tally map[string]int

// Value implements driver.Valuer, serializing the tally as JSON
func (t Tally) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (t *Tally) Scan(value any) error {
	if value == nil {
		*t = Tally{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into Tally", value)
	}
}

// Add increments the counter for an entity type
func (t Tally) Add(entity string, n int) {
	t[entity] += n
}

// IngestionRun records the outcome of one reconciliation run for a
// shop. The row is written after the run's transaction settles, so a
// rolled back run still leaves a trace.
type IngestionRun struct {
	shared.BaseEntity
	ShopName   string         `gorm:"type:varchar(50);not null;index"`
	Status     RunStatus      `gorm:"type:varchar(20);not null"`
	Created    Tally          `gorm:"type:jsonb"`
	Updated    Tally          `gorm:"type:jsonb"`
	SkippedIDs pq.StringArray `gorm:"type:text[]"`
	Error      string         `gorm:"type:text"`
	StartedAt  time.Time      `gorm:"not null"`
	FinishedAt *time.Time
}

// TableName returns the table name for GORM
func (IngestionRun) TableName() string {
	return "ingestion_runs"
}

// NewIngestionRun starts a run record for a shop
func NewIngestionRun(shopName string) (*IngestionRun, error) {
	if shopName == "" {
		return nil, shared.NewDomainError("INVALID_SHOP", "Ingestion run requires a shop name")
	}

	return &IngestionRun{
		BaseEntity: shared.NewBaseEntity(),
		ShopName:   shopName,
		Status:     RunStatusRunning,
		Created:    Tally{},
		Updated:    Tally{},
		StartedAt:  time.Now(),
	}, nil
}

// Complete marks the run committed with its final tallies
func (r *IngestionRun) Complete(created, updated Tally, skippedIDs []string) {
	now := time.Now()
	r.Status = RunStatusCommitted
	r.Created = created
	r.Updated = updated
	r.SkippedIDs = skippedIDs
	r.FinishedAt = &now
	r.Touch()
}

// Fail marks the run rolled back with the failure reason
func (r *IngestionRun) Fail(err error) {
	now := time.Now()
	r.Status = RunStatusRolledBack
	if err != nil {
		r.Error = err.Error()
	}
	r.FinishedAt = &now
	r.Touch()
}
