package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one generation attempt.
type Run struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	RunID        string    `gorm:"size:36;uniqueIndex" json:"run_id"`
	FileName     string    `gorm:"size:255" json:"file_name"`
	ArrivalDates string    `gorm:"size:2048" json:"arrival_dates"`
	Placards     int       `json:"placards"`
	Status       string    `gorm:"size:16" json:"status"`
	Error        string    `gorm:"size:1024" json:"error,omitempty"`
	StartedAt    time.Time `gorm:"index" json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

func (Run) TableName() string {
	return "generation_runs"
}

// Dates splits ArrivalDates back into its ISO dates.
func (r Run) Dates() []string {
	if r.ArrivalDates == "" {
		return nil
	}
	return strings.Split(r.ArrivalDates, ",")
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Recorder stores and lists runs.
type Recorder interface {
	Record(ctx context.Context, run *Run) error
	Recent(ctx context.Context, limit int) ([]Run, error)
}

// GormRecorder keeps runs in the generation_runs table.
type GormRecorder struct {
	db *gorm.DB
}

// NewGormRecorder migrates the table and returns the recorder.
func NewGormRecorder(db *gorm.DB) (*GormRecorder, error) {
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("failed to migrate generation_runs: %w", err)
	}
	return &GormRecorder{db: db}, nil
}

func (r *GormRecorder) Record(ctx context.Context, run *Run) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the newest runs first.
func (r *GormRecorder) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	var runs []Run
	err := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// NopRecorder is used when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, *Run) error { return nil }

func (NopRecorder) Recent(context.Context, int) ([]Run, error) { return nil, nil }
