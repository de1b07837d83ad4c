package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/redcell-sec/reportbot/src/shared/types"
)

// Store is the durable home of report records. All account sessions share
// one Store; conflicting writes are serialized by the underlying database,
// never by the callers.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CategoryStat is one row of the per-category breakdown.
type CategoryStat struct {
	Category     string    `json:"category"`
	Count        int64     `json:"count"`
	AvgSeverity  float64   `json:"avgSeverity"`
	LastReportAt time.Time `json:"lastReportAt"`
}

// Insert persists one report and returns its assigned id. The id is unique
// for the lifetime of the store and visible to reads as soon as Insert
// returns. On failure no id is fabricated; the zero value accompanies the
// error.
func (s *Store) Insert(ctx context.Context, r *types.Report) (uint64, error) {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	return r.ID, nil
}

// ListByReporter returns the reporter's reports, most recent first.
func (s *Store) ListByReporter(ctx context.Context, reporterID int64, limit int) ([]types.Report, error) {
	var reports []types.Report
	err := s.db.WithContext(ctx).
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list reports for %d: %w", reporterID, err)
	}
	return reports, nil
}

// ListRecent returns the newest reports across all reporters.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]types.Report, error) {
	var reports []types.Report
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("list recent reports: %w", err)
	}
	return reports, nil
}

// Total returns the number of stored reports.
func (s *Store) Total(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&types.Report{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return total, nil
}

// AggregateByCategory returns one row per category present in the store,
// ordered by descending count.
func (s *Store) AggregateByCategory(ctx context.Context) ([]CategoryStat, error) {
	var stats []CategoryStat
	err := s.db.WithContext(ctx).
		Model(&types.Report{}).
		Select("category, COUNT(*) AS count, AVG(severity) AS avg_severity, MAX(created_at) AS last_report_at").
		Group("category").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate reports: %w", err)
	}
	return stats, nil
}
